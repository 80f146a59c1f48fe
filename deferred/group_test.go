package deferred

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForceAll(t *testing.T) {
	var calls atomic.Int64

	cells := make([]Forcer, 8)
	for i := range cells {
		cells[i] = New(func() (int64, error) {
			calls.Add(1)
			return int64(i), nil
		})
	}

	err := ForceAll(context.Background(), 4, cells...)
	require.NoError(t, err)

	assert.Equal(t, int64(8), calls.Load())
	for _, c := range cells {
		assert.True(t, c.IsMaterialized())
	}
}

func TestForceAll_SkipsMaterializedAndNil(t *testing.T) {
	var calls atomic.Int64

	done := Resolve[int64](7)
	pending := New(func() (int64, error) {
		calls.Add(1)
		return 1, nil
	})

	err := ForceAll(context.Background(), 0, done, nil, pending)
	require.NoError(t, err)

	assert.Equal(t, int64(1), calls.Load())
}

func TestForceAll_PropagatesError(t *testing.T) {
	boom := errors.New("boom")

	bad := New(func() (int64, error) { return 0, boom })
	good := New(func() (int64, error) { return 1, nil })

	err := ForceAll(context.Background(), 1, bad, good)
	assert.ErrorIs(t, err, boom)
}

func TestForceAll_SharedCellStillOnce(t *testing.T) {
	var calls atomic.Int64

	shared := New(func() (int64, error) {
		calls.Add(1)
		return 1, nil
	})

	// The same cell forced from many goroutines materializes once.
	forcers := make([]Forcer, 16)
	for i := range forcers {
		forcers[i] = shared
	}

	err := ForceAll(context.Background(), 0, forcers...)
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
}
