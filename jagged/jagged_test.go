package jagged

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInts(t *testing.T) {
	a, err := NewInts([]int64{2, 0, 3}, []int64{0, -1, 1, 2, -1})
	require.NoError(t, err)

	assert.Equal(t, 3, a.Events())
	assert.Equal(t, []int64{0, -1}, a.Event(0))
	assert.Empty(t, a.Event(1))
	assert.Equal(t, []int64{1, 2, -1}, a.Event(2))
	require.NoError(t, a.Validate())
}

func TestNewInts_ContentLengthMismatch(t *testing.T) {
	_, err := NewInts([]int64{2, 1}, []int64{7})

	var lenErr *ErrContentLength
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, int64(3), lenErr.Expected)
	assert.Equal(t, int64(1), lenErr.Actual)
}

func TestInts_SameShape(t *testing.T) {
	a, err := NewInts([]int64{2, 1}, []int64{0, 2, 5})
	require.NoError(t, err)
	b, err := NewInts([]int64{2, 1}, []int64{1, 3, 7})
	require.NoError(t, err)
	c, err := NewInts([]int64{1, 2}, []int64{1, 3, 7})
	require.NoError(t, err)

	assert.True(t, a.SameShape(b))
	assert.False(t, a.SameShape(c))
}

func TestDoubly(t *testing.T) {
	inner, err := NewInts([]int64{2, 2, 2}, []int64{0, 1, 2, 3, 5, 7})
	require.NoError(t, err)

	d := Doubly{Offsets: Offsets{0, 2, 3}, Inner: inner}
	require.NoError(t, d.Validate())

	assert.Equal(t, 2, d.Events())
	assert.Equal(t, [][]int64{{0, 1}, {2, 3}}, d.Event(0))
	assert.Equal(t, [][]int64{{5, 7}}, d.Event(1))
}

func TestDoubly_OuterInnerMismatch(t *testing.T) {
	inner, err := NewInts([]int64{1, 1}, []int64{4, 5})
	require.NoError(t, err)

	d := Doubly{Offsets: Offsets{0, 3}, Inner: inner}

	var lenErr *ErrContentLength
	assert.ErrorAs(t, d.Validate(), &lenErr)
}
