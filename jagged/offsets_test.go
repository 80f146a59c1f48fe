package jagged

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountsToOffsets(t *testing.T) {
	tests := []struct {
		name   string
		counts []int64
		want   Offsets
	}{
		{name: "empty", counts: nil, want: Offsets{0}},
		{name: "single", counts: []int64{3}, want: Offsets{0, 3}},
		{name: "mixed", counts: []int64{2, 0, 3}, want: Offsets{0, 2, 2, 5}},
		{name: "all zero", counts: []int64{0, 0, 0}, want: Offsets{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountsToOffsets(tt.counts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountsToOffsets_Properties(t *testing.T) {
	counts := []int64{8, 7, 4, 7, 0, 1}

	offsets, err := CountsToOffsets(counts)
	require.NoError(t, err)

	assert.Equal(t, int64(0), offsets[0])

	var sum int64
	for _, c := range counts {
		sum += c
	}
	assert.Equal(t, sum, offsets.TotalLength())

	for i := 1; i < len(offsets); i++ {
		assert.GreaterOrEqual(t, offsets[i], offsets[i-1])
	}

	assert.Equal(t, counts, offsets.Counts())
	require.NoError(t, offsets.Validate())
}

func TestCountsToOffsets_NegativeCount(t *testing.T) {
	_, err := CountsToOffsets([]int64{2, -1, 3})

	var negErr *ErrNegativeCount
	require.ErrorAs(t, err, &negErr)
	assert.Equal(t, 1, negErr.Event)
	assert.Equal(t, int64(-1), negErr.Count)
}

func TestCountsToOffsets_LargeTotals(t *testing.T) {
	// Totals beyond 32-bit bounds must not wrap.
	counts := []int64{1 << 31, 1 << 31, 5}

	offsets, err := CountsToOffsets(counts)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<32+5), offsets.TotalLength())
}

func TestOffsets_Validate(t *testing.T) {
	tests := []struct {
		name    string
		offsets Offsets
		wantErr error
	}{
		{name: "valid", offsets: Offsets{0, 2, 2, 5}},
		{name: "empty", offsets: Offsets{}, wantErr: ErrEmptyOffsets},
		{name: "nonzero start", offsets: Offsets{1, 2}, wantErr: ErrOffsetsNotMonotonic},
		{name: "decreasing", offsets: Offsets{0, 3, 2}, wantErr: ErrOffsetsNotMonotonic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.offsets.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOffsets_Segment(t *testing.T) {
	offsets := Offsets{0, 2, 2, 5}

	start, stop := offsets.Segment(0)
	assert.Equal(t, int64(0), start)
	assert.Equal(t, int64(2), stop)

	start, stop = offsets.Segment(1)
	assert.Equal(t, start, stop, "empty event")

	start, stop = offsets.Segment(2)
	assert.Equal(t, int64(2), start)
	assert.Equal(t, int64(5), stop)

	assert.Equal(t, 3, offsets.Events())
}
