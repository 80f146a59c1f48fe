package jagged

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyOffsets is returned when an offsets array has no entries at all.
	// A valid offsets array has at least one entry (the leading zero).
	ErrEmptyOffsets = errors.New("offsets must have at least one entry")

	// ErrOffsetsNotMonotonic is returned when an offsets array decreases.
	ErrOffsetsNotMonotonic = errors.New("offsets must be non-decreasing and start at zero")
)

// ErrNegativeCount indicates a counts array with a negative entry.
//
// The event index of the first offending entry is recorded.
type ErrNegativeCount struct {
	Event int
	Count int64
}

func (e *ErrNegativeCount) Error() string {
	return fmt.Sprintf("negative count %d at event %d", e.Count, e.Event)
}

// Offsets partitions a flat content buffer into per-event segments.
type Offsets []int64

// CountsToOffsets converts per-event counts into an offsets array of length
// len(counts)+1 via an exclusive prefix sum. The accumulator is int64; total
// lengths beyond 32-bit bounds are fine.
func CountsToOffsets(counts []int64) (Offsets, error) {
	offsets := make(Offsets, len(counts)+1)
	var total int64
	for i, c := range counts {
		if c < 0 {
			return nil, &ErrNegativeCount{Event: i, Count: c}
		}
		total += c
		offsets[i+1] = total
	}
	return offsets, nil
}

// Validate checks the offsets invariants.
func (o Offsets) Validate() error {
	if len(o) == 0 {
		return ErrEmptyOffsets
	}
	if o[0] != 0 {
		return ErrOffsetsNotMonotonic
	}
	for i := 1; i < len(o); i++ {
		if o[i] < o[i-1] {
			return ErrOffsetsNotMonotonic
		}
	}
	return nil
}

// Events returns the number of events the offsets describe.
func (o Offsets) Events() int {
	if len(o) == 0 {
		return 0
	}
	return len(o) - 1
}

// TotalLength returns the flat content length, i.e. the last offset.
func (o Offsets) TotalLength() int64 {
	if len(o) == 0 {
		return 0
	}
	return o[len(o)-1]
}

// Segment returns the [start, stop) range of event e in the content buffer.
func (o Offsets) Segment(e int) (start, stop int64) {
	return o[e], o[e+1]
}

// Counts recovers the per-event counts from the offsets.
func (o Offsets) Counts() []int64 {
	counts := make([]int64, o.Events())
	for i := range counts {
		counts[i] = o[i+1] - o[i]
	}
	return counts
}

// Clone returns a copy of the offsets.
func (o Offsets) Clone() Offsets {
	out := make(Offsets, len(o))
	copy(out, o)
	return out
}
