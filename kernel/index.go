package kernel

import (
	"github.com/hupe1980/jaggedzip/jagged"
)

// LocalToGlobal converts a jagged local index into a global index over the
// target's flat content buffer. For each event e and local value v: negative
// values propagate as -1 (missing), and values that would resolve past the
// end of event e's target segment also yield -1 rather than a cross-event
// reference. The output shares the input's outer jagged shape.
//
// Global indices stay valid under event-axis slicing of the target only as
// long as the flat content ordering is preserved; reordering the content
// invalidates them. This is a documented constraint, not checked here.
func LocalToGlobal(index jagged.Ints, targetCounts []int64) (jagged.Ints, error) {
	if err := index.Validate(); err != nil {
		return jagged.Ints{}, err
	}
	offsets, err := jagged.CountsToOffsets(targetCounts)
	if err != nil {
		return jagged.Ints{}, err
	}
	if index.Events() != len(targetCounts) {
		return jagged.Ints{}, &ErrShapeMismatch{
			Reason:   "index events vs target counts",
			Expected: int64(index.Events()),
			Actual:   int64(len(targetCounts)),
		}
	}

	out := make([]int64, len(index.Content))
	for e := 0; e < index.Events(); e++ {
		start, stop := index.Offsets.Segment(e)
		base, next := offsets[e], offsets[e+1]
		for i := start; i < stop; i++ {
			v := index.Content[i]
			switch {
			case v < 0:
				out[i] = -1
			case base+v >= next:
				// Out-of-bounds local index; never leak into the next event.
				out[i] = -1
			default:
				out[i] = base + v
			}
		}
	}

	return jagged.Ints{Offsets: index.Offsets.Clone(), Content: out}, nil
}

// NestedIndex interleaves K parallel jagged index arrays into a doubly-jagged
// array whose innermost dimension has fixed size K: per original element, a
// K-tuple of values taken positionally from each input.
//
// All inputs must share the same outer offsets.
func NestedIndex(indices []jagged.Ints) (jagged.Doubly, error) {
	if len(indices) == 0 {
		return jagged.Doubly{}, &ErrShapeMismatch{Reason: "no index arrays", Expected: 1, Actual: 0}
	}
	first := indices[0]
	if err := first.Validate(); err != nil {
		return jagged.Doubly{}, err
	}
	for _, idx := range indices[1:] {
		if err := idx.Validate(); err != nil {
			return jagged.Doubly{}, err
		}
		if !first.SameShape(idx) {
			return jagged.Doubly{}, &ErrShapeMismatch{
				Reason:   "parallel index arrays",
				Expected: int64(len(first.Content)),
				Actual:   int64(len(idx.Content)),
			}
		}
	}

	k := int64(len(indices))
	n := int64(len(first.Content))

	content := make([]int64, k*n)
	for j, idx := range indices {
		for i, v := range idx.Content {
			content[int64(i)*k+int64(j)] = v
		}
	}

	inner := make(jagged.Offsets, n+1)
	for i := range inner {
		inner[i] = int64(i) * k
	}

	return jagged.Doubly{
		Offsets: first.Offsets.Clone(),
		Inner:   jagged.Ints{Offsets: inner, Content: content},
	}, nil
}

// CountsToNestedIndex turns jagged per-item local counts into a doubly-jagged
// global index into a target: the target's flat content range is partitioned
// by the concatenation of all local counts, assigning contiguous increasing
// global indices, then the outer event grouping is re-applied.
//
// The flattened local counts must sum to the target total.
func CountsToNestedIndex(localCounts jagged.Ints, targetCounts []int64) (jagged.Doubly, error) {
	if err := localCounts.Validate(); err != nil {
		return jagged.Doubly{}, err
	}
	targetOffsets, err := jagged.CountsToOffsets(targetCounts)
	if err != nil {
		return jagged.Doubly{}, err
	}
	if localCounts.Events() != len(targetCounts) {
		return jagged.Doubly{}, &ErrShapeMismatch{
			Reason:   "local counts events vs target counts",
			Expected: int64(localCounts.Events()),
			Actual:   int64(len(targetCounts)),
		}
	}

	inner, err := jagged.CountsToOffsets(localCounts.Content)
	if err != nil {
		return jagged.Doubly{}, err
	}
	total := targetOffsets.TotalLength()
	if inner.TotalLength() != total {
		return jagged.Doubly{}, &ErrShapeMismatch{
			Reason:   "local counts sum vs target total",
			Expected: total,
			Actual:   inner.TotalLength(),
		}
	}

	content := make([]int64, total)
	for i := range content {
		content[i] = int64(i)
	}

	return jagged.Doubly{
		Offsets: localCounts.Offsets.Clone(),
		Inner:   jagged.Ints{Offsets: inner, Content: content},
	}, nil
}
