package kernel

import (
	"slices"

	"github.com/hupe1980/jaggedzip/jagged"
)

// Children finds, for every item, its direct children within the same event
// segment: all positions c >= item with parent[c] == item. The output is
// grouped per source item (outer length = len(parent)), not per event.
//
// The scan is quadratic in segment size; per-event item counts are small
// (tens to low hundreds), so this beats building an inverted index.
func Children(offsets jagged.Offsets, parent []int64) (jagged.Ints, error) {
	if err := offsets.Validate(); err != nil {
		return jagged.Ints{}, err
	}
	if total := offsets.TotalLength(); total != int64(len(parent)) {
		return jagged.Ints{}, &ErrShapeMismatch{
			Reason:   "offsets total vs parent length",
			Expected: total,
			Actual:   int64(len(parent)),
		}
	}

	outOffsets := make(jagged.Offsets, len(parent)+1)
	content := make([]int64, 0, len(parent))

	pos := 1
	for e := 0; e < offsets.Events(); e++ {
		start, stop := offsets.Segment(e)
		for index := start; index < stop; index++ {
			// Children always come after their parent in the flat ordering.
			for child := index; child < stop; child++ {
				if parent[child] == index {
					content = append(content, child)
				}
			}
			outOffsets[pos] = int64(len(content))
			pos++
		}
	}

	return jagged.Ints{Offsets: outOffsets, Content: content}, nil
}

// DistinctParent walks each item's parent chain until it reaches the first
// ancestor whose tag differs from the item's own, returning that ancestor's
// global index, or -1 if the chain terminates without one.
//
// parent and tag must be parallel flat arrays of global scope. A walked
// parent index outside the array bounds yields ErrOutOfBounds; a walk longer
// than the array itself means the links form a cycle and yields
// ErrCorruptGraph.
func DistinctParent(parent []int64, tag []int32) ([]int64, error) {
	if len(parent) != len(tag) {
		return nil, &ErrShapeMismatch{
			Reason:   "parent vs tag length",
			Expected: int64(len(parent)),
			Actual:   int64(len(tag)),
		}
	}

	n := int64(len(parent))
	out := make([]int64, n)

	for i := int64(0); i < n; i++ {
		p := parent[i]
		if p < 0 {
			out[i] = -1
			continue
		}
		thisTag := tag[i]
		var steps int64
		for p >= 0 {
			if p >= n {
				return nil, &ErrOutOfBounds{Index: p, Length: n}
			}
			if tag[p] != thisTag {
				break
			}
			p = parent[p]
			steps++
			if steps > n {
				return nil, &ErrCorruptGraph{Start: i, Steps: steps}
			}
		}
		if p >= n {
			return nil, &ErrOutOfBounds{Index: p, Length: n}
		}
		out[i] = p
	}

	return out, nil
}

// DistinctChildrenDeep collects, for each item that heads a same-tag decay
// chain (its own parent has a different tag), every descendant with a
// different tag reached through zero or more same-tag intermediates, plus
// every same-tag descendant that itself has no children, so chain dead ends
// are not silently dropped. Items that are mid-chain (their parent shares
// their tag) produce an empty list; enumerating them again for every ancestor
// in the chain would duplicate the same descendants.
//
// This is best-effort: completeness depends on how same-tag chains were
// encoded upstream, and no stronger guarantee is made.
func DistinctChildrenDeep(offsets jagged.Offsets, parent []int64, tag []int32) (jagged.Ints, error) {
	if err := offsets.Validate(); err != nil {
		return jagged.Ints{}, err
	}
	n := int64(len(parent))
	if total := offsets.TotalLength(); total != n {
		return jagged.Ints{}, &ErrShapeMismatch{
			Reason:   "offsets total vs parent length",
			Expected: total,
			Actual:   n,
		}
	}
	if len(tag) != len(parent) {
		return jagged.Ints{}, &ErrShapeMismatch{
			Reason:   "parent vs tag length",
			Expected: n,
			Actual:   int64(len(tag)),
		}
	}

	outOffsets := make(jagged.Offsets, n+1)
	content := make([]int64, 0, n)

	pos := 1
	for e := 0; e < offsets.Events(); e++ {
		start, stop := offsets.Segment(e)
		for index := start; index < stop; index++ {
			p := parent[index]
			if p >= n {
				return jagged.Ints{}, &ErrOutOfBounds{Index: p, Length: n}
			}

			// Only chain heads do the deep lookup: an item whose parent
			// shares its tag is mid-chain and yields nothing.
			if p >= 0 && tag[index] != tag[p] {
				thisTag := tag[index]

				// Same-tag chain members seen so far, seeded with the head.
				chain := make([]int64, 1, stop-index)
				chain[0] = index
				// Chain members observed to have at least one child.
				withChildren := make([]int64, 0, stop-index)

				for child := index; child < stop; child++ {
					childParent := parent[child]
					for _, member := range chain {
						if member != childParent {
							continue
						}
						withChildren = append(withChildren, childParent)
						if tag[child] == thisTag {
							chain = append(chain, child)
						} else {
							content = append(content, child)
						}
						break
					}
				}

				// Same-tag descendants with no children of their own are
				// kept as results.
				for _, member := range chain[1:] {
					if !slices.Contains(withChildren, member) {
						content = append(content, member)
					}
				}
			}

			outOffsets[pos] = int64(len(content))
			pos++
		}
	}

	return jagged.Ints{Offsets: outOffsets, Content: content}, nil
}
