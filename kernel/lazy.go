package kernel

import (
	"github.com/hupe1980/jaggedzip/deferred"
	"github.com/hupe1980/jaggedzip/jagged"
)

// CountsToOffsetsLazy lifts jagged.CountsToOffsets over deferred cells. The
// result's length is unknown until materialized: the number of events may not
// be known if the counts source is itself unmaterialized end-to-end.
func CountsToOffsetsLazy(counts *deferred.Cell[[]int64]) *deferred.Cell[jagged.Offsets] {
	return deferred.Map(counts, jagged.CountsToOffsets)
}

// LocalToGlobalLazy lifts LocalToGlobal over deferred cells. The result
// preserves the index's outer offsets, so its flat length is declared from
// the index cell's shape without forcing anything.
func LocalToGlobalLazy(index *deferred.Cell[jagged.Ints], targetCounts *deferred.Cell[[]int64]) *deferred.Cell[jagged.Ints] {
	return deferred.Map2(index, targetCounts, LocalToGlobal,
		deferred.WithLengthFunc(index.DeclaredLength))
}

// NestedIndexLazy lifts NestedIndex over deferred cells. The result's flat
// length is K times the first input's declared length, when known.
func NestedIndexLazy(indices []*deferred.Cell[jagged.Ints]) *deferred.Cell[jagged.Doubly] {
	k := int64(len(indices))

	produce := func() (jagged.Doubly, error) {
		concrete := make([]jagged.Ints, len(indices))
		for i, cell := range indices {
			v, err := cell.Materialize()
			if err != nil {
				return jagged.Doubly{}, err
			}
			concrete[i] = v
		}
		return NestedIndex(concrete)
	}

	lengthFn := func() (int64, bool) {
		if len(indices) == 0 {
			return 0, false
		}
		if n, ok := indices[0].DeclaredLength(); ok {
			return n * k, true
		}
		return 0, false
	}

	return deferred.New(produce, deferred.WithLengthFunc(lengthFn))
}

// CountsToNestedIndexLazy lifts CountsToNestedIndex over deferred cells. The
// result's flat length is the target total, unknown until the target counts
// materialize.
func CountsToNestedIndexLazy(localCounts *deferred.Cell[jagged.Ints], targetCounts *deferred.Cell[[]int64]) *deferred.Cell[jagged.Doubly] {
	return deferred.Map2(localCounts, targetCounts, CountsToNestedIndex)
}

// ChildrenLazy lifts Children over deferred cells.
func ChildrenLazy(offsets *deferred.Cell[jagged.Offsets], parent *deferred.Cell[[]int64]) *deferred.Cell[jagged.Ints] {
	return deferred.Map2(offsets, parent, Children)
}

// DistinctParentLazy lifts DistinctParent over deferred cells. The output is
// parallel to the parent buffer, so its length is declared from the parent
// cell's shape.
func DistinctParentLazy(parent *deferred.Cell[[]int64], tag *deferred.Cell[[]int32]) *deferred.Cell[[]int64] {
	return deferred.Map2(parent, tag, DistinctParent,
		deferred.WithLengthFunc(parent.DeclaredLength))
}

// DistinctChildrenDeepLazy lifts DistinctChildrenDeep over deferred cells.
func DistinctChildrenDeepLazy(offsets *deferred.Cell[jagged.Offsets], parent *deferred.Cell[[]int64], tag *deferred.Cell[[]int32]) *deferred.Cell[jagged.Ints] {
	return deferred.Map3(offsets, parent, tag, DistinctChildrenDeep)
}
