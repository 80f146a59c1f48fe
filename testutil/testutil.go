// Package testutil provides fixtures for building and exploding jagged
// arrays in tests.
package testutil

import (
	"fmt"

	"github.com/hupe1980/jaggedzip/jagged"
)

// JaggedInts builds a jagged array from per-event lists. It panics on invalid
// input; it is a test helper.
func JaggedInts(events [][]int64) jagged.Ints {
	counts := make([]int64, len(events))
	var content []int64
	for i, ev := range events {
		counts[i] = int64(len(ev))
		content = append(content, ev...)
	}
	a, err := jagged.NewInts(counts, content)
	if err != nil {
		panic(fmt.Sprintf("testutil: bad jagged fixture: %v", err))
	}
	return a
}

// Lists explodes a jagged array back into per-event lists. Empty events map
// to empty (non-nil) lists.
func Lists(a jagged.Ints) [][]int64 {
	out := make([][]int64, a.Events())
	for e := range out {
		ev := a.Event(e)
		out[e] = make([]int64, len(ev))
		copy(out[e], ev)
	}
	return out
}

// DoublyLists explodes a doubly-jagged array into per-event lists of lists.
func DoublyLists(d jagged.Doubly) [][][]int64 {
	out := make([][][]int64, d.Events())
	for e := range out {
		items := d.Event(e)
		out[e] = make([][]int64, len(items))
		for i, item := range items {
			out[e][i] = make([]int64, len(item))
			copy(out[e][i], item)
		}
	}
	return out
}
