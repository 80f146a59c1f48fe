package jagged

import "fmt"

// ErrContentLength indicates a content buffer whose length disagrees with the
// total length implied by its offsets.
type ErrContentLength struct {
	Expected int64
	Actual   int64
}

func (e *ErrContentLength) Error() string {
	return fmt.Sprintf("content length %d does not match offsets total %d", e.Actual, e.Expected)
}

// Ints is a jagged int64 array: event e's sub-sequence is
// Content[Offsets[e]:Offsets[e+1]].
type Ints struct {
	Offsets Offsets
	Content []int64
}

// NewInts builds a jagged array from per-event counts and flat content.
func NewInts(counts []int64, content []int64) (Ints, error) {
	offsets, err := CountsToOffsets(counts)
	if err != nil {
		return Ints{}, err
	}
	a := Ints{Offsets: offsets, Content: content}
	if total := offsets.TotalLength(); total != int64(len(content)) {
		return Ints{}, &ErrContentLength{Expected: total, Actual: int64(len(content))}
	}
	return a, nil
}

// Validate checks the offsets invariants and the content length.
func (a Ints) Validate() error {
	if err := a.Offsets.Validate(); err != nil {
		return err
	}
	if total := a.Offsets.TotalLength(); total != int64(len(a.Content)) {
		return &ErrContentLength{Expected: total, Actual: int64(len(a.Content))}
	}
	return nil
}

// Events returns the number of events.
func (a Ints) Events() int { return a.Offsets.Events() }

// Event returns event e's sub-sequence. The returned slice aliases the
// content buffer; callers must not modify it.
func (a Ints) Event(e int) []int64 {
	start, stop := a.Offsets.Segment(e)
	return a.Content[start:stop:stop]
}

// SameShape reports whether two jagged arrays share the same outer offsets.
func (a Ints) SameShape(b Ints) bool {
	if len(a.Offsets) != len(b.Offsets) {
		return false
	}
	for i := range a.Offsets {
		if a.Offsets[i] != b.Offsets[i] {
			return false
		}
	}
	return true
}

// Doubly is a doubly-jagged int64 array: the outer offsets partition the
// inner jagged array's events.
type Doubly struct {
	Offsets Offsets
	Inner   Ints
}

// Validate checks both nesting levels. The outer offsets must partition the
// inner array's event axis.
func (d Doubly) Validate() error {
	if err := d.Offsets.Validate(); err != nil {
		return err
	}
	if err := d.Inner.Validate(); err != nil {
		return err
	}
	if d.Offsets.TotalLength() != int64(d.Inner.Events()) {
		return &ErrContentLength{
			Expected: d.Offsets.TotalLength(),
			Actual:   int64(d.Inner.Events()),
		}
	}
	return nil
}

// Events returns the number of outer events.
func (d Doubly) Events() int { return d.Offsets.Events() }

// Event returns event e's items, each item being a list of int64.
func (d Doubly) Event(e int) [][]int64 {
	start, stop := d.Offsets.Segment(e)
	out := make([][]int64, 0, stop-start)
	for i := start; i < stop; i++ {
		out = append(out, d.Inner.Event(int(i)))
	}
	return out
}
