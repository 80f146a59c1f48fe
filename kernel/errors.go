package kernel

import "fmt"

// ErrShapeMismatch indicates inputs whose jagged shapes disagree where they
// are required to be identical, or an empty input list.
type ErrShapeMismatch struct {
	Reason   string
	Expected int64
	Actual   int64
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: %s (expected %d, got %d)", e.Reason, e.Expected, e.Actual)
}

// ErrOutOfBounds indicates an index referencing a position outside the flat
// buffer during a genealogy walk.
type ErrOutOfBounds struct {
	Index  int64
	Length int64
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("index %d out of bounds for length %d", e.Index, e.Length)
}

// ErrCorruptGraph indicates a genealogy walk that exceeded its safety bound,
// meaning the parent links are malformed or form a cycle.
type ErrCorruptGraph struct {
	Start int64
	Steps int64
}

func (e *ErrCorruptGraph) Error() string {
	return fmt.Sprintf("genealogy walk from %d exceeded %d steps: malformed parent links or cycle", e.Start, e.Steps)
}
