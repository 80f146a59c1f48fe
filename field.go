package jaggedzip

import (
	"github.com/hupe1980/jaggedzip/deferred"
)

// Field is a named columnar input to Build: either a concrete flat buffer or
// a deferred cell. Concrete buffers are wrapped in pre-materialized cells, so
// the assembler treats both uniformly.
type Field struct {
	data any
}

// Int64s wraps a concrete int64 buffer.
func Int64s(v []int64) Field { return Field{data: v} }

// Int32s wraps a concrete int32 buffer.
func Int32s(v []int32) Field { return Field{data: v} }

// Float64s wraps a concrete float64 buffer.
func Float64s(v []float64) Field { return Field{data: v} }

// Float32s wraps a concrete float32 buffer.
func Float32s(v []float32) Field { return Field{data: v} }

// Bools wraps a concrete bool buffer.
func Bools(v []bool) Field { return Field{data: v} }

// Int64Cell wraps a deferred int64 buffer, e.g. a columnar store column.
func Int64Cell(c *deferred.Cell[[]int64]) Field { return Field{data: c} }

// Int32Cell wraps a deferred int32 buffer.
func Int32Cell(c *deferred.Cell[[]int32]) Field { return Field{data: c} }

// Float64Cell wraps a deferred float64 buffer.
func Float64Cell(c *deferred.Cell[[]float64]) Field { return Field{data: c} }

// Float32Cell wraps a deferred float32 buffer.
func Float32Cell(c *deferred.Cell[[]float32]) Field { return Field{data: c} }

// BoolCell wraps a deferred bool buffer.
func BoolCell(c *deferred.Cell[[]bool]) Field { return Field{data: c} }

// int64Cell views the field as a cell of int64s, the type all index and
// counts buffers must have.
func (f Field) int64Cell() (*deferred.Cell[[]int64], bool) {
	switch v := f.data.(type) {
	case []int64:
		return deferred.Resolve(v, deferred.WithLength(int64(len(v)))), true
	case *deferred.Cell[[]int64]:
		return v, true
	}
	return nil, false
}

// int32Cell views the field as a cell of int32s (genealogy tags).
func (f Field) int32Cell() (*deferred.Cell[[]int32], bool) {
	switch v := f.data.(type) {
	case []int32:
		return deferred.Resolve(v, deferred.WithLength(int64(len(v)))), true
	case *deferred.Cell[[]int32]:
		return v, true
	}
	return nil, false
}

// asCell converts the field into its typed cell, wrapping concrete buffers.
func (f Field) asCell() (any, bool) {
	switch v := f.data.(type) {
	case []int64:
		return deferred.Resolve(v, deferred.WithLength(int64(len(v)))), true
	case []int32:
		return deferred.Resolve(v, deferred.WithLength(int64(len(v)))), true
	case []float64:
		return deferred.Resolve(v, deferred.WithLength(int64(len(v)))), true
	case []float32:
		return deferred.Resolve(v, deferred.WithLength(int64(len(v)))), true
	case []bool:
		return deferred.Resolve(v, deferred.WithLength(int64(len(v)))), true
	case *deferred.Cell[[]int64], *deferred.Cell[[]int32], *deferred.Cell[[]float64],
		*deferred.Cell[[]float32], *deferred.Cell[[]bool]:
		return v, true
	}
	return nil, false
}

// length returns the field's flat length when known without materialization.
func (f Field) length() (int64, bool) {
	switch v := f.data.(type) {
	case []int64:
		return int64(len(v)), true
	case []int32:
		return int64(len(v)), true
	case []float64:
		return int64(len(v)), true
	case []float32:
		return int64(len(v)), true
	case []bool:
		return int64(len(v)), true
	case *deferred.Cell[[]int64]:
		return v.DeclaredLength()
	case *deferred.Cell[[]int32]:
		return v.DeclaredLength()
	case *deferred.Cell[[]float64]:
		return v.DeclaredLength()
	case *deferred.Cell[[]float32]:
		return v.DeclaredLength()
	case *deferred.Cell[[]bool]:
		return v.DeclaredLength()
	}
	return 0, false
}
