package deferred

import (
	"sync"
	"sync/atomic"
)

// CellOption configures a new cell.
type CellOption func(*cellConfig)

type cellConfig struct {
	length    int64
	hasLength bool
	lengthFn  func() (int64, bool)
}

// WithLength declares the flat length of the cell's buffer up front, making
// it available via DeclaredLength without forcing materialization.
func WithLength(n int64) CellOption {
	return func(c *cellConfig) {
		c.length = n
		c.hasLength = true
	}
}

// WithLengthFunc attaches an independently-computable shape function. It is
// consulted by DeclaredLength when no static length was declared; it must not
// force the cell's own producer.
func WithLengthFunc(fn func() (int64, bool)) CellOption {
	return func(c *cellConfig) {
		c.lengthFn = fn
	}
}

// Forcer is the type-erased view of a cell, used for bulk forcing.
type Forcer interface {
	// Force materializes the cell, discarding the value.
	Force() error
	// IsMaterialized reports whether the cell has been computed.
	IsMaterialized() bool
}

// Cell is a memoized lazy buffer of type T.
//
// The zero value is not usable; construct cells with New or Resolve.
type Cell[T any] struct {
	once sync.Once
	done atomic.Bool

	produce  func() (T, error)
	lengthFn func() (int64, bool)

	length    int64
	hasLength bool

	value T
	err   error
}

// New creates an unmaterialized cell with the given producer. The producer
// runs exactly once, on first Materialize or Force; both its value and its
// error are cached.
func New[T any](produce func() (T, error), opts ...CellOption) *Cell[T] {
	var cfg cellConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cell[T]{
		produce:   produce,
		lengthFn:  cfg.lengthFn,
		length:    cfg.length,
		hasLength: cfg.hasLength,
	}
}

// Resolve creates an already-materialized cell holding v. It is the bridge
// for concrete buffers entering a lazy computation chain.
func Resolve[T any](v T, opts ...CellOption) *Cell[T] {
	c := New[T](nil, opts...)
	c.value = v
	c.done.Store(true)
	c.once.Do(func() {})
	return c
}

// Materialize returns the cell's value, computing it on first call. All
// subsequent calls return the cached value (or the cached error). Producers
// that depend on other cells force them transitively before returning.
func (c *Cell[T]) Materialize() (T, error) {
	c.once.Do(func() {
		if c.produce != nil {
			c.value, c.err = c.produce()
		}
		// Release the producer so intermediate generators can be reclaimed.
		c.produce = nil
		c.done.Store(true)
	})
	return c.value, c.err
}

// Force materializes the cell and reports only the error.
func (c *Cell[T]) Force() error {
	_, err := c.Materialize()
	return err
}

// IsMaterialized reports whether the producer has run.
func (c *Cell[T]) IsMaterialized() bool {
	return c.done.Load()
}

// DeclaredLength returns the cell's flat buffer length if it is known without
// forcing materialization: either declared at construction, or computable via
// the attached shape function. It never invokes the producer.
func (c *Cell[T]) DeclaredLength() (int64, bool) {
	if c.hasLength {
		return c.length, true
	}
	if c.lengthFn != nil {
		return c.lengthFn()
	}
	return 0, false
}

// Map derives a cell from one input cell. Forcing the result forces a first.
func Map[A, B any](a *Cell[A], f func(A) (B, error), opts ...CellOption) *Cell[B] {
	return New(func() (B, error) {
		av, err := a.Materialize()
		if err != nil {
			var zero B
			return zero, err
		}
		return f(av)
	}, opts...)
}

// Map2 derives a cell from two input cells, forcing them depth-first in
// argument order.
func Map2[A, B, C any](a *Cell[A], b *Cell[B], f func(A, B) (C, error), opts ...CellOption) *Cell[C] {
	return New(func() (C, error) {
		var zero C
		av, err := a.Materialize()
		if err != nil {
			return zero, err
		}
		bv, err := b.Materialize()
		if err != nil {
			return zero, err
		}
		return f(av, bv)
	}, opts...)
}

// Map3 derives a cell from three input cells, forcing them depth-first in
// argument order.
func Map3[A, B, C, D any](a *Cell[A], b *Cell[B], c *Cell[C], f func(A, B, C) (D, error), opts ...CellOption) *Cell[D] {
	return New(func() (D, error) {
		var zero D
		av, err := a.Materialize()
		if err != nil {
			return zero, err
		}
		bv, err := b.Materialize()
		if err != nil {
			return zero, err
		}
		cv, err := c.Materialize()
		if err != nil {
			return zero, err
		}
		return f(av, bv, cv)
	}, opts...)
}
