package jaggedzip

import (
	"errors"
	"fmt"

	"github.com/hupe1980/jaggedzip/jagged"
	"github.com/hupe1980/jaggedzip/kernel"
)

var (
	// ErrInvalidInput classifies negative counts, malformed offsets, and
	// shape mismatches between buffers that must be parallel.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutOfBounds classifies indices that resolve outside the flat
	// content buffer.
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrCorruptGraph classifies genealogy walks that exceed their safety
	// bound, indicating malformed parent links or a cycle.
	ErrCorruptGraph = errors.New("corrupt genealogy graph")
)

// ErrMissingEventIDs indicates that declared event ID fields are absent from
// the input. Event IDs identify sub-runs for cross-validation and event
// matching; dropping them from the data format is almost always a mistake.
//
// Demote this to a warning with WithErrorOnMissingEventIDs(false).
type ErrMissingEventIDs struct {
	Missing []string
}

func (e *ErrMissingEventIDs) Error() string {
	return fmt.Sprintf("missing event ID fields: %v", e.Missing)
}

func (e *ErrMissingEventIDs) Unwrap() error { return ErrInvalidInput }

// translateError maps subpackage errors onto the root taxonomy. Errors
// returned by root APIs (Build, Dataset.ForceAll) always match one of the
// sentinels above via errors.Is; errors obtained by forcing cells directly
// keep their package-typed form.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var negCount *jagged.ErrNegativeCount
	if errors.As(err, &negCount) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var contentLen *jagged.ErrContentLength
	if errors.As(err, &contentLen) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, jagged.ErrEmptyOffsets) || errors.Is(err, jagged.ErrOffsetsNotMonotonic) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var shape *kernel.ErrShapeMismatch
	if errors.As(err, &shape) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var oob *kernel.ErrOutOfBounds
	if errors.As(err, &oob) {
		return fmt.Errorf("%w: %w", ErrOutOfBounds, err)
	}
	var corrupt *kernel.ErrCorruptGraph
	if errors.As(err, &corrupt) {
		return fmt.Errorf("%w: %w", ErrCorruptGraph, err)
	}

	return err
}
