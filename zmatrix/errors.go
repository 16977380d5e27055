// SPDX-License-Identifier: MIT
// Package zmatrix: sentinel error set.
// All exported operations return these sentinels (optionally wrapped with
// call-site context via fmt.Errorf("...: %w", ErrX)); callers match them with
// errors.Is. Only Get and MustFromRows panic, and only on caller bugs.

package zmatrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when rows or cols is not positive.
	ErrInvalidDimensions = errors.New("zmatrix: dimensions must be > 0")

	// ErrInvalidAlphabet is returned when the alphabet size is not positive.
	ErrInvalidAlphabet = errors.New("zmatrix: alphabet size must be > 0")

	// ErrOutOfRange indicates a row or column index outside the grid.
	ErrOutOfRange = errors.New("zmatrix: index out of range")

	// ErrValueOutOfAlphabet indicates a cell value outside [0, alphabet).
	ErrValueOutOfAlphabet = errors.New("zmatrix: value outside alphabet")

	// ErrDimensionMismatch indicates operands of incompatible shape or alphabet.
	ErrDimensionMismatch = errors.New("zmatrix: dimension mismatch")

	// ErrNonRectangular indicates input rows of differing lengths.
	ErrNonRectangular = errors.New("zmatrix: all rows must have the same length")
)

// zErrorf wraps err with the method tag and the offending coordinates.
func zErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("CountMatrix.%s(%d,%d): %w", method, row, col, err)
}
