// SPDX-License-Identifier: MIT
// Package pattern: sentinel error set.
//
// Every message is prefixed with "pattern: ...". Operations wrap these with
// row/column or pattern-id context via fmt.Errorf("ctx: %w", ErrX); callers
// match with errors.Is.

package pattern

import "errors"

// Malformed source encodings. Fatal to the single construction attempt.
var (
	// ErrEmptySource is returned for an empty (or all-blank) source string.
	ErrEmptySource = errors.New("pattern: empty pattern source")

	// ErrTooManyRows is returned when the source holds more than Rows rows.
	ErrTooManyRows = errors.New("pattern: too many rows")

	// ErrTooFewRows is returned when the source holds fewer than Rows rows.
	ErrTooFewRows = errors.New("pattern: too few rows")

	// ErrTooManyCols is returned when a row holds more than Cols tokens.
	ErrTooManyCols = errors.New("pattern: too many columns")

	// ErrTooFewCols is returned when a row holds fewer than Cols tokens.
	ErrTooFewCols = errors.New("pattern: too few columns")

	// ErrInvalidToken is returned for a token that is neither a digit 0..3
	// nor a legacy "N M" bit pair.
	ErrInvalidToken = errors.New("pattern: invalid value token")
)

// Consistency and precondition failures.
var (
	// ErrAmbiguousCase signals that a pattern matched more than one catalog
	// case. Either the catalog or the input is broken; never swallowed.
	ErrAmbiguousCase = errors.New("pattern: matches more than one case")

	// ErrNotRearrangeable is returned by Rearrange for unmatched patterns.
	ErrNotRearrangeable = errors.New("pattern: no case to rearrange against")

	// ErrStalePattern is returned by Rearrange and MatchSubCase after a T-gate
	// op left the derived views behind P. Call Refresh first.
	ErrStalePattern = errors.New("pattern: derived views are stale")

	// ErrIDOverflow is returned by Assignments when the pattern id is too
	// large (or negative) for id*AssignmentIDStride + k to fit an int.
	ErrIDOverflow = errors.New("pattern: id too large for assignment ids")
)

// T-gate and LDE argument errors.
var (
	// ErrOutOfRange indicates a row, column or line index outside the grid.
	ErrOutOfRange = errors.New("pattern: index out of range")

	// ErrSameLine is returned when a T-gate is asked to combine a line with itself.
	ErrSameLine = errors.New("pattern: T-gate lines must differ")

	// ErrNegativeAmount is returned for a negative LDE reduction.
	ErrNegativeAmount = errors.New("pattern: negative LDE reduction")
)
