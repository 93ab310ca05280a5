package types

import "errors"

// Input validation errors. These fail fast at the pipeline boundary and
// are never silently coerced.
var (
	ErrLengthMismatch   = errors.New("observation arrays have mismatched lengths")
	ErrTooFewPoints     = errors.New("too few observations")
	ErrInvalidSeries    = errors.New("invalid observation series")
	ErrNonPositiveError = errors.New("measurement uncertainty must be positive")
	ErrDegenerateSpan   = errors.New("degenerate time span")
	ErrNonPositiveMass  = errors.New("stellar mass must be positive")
)
