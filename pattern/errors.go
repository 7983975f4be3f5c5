package pattern

import "errors"

// Failure modes of a transform call. Errors returned by this package wrap
// one of these, so callers can test with errors.Is.
var (
	ErrPrecursorNotSet    = errors.New("required input has not been set")
	ErrLengthMismatch     = errors.New("paired sequences differ in length")
	ErrZeroTotalWeight    = errors.New("weights sum to zero")
	ErrInvalidRange       = errors.New("range maximum is below minimum")
	ErrInvalidProbability = errors.New("probability outside 0-1")
	ErrInvalidArgument    = errors.New("invalid argument")
)
