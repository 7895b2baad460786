package trace

import "errors"

var (
	ErrEmptyStream      = errors.New("trace: stream must contain at least one trace")
	ErrMisalignedTraces = errors.New("trace: traces must share a common start time")
	ErrRateMismatch     = errors.New("trace: traces must share a common sample rate")
	ErrLengthMismatch   = errors.New("trace: traces must have equal length")
	ErrInvalidSlice     = errors.New("trace: slice bounds outside trace extent")
)
