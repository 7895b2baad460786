package filter

import "errors"

var (
	ErrInvalidBand  = errors.New("filter: band must satisfy 0 < low < high < nyquist")
	ErrInvalidOrder = errors.New("filter: order must be > 0")
)
