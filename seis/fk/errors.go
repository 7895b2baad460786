package fk

import "errors"

var (
	ErrInsufficientChannels = errors.New("fk: at least 2 channels are required")
	ErrInvalidGeometry      = errors.New("fk: channel lacks station coordinates")
	ErrInvalidGrid          = errors.New("fk: slowness grid bounds are degenerate")
	ErrInvalidWindow        = errors.New("fk: window exceeds available time-series duration")
	ErrInvalidBand          = errors.New("fk: frequency band must satisfy 0 < low < high <= nyquist")
)
