package fk

import "github.com/cwbudde/algo-seis/seis/trace"

// Record is the summary of one accepted analysis window.
type Record struct {
	// Time is the window start.
	Time trace.Time

	// RelPower is the beam power normalized by total single-channel
	// power times the channel count, in [0, 1].
	RelPower float64

	// AbsPower is the denormalized beam power at the selected grid point.
	AbsPower float64

	// Backazimuth is the arrival direction in degrees clockwise from
	// north, in [0, 360).
	Backazimuth float64

	// Slowness is the magnitude of the selected slowness vector in s/km.
	Slowness float64
}
