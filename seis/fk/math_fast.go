//go:build fastmath

package fk

import (
	"github.com/meko-christian/algo-approx"
)

// mathHypot computes sqrt(x^2 + y^2) using fast approximation.
// The grid search only compares and reports slowness magnitudes, so the
// reduced precision stays well below the grid step.
func mathHypot(x, y float64) float64 {
	return approx.FastSqrt(x*x + y*y)
}
