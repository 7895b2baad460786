//go:build !fastmath

package fk

import "math"

// mathHypot computes sqrt(x^2 + y^2) using standard library math.
func mathHypot(x, y float64) float64 {
	return math.Hypot(x, y)
}
