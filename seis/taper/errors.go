package taper

import (
	"errors"
	"fmt"
)

var errMismatchedLength = errors.New("taper: samples and coefficients must have same length")

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("taper: size must be > 0: %d", size)
	}
	return nil
}

func validateFraction(fraction float64) error {
	if fraction < 0 || fraction > 0.5 {
		return fmt.Errorf("taper: fraction must be in [0, 0.5]: %f", fraction)
	}
	return nil
}

func validateTukey(size int, alpha float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("taper: tukey alpha must be in [0,1]: %f", alpha)
	}
	return nil
}
