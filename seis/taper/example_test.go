package taper_test

import (
	"fmt"

	"github.com/cwbudde/algo-seis/seis/taper"
)

func ExampleHann() {
	coeffs, _ := taper.Hann(5)
	for _, v := range coeffs {
		fmt.Printf("%.1f ", v)
	}
	fmt.Println()
	// Output: 0.0 0.5 1.0 0.5 0.0
}

func ExampleSplitCosine() {
	coeffs, _ := taper.SplitCosine(10, 0.1)
	fmt.Printf("%.0f %.0f %.0f\n", coeffs[0], coeffs[5], coeffs[9])
	// Output: 0 1 0
}
