package filter

import (
	"fmt"
	"math"
)

const defaultQ = 1 / math.Sqrt2

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Highpass designs a highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := (1 + cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Bandpass designs a constant-skirt-gain bandpass biquad.
func Bandpass(freq, q, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := sw / 2
	b1 := 0.0
	b2 := -sw / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []Coefficients {
	if order <= 0 {
		return nil
	}
	sections := make([]Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		q := butterworthQ(order, i)
		sections = append(sections, Lowpass(freq, q, sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, firstOrderLP(freq, sampleRate))
	}
	return sections
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []Coefficients {
	if order <= 0 {
		return nil
	}
	sections := make([]Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		q := butterworthQ(order, i)
		sections = append(sections, Highpass(freq, q, sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, firstOrderHP(freq, sampleRate))
	}
	return sections
}

// ButterworthBP designs a bandpass cascade as highpass at low cascaded
// with lowpass at high, each of the given order.
func ButterworthBP(low, high float64, order int, sampleRate float64) ([]Coefficients, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	nyquist := sampleRate / 2
	if sampleRate <= 0 || low <= 0 || high <= low || high >= nyquist {
		return nil, fmt.Errorf("%w: low=%f high=%f nyquist=%f", ErrInvalidBand, low, high, nyquist)
	}

	sections := ButterworthHP(low, order, sampleRate)
	sections = append(sections, ButterworthLP(high, order, sampleRate)...)

	return sections, nil
}

// ApplyBandpass returns a bandpass-filtered copy of data.
func ApplyBandpass(data []float64, low, high, sampleRate float64, order int) ([]float64, error) {
	sections, err := ButterworthBP(low, high, order, sampleRate)
	if err != nil {
		return nil, err
	}

	out := append([]float64(nil), data...)
	NewChain(sections).ProcessBlock(out)

	return out, nil
}

// butterworthQ returns the quality factor of the i-th second-order section
// of an order-n Butterworth cascade.
func butterworthQ(order, i int) float64 {
	angle := math.Pi * (2*float64(i) + 1) / (2 * float64(order))
	return 1 / (2 * math.Sin(angle))
}

func firstOrderLP(freq, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Coefficients{}
	}

	k := math.Tan(w0 / 2)
	den := k + 1

	return Coefficients{
		B0: k / den,
		B1: k / den,
		A1: (k - 1) / den,
	}
}

func firstOrderHP(freq, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Coefficients{}
	}

	k := math.Tan(w0 / 2)
	den := k + 1

	return Coefficients{
		B0: 1 / den,
		B1: -1 / den,
		A1: (k - 1) / den,
	}
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Coefficients{}
	}

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
