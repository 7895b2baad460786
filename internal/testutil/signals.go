package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-seis/seis/trace"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// GaussianNoise generates Gaussian noise with a fixed seed for reproducibility.
func GaussianNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64() * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// RingArray returns n station coordinates evenly spaced on a ring of the
// given radius (km), plus one station at the centre.
func RingArray(n int, radiusKm float64) []trace.Coordinates {
	out := make([]trace.Coordinates, 0, n+1)
	out = append(out, trace.Coordinates{})
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		out = append(out, trace.Coordinates{
			X: radiusKm * math.Sin(angle),
			Y: radiusKm * math.Cos(angle),
		})
	}
	return out
}

// AlignedStream builds an aligned stream from equal-length channel data,
// attaching ring-array coordinates in order.
func AlignedStream(sampleRate float64, start trace.Time, coords []trace.Coordinates, channels ...[]float64) trace.Stream {
	st := make(trace.Stream, len(channels))
	for i, data := range channels {
		tr := &trace.Trace{Data: data}
		tr.Channel = stationName(i)
		tr.SampleRate = sampleRate
		tr.StartTime = start
		if i < len(coords) {
			c := coords[i]
			tr.Coordinates = &c
		}
		st[i] = tr
	}
	return st
}

func stationName(i int) string {
	const digits = "0123456789"
	return "ST" + string([]byte{digits[(i/10)%10], digits[i%10]})
}
