package spectrum

import (
	"math"
	"math/cmplx"
	"testing"
)

func sine(freqHz, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = math.Sin(step * float64(i))
	}
	return out
}

func TestHalfSpectrumSinePeak(t *testing.T) {
	const (
		fftSize    = 256
		sampleRate = 256.0
		freq       = 8.0 // exactly bin 8
	)

	bins, err := HalfSpectrum(sine(freq, sampleRate, fftSize), fftSize)
	if err != nil {
		t.Fatalf("HalfSpectrum error: %v", err)
	}
	if len(bins) != fftSize/2+1 {
		t.Fatalf("got %d bins, want %d", len(bins), fftSize/2+1)
	}

	peak := 0
	for i := range bins {
		if cmplx.Abs(bins[i]) > cmplx.Abs(bins[peak]) {
			peak = i
		}
	}
	if peak != 8 {
		t.Fatalf("peak at bin %d, want 8", peak)
	}

	// A unit sine of N samples carries N/2 magnitude in its bin.
	if got := cmplx.Abs(bins[peak]); math.Abs(got-fftSize/2) > 1e-6 {
		t.Fatalf("peak magnitude %v, want %v", got, float64(fftSize/2))
	}
}

func TestHalfSpectrumZeroPadding(t *testing.T) {
	data := sine(8, 256, 200)

	bins, err := HalfSpectrum(data, 256)
	if err != nil {
		t.Fatalf("HalfSpectrum error: %v", err)
	}
	if len(bins) != 129 {
		t.Fatalf("got %d bins, want 129", len(bins))
	}
}

func TestHalfSpectrumValidation(t *testing.T) {
	if _, err := HalfSpectrum(nil, 8); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := HalfSpectrum(make([]float64, 10), 8); err == nil {
		t.Fatalf("expected error for fft size below input length")
	}
	if _, err := HalfSpectrum(make([]float64, 10), 12); err == nil {
		t.Fatalf("expected error for non power of two size")
	}
}

func TestPowerAndMagnitude(t *testing.T) {
	in := []complex128{complex(3, 4), complex(0, 0), complex(-1, 1)}

	pw := Power(in)
	mag := Magnitude(in)
	for i, c := range in {
		wantPw := real(c)*real(c) + imag(c)*imag(c)
		if math.Abs(pw[i]-wantPw) > 1e-12 {
			t.Fatalf("power bin %d: got %v, want %v", i, pw[i], wantPw)
		}
		if math.Abs(mag[i]-math.Sqrt(wantPw)) > 1e-12 {
			t.Fatalf("magnitude bin %d: got %v, want %v", i, mag[i], math.Sqrt(wantPw))
		}
	}

	if Power(nil) != nil {
		t.Fatalf("empty power must return nil")
	}
}

func TestPowerFromParts(t *testing.T) {
	re := []float64{3, 0, -1}
	im := []float64{4, 0, 1}
	dst := make([]float64, 3)

	PowerFromParts(dst, re, im)
	want := []float64{25, 0, 2}
	for i := range want {
		if math.Abs(dst[i]-want[i]) > 1e-12 {
			t.Fatalf("bin %d: got %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestBinFrequencyRoundTrip(t *testing.T) {
	const (
		fftSize    = 1024
		sampleRate = 100.0
	)

	for _, bin := range []int{1, 10, 82, 511} {
		freq := BinFrequency(bin, fftSize, sampleRate)
		if got := FrequencyBin(freq, sampleRate, fftSize); got != bin {
			t.Fatalf("bin %d -> %f Hz -> bin %d", bin, freq, got)
		}
	}

	if BinFrequency(5, 0, 100) != 0 {
		t.Fatalf("degenerate fft size must map to 0")
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{
		0:    1,
		1:    1,
		2:    2,
		3:    4,
		200:  256,
		256:  256,
		1000: 1024,
	}
	for n, want := range cases {
		if got := NextPowerOfTwo(n); got != want {
			t.Fatalf("NextPowerOfTwo(%d) = %d, want %d", n, got, want)
		}
	}
}
