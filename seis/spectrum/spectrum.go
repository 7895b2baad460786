// Package spectrum provides real-input spectra and power utilities for
// seismic analysis windows.
package spectrum

import (
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

var (
	planMu    sync.Mutex
	planCache = map[int]*algofft.Plan[complex128]{}
)

func planFor(fftSize int) (*algofft.Plan[complex128], error) {
	planMu.Lock()
	defer planMu.Unlock()

	if p, ok := planCache[fftSize]; ok {
		return p, nil
	}

	p, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	planCache[fftSize] = p
	return p, nil
}

// HalfSpectrum computes the one-sided spectrum of real data, zero-padded
// to fftSize. It returns bins 0..fftSize/2 inclusive.
//
// fftSize must be a power of two not smaller than len(data).
func HalfSpectrum(data []float64, fftSize int) ([]complex128, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("spectrum: input must not be empty")
	}
	if fftSize < len(data) || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("spectrum: fft size must be a power of two >= %d: %d", len(data), fftSize)
	}

	plan, err := planFor(fftSize)
	if err != nil {
		return nil, err
	}

	in := make([]complex128, fftSize)
	for i, v := range data {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward transform: %w", err)
	}

	return out[:fftSize/2+1], nil
}

// Power returns |X[k]|^2 for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
//
// This is the zero-allocation fast path for callers that already have real
// and imaginary parts in separate slices. All three slices must have the
// same length.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// BinFrequency returns the centre frequency of a bin in Hz.
func BinFrequency(bin, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}
	return float64(bin) * sampleRate / float64(fftSize)
}

// FrequencyBin returns the nearest bin index for a frequency in Hz.
func FrequencyBin(freq, sampleRate float64, fftSize int) int {
	if sampleRate <= 0 || fftSize <= 0 {
		return 0
	}
	return int(freq/(sampleRate/float64(fftSize)) + 0.5)
}

// NextPowerOfTwo returns the smallest power of two >= n.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
