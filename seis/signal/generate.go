// Package signal generates deterministic seismic test signals.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-seis/seis/core"
	"github.com/cwbudde/algo-seis/seis/trace"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic Gaussian white noise.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = rng.NormFloat64() * amplitude
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}

// PlaneWave synthesizes a coherent plane wave crossing an array.
//
// A single deterministic noise waveform is shifted per channel by the
// plane-wave delay implied by the station offset (km, relative to any
// common reference), the backazimuth (degrees clockwise from north) and
// the slowness magnitude (s/km). Delays are rounded to whole samples and
// the waveform is trimmed so all channels stay aligned and equal length.
func PlaneWave(coords []trace.Coordinates, bazDeg, slowness, sampleRate, amplitude float64, samples int, seed int64) (trace.Stream, error) {
	if len(coords) < 2 {
		return nil, fmt.Errorf("plane wave needs at least 2 stations: %d", len(coords))
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("plane wave sample rate must be > 0: %f", sampleRate)
	}
	if samples <= 0 {
		return nil, fmt.Errorf("plane wave samples must be > 0: %d", samples)
	}
	if slowness < 0 {
		return nil, fmt.Errorf("plane wave slowness must be >= 0: %f", slowness)
	}

	baz := bazDeg * math.Pi / 180
	sinB := math.Sin(baz)
	cosB := math.Cos(baz)

	shifts := make([]int, len(coords))
	minShift, maxShift := 0, 0
	for i, c := range coords {
		d := sampleRate * slowness * (sinB*c.X + cosB*c.Y)
		shifts[i] = int(math.Round(d))
		if shifts[i] < minShift {
			minShift = shifts[i]
		}
		if shifts[i] > maxShift {
			maxShift = shifts[i]
		}
	}

	lead := -minShift + 1
	tail := maxShift + 1
	usable := samples - lead - tail
	if usable < 2 {
		return nil, fmt.Errorf("plane wave: %d samples leave no room for %d samples of shift", samples, lead+tail)
	}

	wave := make([]float64, samples)
	rng := rand.New(rand.NewSource(seed))
	for i := range wave {
		wave[i] = rng.NormFloat64() * amplitude
	}

	st := make(trace.Stream, len(coords))
	for i, c := range coords {
		from := lead + shifts[i]
		data := append([]float64(nil), wave[from:from+usable]...)

		tr, err := trace.New(fmt.Sprintf("ST%02d", i), sampleRate, 0, data)
		if err != nil {
			return nil, err
		}
		cc := c
		tr.Coordinates = &cc
		st[i] = tr
	}

	return st, nil
}
