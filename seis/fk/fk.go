package fk

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/cwbudde/algo-seis/seis/core"
	"github.com/cwbudde/algo-seis/seis/filter"
	"github.com/cwbudde/algo-seis/seis/spectrum"
	"github.com/cwbudde/algo-seis/seis/taper"
	"github.com/cwbudde/algo-seis/seis/trace"
)

// minSlowness floors the selected slowness magnitude so the apparent
// velocity test cannot divide by zero.
const minSlowness = 1e-8

// defaultTaperFraction is the split-cosine edge fraction applied to every
// analysis window before transforming.
const defaultTaperFraction = 0.1

// Params configures a beamforming scan.
type Params struct {
	// WinLen is the analysis window length in seconds.
	WinLen float64

	// WinFrac is the step between successive windows as a fraction of
	// WinLen, in (0, 1].
	WinFrac float64

	// Grid is the slowness search grid.
	Grid Grid

	// FreqLow and FreqHigh bound the analysis band in Hz.
	FreqLow  float64
	FreqHigh float64

	// SembThres and VelThres reject windows whose relative power or
	// apparent velocity (1/slowness) is not strictly above the
	// respective value. Set them to a tiny positive number (or below)
	// to effectively disable rejection.
	SembThres float64
	VelThres  float64

	// Prewhiten flattens spectral amplitude before the beam search by
	// normalizing each frequency bin's power map by its maximum.
	Prewhiten bool

	// Start and End bound the analysis in absolute time.
	Start trace.Time
	End   trace.Time
}

// Option configures scan behavior beyond the core parameters.
type Option func(*config)

type config struct {
	workers       int
	filterOrder   int
	taperFraction float64
}

func defaultScanConfig() config {
	return config{
		workers:       1,
		taperFraction: defaultTaperFraction,
	}
}

// WithParallel distributes windows across the given number of worker
// goroutines. Results are re-sorted by window time before returning, so
// the output is identical to a sequential scan.
func WithParallel(workers int) Option {
	return func(c *config) {
		if workers > 0 {
			c.workers = workers
		}
	}
}

// WithBandpass enables time-domain Butterworth bandpass pre-conditioning
// of the given order over [FreqLow, FreqHigh] before windowing.
func WithBandpass(order int) Option {
	return func(c *config) {
		if order > 0 {
			c.filterOrder = order
		}
	}
}

// WithTaperFraction overrides the split-cosine edge fraction.
func WithTaperFraction(fraction float64) Option {
	return func(c *config) {
		if fraction >= 0 && fraction <= 0.5 {
			c.taperFraction = fraction
		}
	}
}

// Scan runs the slowness-grid beam search over st and returns one Record
// per accepted window, sorted by window time ascending.
//
// The scan never mutates its inputs; identical inputs yield identical
// output sequences.
func Scan(st trace.Stream, p Params, opts ...Option) ([]Record, error) {
	cfg := defaultScanConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := st.Validate(); err != nil {
		return nil, err
	}

	geom, err := GeometryFromStream(st)
	if err != nil {
		return nil, err
	}

	if err := p.Grid.Validate(); err != nil {
		return nil, err
	}

	rate := st.SampleRate()
	nyquist := rate / 2
	if p.FreqLow <= 0 || p.FreqHigh <= p.FreqLow || p.FreqHigh > nyquist {
		return nil, fmt.Errorf("%w: low=%f high=%f nyquist=%f", ErrInvalidBand, p.FreqLow, p.FreqHigh, nyquist)
	}

	if p.WinLen <= 0 {
		return nil, fmt.Errorf("fk: window length must be > 0: %f", p.WinLen)
	}
	if p.WinFrac <= 0 || p.WinFrac > 1 {
		return nil, fmt.Errorf("fk: window step fraction must be in (0, 1]: %f", p.WinFrac)
	}
	if !p.End.After(p.Start) {
		return nil, fmt.Errorf("%w: end %f not after start %f", ErrInvalidWindow, p.End.Seconds(), p.Start.Seconds())
	}

	traceStart := st[0].StartTime
	istart := int(math.Round((p.Start.Seconds() - traceStart.Seconds()) * rate))
	iend := int(math.Round((p.End.Seconds() - traceStart.Seconds()) * rate))
	if istart < 0 {
		return nil, fmt.Errorf("%w: start %f before trace start %f", ErrInvalidWindow, p.Start.Seconds(), traceStart.Seconds())
	}
	if iend > len(st[0].Data)-1 {
		iend = len(st[0].Data) - 1
	}

	nsamp := int(p.WinLen*rate + 0.5)
	if nsamp < 2 {
		return nil, fmt.Errorf("fk: window of %f s holds fewer than 2 samples at %f Hz", p.WinLen, rate)
	}
	if istart+nsamp > iend+1 {
		return nil, fmt.Errorf("%w: %d samples needed, %d available", ErrInvalidWindow, nsamp, iend+1-istart)
	}

	nstep := int(float64(nsamp)*p.WinFrac + 0.5)
	if nstep < 1 {
		nstep = 1
	}

	data := make([][]float64, len(st))
	for j, tr := range st {
		if cfg.filterOrder > 0 {
			filtered, err := filter.ApplyBandpass(tr.Data, p.FreqLow, p.FreqHigh, rate, cfg.filterOrder)
			if err != nil {
				return nil, fmt.Errorf("fk: bandpass channel %s: %w", tr.Channel, err)
			}
			data[j] = filtered
		} else {
			data[j] = tr.Data
		}
	}

	nfft := spectrum.NextPowerOfTwo(nsamp)
	df := rate / float64(nfft)

	// Bin 0 carries the offset and the bin next to Nyquist is unreliable;
	// both stay out of the band.
	wlow := int(p.FreqLow/df + 0.5)
	if wlow < 1 {
		wlow = 1
	}
	whigh := int(p.FreqHigh/df + 0.5)
	if whigh > nfft/2-1 {
		whigh = nfft/2 - 1
	}
	if whigh < wlow {
		return nil, fmt.Errorf("%w: band holds no usable bins for a %d-point transform", ErrInvalidBand, nfft)
	}

	table := timeShiftTable(geom, p.Grid)
	coeffs := taper.Generate(taper.TypeSplitCosine, nsamp, taper.WithFraction(cfg.taperFraction))

	var offsets []int
	for o := istart; o+nsamp <= iend+1; o += nstep {
		offsets = append(offsets, o)
	}

	w := &scanWork{
		params:    p,
		data:      data,
		table:     table,
		coeffs:    coeffs,
		rate:      rate,
		nsamp:     nsamp,
		nfft:      nfft,
		df:        df,
		wlow:      wlow,
		whigh:     whigh,
		startTime: traceStart,
	}

	results := make([]windowResult, len(offsets))
	if cfg.workers > 1 {
		var wg sync.WaitGroup
		idxCh := make(chan int)

		for i := 0; i < cfg.workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range idxCh {
					results[i] = w.processWindow(offsets[i])
				}
			}()
		}

		for i := range offsets {
			idxCh <- i
		}
		close(idxCh)
		wg.Wait()
	} else {
		for i, o := range offsets {
			results[i] = w.processWindow(o)
		}
	}

	out := make([]Record, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		if r.ok {
			out = append(out, r.rec)
		}
	}

	// Workers finish out of order only within the results slice; the
	// output sequence must be time-ascending regardless.
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })

	return out, nil
}

type windowResult struct {
	rec Record
	ok  bool
	err error
}

// scanWork bundles the immutable per-run state shared by all windows.
type scanWork struct {
	params    Params
	data      [][]float64
	table     [][][]float64
	coeffs    []float64
	rate      float64
	nsamp     int
	nfft      int
	df        float64
	wlow      int
	whigh     int
	startTime trace.Time
}

func (w *scanWork) processWindow(offset int) windowResult {
	p := w.params
	nchan := len(w.data)
	nx := p.Grid.NX()
	ny := p.Grid.NY()

	spectra := make([][]complex128, nchan)
	buf := make([]float64, w.nsamp)

	for j, ch := range w.data {
		copy(buf, ch[offset:offset+w.nsamp])
		core.Demean(buf)
		if err := taper.ApplyCoefficientsInPlace(buf, w.coeffs); err != nil {
			return windowResult{err: fmt.Errorf("fk: taper window: %w", err)}
		}

		bins, err := spectrum.HalfSpectrum(buf, w.nfft)
		if err != nil {
			return windowResult{err: fmt.Errorf("fk: window transform: %w", err)}
		}
		spectra[j] = bins
	}

	// Total single-channel power in the band, scaled by channel count.
	// This is the relative-power denominator; the beam power can never
	// exceed it, which keeps relative power in [0, 1].
	denom := 0.0
	for bin := w.wlow; bin <= w.whigh; bin++ {
		for j := range spectra {
			c := spectra[j][bin]
			denom += real(c)*real(c) + imag(c)*imag(c)
		}
	}
	denom *= float64(nchan)

	rawMap := make([]float64, nx*ny)
	binMap := make([]float64, nx*ny)
	var selMap []float64
	if p.Prewhiten {
		selMap = make([]float64, nx*ny)
	}

	for bin := w.wlow; bin <= w.whigh; bin++ {
		omega := 2 * math.Pi * w.df * float64(bin)
		binMax := 0.0
		idx := 0

		for k := 0; k < nx; k++ {
			for l := 0; l < ny; l++ {
				var sumRe, sumIm float64
				for j := range spectra {
					sin, cos := math.Sincos(omega * w.table[j][k][l])
					re := real(spectra[j][bin])
					im := imag(spectra[j][bin])
					sumRe += re*cos - im*sin
					sumIm += im*cos + re*sin
				}

				pw := sumRe*sumRe + sumIm*sumIm
				binMap[idx] = pw
				if pw > binMax {
					binMax = pw
				}
				idx++
			}
		}

		for i, v := range binMap {
			rawMap[i] += v
		}

		if p.Prewhiten && binMax > 0 {
			inv := 1 / binMax
			for i, v := range binMap {
				selMap[i] += v * inv
			}
		}
	}

	nbins := float64(w.whigh - w.wlow + 1)

	var rel float64
	bestIdx := 0
	if p.Prewhiten {
		best := 0.0
		for i, v := range selMap {
			if v > best {
				best = v
				bestIdx = i
			}
		}
		rel = best / nbins
	} else {
		best := 0.0
		for i, v := range rawMap {
			if v > best {
				best = v
				bestIdx = i
			}
		}
		if denom > 0 {
			rel = best / denom
		}
	}

	absPow := rawMap[bestIdx] / nbins / float64(nchan*nchan) / float64(w.nfft) / w.rate

	ix := bestIdx / ny
	iy := bestIdx % ny
	sx := p.Grid.SlowX(ix)
	sy := p.Grid.SlowY(iy)

	slow := mathHypot(sx, sy)
	if slow < minSlowness {
		slow = minSlowness
	}

	// The grid point that aligns the beam is the negated propagation
	// direction, so the arrival direction flips both components.
	baz := math.Atan2(-sx, -sy) * 180 / math.Pi
	if baz < 0 {
		baz += 360
	}
	if baz >= 360 {
		baz -= 360
	}

	rec := Record{
		Time:        w.startTime.Add(float64(offset) / w.rate),
		RelPower:    rel,
		AbsPower:    absPow,
		Backazimuth: baz,
		Slowness:    slow,
	}

	accept := rel > p.SembThres && 1/slow > p.VelThres

	return windowResult{rec: rec, ok: accept}
}
