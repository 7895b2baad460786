package taper

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a taper function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeTukey
	TypeCosine
	TypeSplitCosine
)

// defaultFraction is the edge fraction used for the split-cosine taper
// when no option overrides it.
const defaultFraction = 0.1

// Option configures taper generation.
type Option func(*config)

type config struct {
	alpha    float64
	fraction float64
	periodic bool
}

func defaultConfig() config {
	return config{
		alpha:    0.5,
		fraction: defaultFraction,
	}
}

// WithAlpha configures the alpha parameter for parametric tapers (Tukey).
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
		}
	}
}

// WithFraction configures the edge fraction for the split-cosine taper.
func WithFraction(v float64) Option {
	return func(c *config) {
		if v >= 0 && v <= 0.5 {
			c.fraction = v
		}
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns taper coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if t == TypeSplitCosine {
		return splitCosine(length, cfg.fraction)
	}

	out := make([]float64, length)
	for i := range out {
		x := samplePosition(i, length, cfg.periodic)
		out[i] = evalTaper(t, x, cfg)
	}

	return out
}

// Apply multiplies buf in-place by the selected taper.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf), opts...)
	if len(coeffs) != len(buf) {
		return
	}

	vecmath.MulBlockInPlace(buf, coeffs)
}

// Hann returns Hann taper coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeHann, size, opts...), validateLength(size)
}

// Tukey returns Tukey taper coefficients.
func Tukey(size int, alpha float64, opts ...Option) ([]float64, error) {
	if size <= 0 || alpha < 0 || alpha > 1 {
		return nil, validateTukey(size, alpha)
	}

	return Generate(TypeTukey, size, append(opts, WithAlpha(alpha))...), nil
}

// SplitCosine returns split-cosine taper coefficients with the given edge fraction.
func SplitCosine(size int, fraction float64) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}
	if err := validateFraction(fraction); err != nil {
		return nil, err
	}

	return splitCosine(size, fraction), nil
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

func evalTaper(t Type, x float64, cfg config) float64 {
	if x < 0 {
		x = 0
	}

	if x > 1 {
		x = 1
	}

	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeTukey:
		return tukeyAt(x, cfg.alpha)
	case TypeCosine:
		return math.Sin(math.Pi * x)
	default:
		return 1
	}
}

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	if alpha >= 1 {
		return cosineFromCoeffs(x, hannCoeffs)
	}

	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}

// splitCosine builds the flat-centre taper with cosine ramps over
// fraction*n samples at each edge. Index arithmetic follows the classic
// array-processing formulation: ramps meet the flat part at i2 and i3,
// the endpoints are forced to zero.
func splitCosine(n int, fraction float64) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = 1
		return out
	}

	i1 := 0
	i4 := n - 1

	i2 := int(fraction*float64(n) + 0.5)
	if float64(i2) > float64(n-1)/2 {
		i2 = int(float64(n-1) / 2)
	}

	i3 := n - 1 - int(fraction*float64(n)+0.5)
	if float64(i3) < float64(n-1)/2 {
		i3 = int(float64(n-1)/2 + 1)
	}

	for k := range out {
		switch {
		case k <= i1 || k >= i4:
			if k == i2 || k == i3 {
				out[k] = 1
			} else {
				out[k] = 0
			}
		case k > i1 && k <= i2:
			phase := math.Pi * float64(k-i1) / float64(i2-i1+1)
			out[k] = math.Abs(0.5 - 0.5*math.Cos(phase))
		case k >= i3 && k < i4:
			phase := math.Pi * float64(i4-k) / float64(i4-i3+1)
			out[k] = math.Abs(0.5 - 0.5*math.Cos(phase))
		default:
			out[k] = 1
		}
	}

	return out
}
