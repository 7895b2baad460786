package fk

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/cwbudde/algo-seis/internal/testutil"
	"github.com/cwbudde/algo-seis/seis/signal"
	"github.com/cwbudde/algo-seis/seis/trace"
)

const tinyThres = math.SmallestNonzeroFloat64

func ringStream(t *testing.T, bazDeg, slowness float64, samples int) trace.Stream {
	t.Helper()

	coords := testutil.RingArray(6, 1.0)
	st, err := signal.PlaneWave(coords, bazDeg, slowness, 100, 1, samples, 2348)
	if err != nil {
		t.Fatalf("PlaneWave error: %v", err)
	}
	return st
}

func defaultParams(st trace.Stream) Params {
	return Params{
		WinLen:    10,
		WinFrac:   0.5,
		Grid:      SymmetricGrid(0.3, 0.01),
		FreqLow:   1,
		FreqHigh:  8,
		SembThres: tinyThres,
		VelThres:  tinyThres,
		Start:     st.MinStartTime(),
		End:       st.MaxEndTime(),
	}
}

func TestScanRecoversPlaneWave(t *testing.T) {
	st := ringStream(t, 45, 0.2, 1500)

	records, err := Scan(st, defaultParams(st))
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) == 0 {
		t.Fatalf("expected at least one record")
	}

	for _, r := range records {
		testutil.RequireNearlyEqual(t, r.Backazimuth, 45, 2, "backazimuth")
		testutil.RequireNearlyEqual(t, r.Slowness, 0.2, 0.01, "slowness")

		if r.RelPower < 0 || r.RelPower > 1 {
			t.Fatalf("relative power out of [0,1]: %v", r.RelPower)
		}
		if r.AbsPower < 0 {
			t.Fatalf("absolute power negative: %v", r.AbsPower)
		}
	}
}

func TestScanRecordsSortedAndBounded(t *testing.T) {
	st := ringStream(t, 120, 0.15, 4000)

	p := defaultParams(st)
	p.WinLen = 5
	p.WinFrac = 0.25

	records, err := Scan(st, p)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) < 3 {
		t.Fatalf("expected several windows, got %d", len(records))
	}

	maxSlow := math.Hypot(p.Grid.SlowXMax, p.Grid.SlowYMax)
	for i, r := range records {
		if i > 0 && r.Time.Before(records[i-1].Time) {
			t.Fatalf("records not sorted by time at %d", i)
		}
		if r.Backazimuth < 0 || r.Backazimuth >= 360 {
			t.Fatalf("backazimuth out of [0,360): %v", r.Backazimuth)
		}
		if r.Slowness > maxSlow+1e-12 {
			t.Fatalf("slowness %v exceeds grid reach %v", r.Slowness, maxSlow)
		}
	}
}

func TestScanPrewhiten(t *testing.T) {
	st := ringStream(t, 45, 0.2, 1500)

	p := defaultParams(st)
	p.Prewhiten = true

	records, err := Scan(st, p)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) == 0 {
		t.Fatalf("expected at least one record")
	}

	for _, r := range records {
		testutil.RequireNearlyEqual(t, r.Backazimuth, 45, 3, "backazimuth")
		if r.RelPower < 0 || r.RelPower > 1 {
			t.Fatalf("relative power out of [0,1]: %v", r.RelPower)
		}
	}
}

func TestScanIdempotent(t *testing.T) {
	st := ringStream(t, 300, 0.25, 2000)
	p := defaultParams(st)
	p.WinLen = 4

	first, err := Scan(st, p)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	second, err := Scan(st, p)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated scans differ")
	}
}

func TestScanParallelMatchesSequential(t *testing.T) {
	st := ringStream(t, 200, 0.18, 4000)
	p := defaultParams(st)
	p.WinLen = 4
	p.WinFrac = 0.25

	seq, err := Scan(st, p)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	par, err := Scan(st, p, WithParallel(4))
	if err != nil {
		t.Fatalf("parallel Scan error: %v", err)
	}

	if !reflect.DeepEqual(seq, par) {
		t.Fatalf("parallel scan differs from sequential")
	}
}

func TestScanTwoChannelProjection(t *testing.T) {
	coords := []trace.Coordinates{
		{X: -0.5, Y: -0.5},
		{X: 0.5, Y: 0.5},
	}
	st, err := signal.PlaneWave(coords, 45, 0.2, 100, 1, 1500, 2348)
	if err != nil {
		t.Fatalf("PlaneWave error: %v", err)
	}

	records, err := Scan(st, defaultParams(st))
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) == 0 {
		t.Fatalf("expected at least one record")
	}

	// A two-station pair only constrains the slowness projection onto the
	// inter-station axis; check that instead of the full vector.
	dx := coords[1].X - coords[0].X
	dy := coords[1].Y - coords[0].Y
	sin45 := math.Sin(45 * math.Pi / 180)
	wantDelay := 0.2 * (sin45*dx + math.Cos(45*math.Pi/180)*dy)

	for _, r := range records {
		rad := r.Backazimuth * math.Pi / 180
		sx := -r.Slowness * math.Sin(rad)
		sy := -r.Slowness * math.Cos(rad)
		gotDelay := -(sx*dx + sy*dy)

		testutil.RequireNearlyEqual(t, gotDelay, wantDelay, 0.03, "inter-station delay")
	}
}

func TestScanZeroInputNeverNaN(t *testing.T) {
	coords := testutil.RingArray(4, 1.0)
	channels := make([][]float64, len(coords))
	for i := range channels {
		channels[i] = make([]float64, 1200)
	}
	st := testutil.AlignedStream(100, 0, coords, channels...)

	p := defaultParams(st)
	p.WinLen = 4
	p.SembThres = -1
	p.VelThres = -1

	records, err := Scan(st, p)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) == 0 {
		t.Fatalf("expected records with thresholds disabled")
	}

	for _, r := range records {
		if r.RelPower != 0 {
			t.Fatalf("relative power of silence must be exactly 0: %v", r.RelPower)
		}
		if r.AbsPower != 0 {
			t.Fatalf("absolute power of silence must be exactly 0: %v", r.AbsPower)
		}
		if math.IsNaN(r.Backazimuth) || math.IsNaN(r.Slowness) {
			t.Fatalf("NaN leaked into record: %+v", r)
		}
	}
}

func TestScanZeroInputRejectedByTinyThresholds(t *testing.T) {
	coords := testutil.RingArray(4, 1.0)
	channels := make([][]float64, len(coords))
	for i := range channels {
		channels[i] = make([]float64, 1200)
	}
	st := testutil.AlignedStream(100, 0, coords, channels...)

	p := defaultParams(st)
	p.WinLen = 4

	records, err := Scan(st, p)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("silent windows must not pass a positive semblance threshold, got %d records", len(records))
	}
}

func TestScanTinyThresholdsRejectNothing(t *testing.T) {
	st := ringStream(t, 80, 0.22, 4000)
	p := defaultParams(st)
	p.WinLen = 4
	p.WinFrac = 0.5

	records, err := Scan(st, p)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	// Every window of the coherent stream produces power, so every
	// window must survive near-zero thresholds.
	nsamp := int(p.WinLen*st.SampleRate() + 0.5)
	nstep := int(float64(nsamp)*p.WinFrac + 0.5)
	avail := len(st[0].Data)
	want := 0
	for o := 0; o+nsamp <= avail; o += nstep {
		want++
	}

	if len(records) != want {
		t.Fatalf("got %d records, want %d", len(records), want)
	}
}

func TestScanThresholdRejection(t *testing.T) {
	st := ringStream(t, 45, 0.2, 1500)

	p := defaultParams(st)
	p.SembThres = 2 // relative power can never exceed 1

	records, err := Scan(st, p)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected all windows rejected, got %d", len(records))
	}

	p = defaultParams(st)
	p.VelThres = 1e9

	records, err = Scan(st, p)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected all windows rejected by velocity threshold, got %d", len(records))
	}
}

func TestScanWithBandpass(t *testing.T) {
	st := ringStream(t, 45, 0.2, 1500)

	records, err := Scan(st, defaultParams(st), WithBandpass(4))
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) == 0 {
		t.Fatalf("expected at least one record")
	}

	for _, r := range records {
		testutil.RequireNearlyEqual(t, r.Backazimuth, 45, 3, "backazimuth")
	}
}

func TestScanValidation(t *testing.T) {
	st := ringStream(t, 45, 0.2, 1500)

	single := trace.Stream{st[0]}
	if _, err := Scan(single, defaultParams(single)); !errors.Is(err, ErrInsufficientChannels) {
		t.Fatalf("expected ErrInsufficientChannels, got %v", err)
	}

	noCoords := st.Copy()
	noCoords[2].Coordinates = nil
	if _, err := Scan(noCoords, defaultParams(noCoords)); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}

	p := defaultParams(st)
	p.Grid = Grid{SlowXMin: 0.3, SlowXMax: -0.3, SlowYMin: -0.3, SlowYMax: 0.3, Step: 0.01}
	if _, err := Scan(st, p); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("expected ErrInvalidGrid, got %v", err)
	}

	p = defaultParams(st)
	p.WinLen = 1e6
	if _, err := Scan(st, p); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}

	p = defaultParams(st)
	p.FreqLow = 8
	p.FreqHigh = 1
	if _, err := Scan(st, p); !errors.Is(err, ErrInvalidBand) {
		t.Fatalf("expected ErrInvalidBand, got %v", err)
	}

	p = defaultParams(st)
	p.FreqHigh = 80 // beyond nyquist at 100 Hz
	if _, err := Scan(st, p); !errors.Is(err, ErrInvalidBand) {
		t.Fatalf("expected ErrInvalidBand for super-nyquist band, got %v", err)
	}
}

func TestGrid(t *testing.T) {
	g := SymmetricGrid(0.3, 0.1)

	if err := g.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if g.NX() != 7 || g.NY() != 7 {
		t.Fatalf("unexpected grid size: %dx%d", g.NX(), g.NY())
	}
	if g.SlowX(0) != -0.3 || math.Abs(g.SlowX(6)-0.3) > 1e-12 {
		t.Fatalf("unexpected x range: [%v, %v]", g.SlowX(0), g.SlowX(6))
	}

	bad := Grid{SlowXMin: 0, SlowXMax: 0, SlowYMin: -1, SlowYMax: 1, Step: 0.1}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("expected ErrInvalidGrid for flat x bounds, got %v", err)
	}

	bad = Grid{SlowXMin: -1, SlowXMax: 1, SlowYMin: -1, SlowYMax: 1, Step: 0}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("expected ErrInvalidGrid for zero step, got %v", err)
	}
}

func TestGeometryFromStream(t *testing.T) {
	coords := []trace.Coordinates{
		{X: 1, Y: 2},
		{X: 3, Y: 4},
		{X: 5, Y: 6},
	}
	channels := [][]float64{make([]float64, 10), make([]float64, 10), make([]float64, 10)}
	st := testutil.AlignedStream(100, 0, coords, channels...)

	g, err := GeometryFromStream(st)
	if err != nil {
		t.Fatalf("GeometryFromStream error: %v", err)
	}

	// Offsets are centroid-referenced.
	var sumX, sumY float64
	for i := range g.X {
		sumX += g.X[i]
		sumY += g.Y[i]
	}
	if math.Abs(sumX) > 1e-12 || math.Abs(sumY) > 1e-12 {
		t.Fatalf("offsets not centred: sum=(%v, %v)", sumX, sumY)
	}
	if math.Abs(g.X[0]-(-2)) > 1e-12 || math.Abs(g.Y[2]-2) > 1e-12 {
		t.Fatalf("unexpected offsets: %+v", g)
	}
}
