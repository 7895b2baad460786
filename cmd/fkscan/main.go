// Command fkscan runs slowness-grid FK beamforming over a stream container
// and prints one row per analysis window.
//
// Usage:
//
//	fkscan [flags] -in stream.json
//
// Examples:
//
//	fkscan -in array.json -win 2 -frac 0.2 -flow 1 -fhigh 8
//	fkscan -in array.json -slow 0.5 -step 0.02 -prewhiten
//	fkscan -demo -baz 45 -dslow 0.2
//	fkscan -in array.json -csv > records.csv
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-seis/seis/fk"
	"github.com/cwbudde/algo-seis/seis/signal"
	"github.com/cwbudde/algo-seis/seis/trace"
)

func main() {
	in := flag.String("in", "", "stream container file (JSON)")
	winLen := flag.Float64("win", 2.0, "window length in seconds")
	winFrac := flag.Float64("frac", 0.5, "window step as a fraction of the window length")
	slowMax := flag.Float64("slow", 0.3, "slowness grid half-width in s/km")
	slowStep := flag.Float64("step", 0.03, "slowness grid step in s/km")
	freqLow := flag.Float64("flow", 1.0, "lower band edge in Hz")
	freqHigh := flag.Float64("fhigh", 8.0, "upper band edge in Hz")
	sembThres := flag.Float64("semb", math.SmallestNonzeroFloat64, "relative power acceptance threshold")
	velThres := flag.Float64("vel", math.SmallestNonzeroFloat64, "apparent velocity acceptance threshold in km/s")
	prewhiten := flag.Bool("prewhiten", false, "flatten spectral amplitude before the beam search")
	bandpass := flag.Int("bp", 0, "time-domain Butterworth bandpass order (0 disables)")
	workers := flag.Int("workers", 1, "number of parallel window workers")
	csv := flag.Bool("csv", false, "print comma-separated values instead of a table")
	demo := flag.Bool("demo", false, "synthesize a plane-wave demo stream instead of loading one")
	demoBaz := flag.Float64("baz", 45, "demo plane-wave backazimuth in degrees")
	demoSlow := flag.Float64("dslow", 0.2, "demo plane-wave slowness in s/km")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fkscan [flags] -in stream.json\n\n")
		fmt.Fprintf(os.Stderr, "Runs FK beamforming over a multi-channel stream container and\n")
		fmt.Fprintf(os.Stderr, "prints one row per analysis window.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fkscan -in array.json -win 2 -frac 0.2 -flow 1 -fhigh 8\n")
		fmt.Fprintf(os.Stderr, "  fkscan -demo -baz 45 -dslow 0.2\n")
	}
	flag.Parse()

	var (
		st  trace.Stream
		err error
	)

	switch {
	case *demo:
		st, err = demoStream(*demoBaz, *demoSlow)
	case *in != "":
		st, err = trace.LoadStream(*in)
	default:
		fmt.Fprintf(os.Stderr, "error: either -in or -demo is required\n")
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	params := fk.Params{
		WinLen:    *winLen,
		WinFrac:   *winFrac,
		Grid:      fk.SymmetricGrid(*slowMax, *slowStep),
		FreqLow:   *freqLow,
		FreqHigh:  *freqHigh,
		SembThres: *sembThres,
		VelThres:  *velThres,
		Prewhiten: *prewhiten,
		Start:     st.MinStartTime(),
		End:       st.MaxEndTime(),
	}

	var opts []fk.Option
	if *workers > 1 {
		opts = append(opts, fk.WithParallel(*workers))
	}
	if *bandpass > 0 {
		opts = append(opts, fk.WithBandpass(*bandpass))
	}

	records, err := fk.Scan(st, params, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *csv {
		printCSV(records)
		return
	}
	printTable(records)
}

// demoStream synthesizes a plane wave crossing a small ring array.
func demoStream(bazDeg, slowness float64) (trace.Stream, error) {
	coords := []trace.Coordinates{
		{X: 0, Y: 0},
		{X: -0.05, Y: 0.07},
		{X: 0.05, Y: 0.07},
		{X: 0.1, Y: 0},
		{X: 0.05, Y: -0.07},
		{X: -0.05, Y: -0.07},
		{X: -0.1, Y: 0},
	}

	return signal.PlaneWave(coords, bazDeg, slowness, 100, 1, 3000, 2348)
}

func printTable(records []fk.Record) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Time\tRel Power\tAbs Power\tBaz [deg]\tSlowness [s/km]\n"); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "----\t---------\t---------\t---------\t---------------\n"); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, r := range records {
		if _, err := fmt.Fprintf(tw, "%.3f\t%.4f\t%.4g\t%.1f\t%.3f\n",
			r.Time.Seconds(),
			r.RelPower,
			r.AbsPower,
			r.Backazimuth,
			r.Slowness,
		); err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printCSV(records []fk.Record) {
	fmt.Println("time,rel_power,abs_power,backazimuth,slowness")
	for _, r := range records {
		fmt.Printf("%.6f,%.6g,%.6g,%.3f,%.4f\n",
			r.Time.Seconds(), r.RelPower, r.AbsPower, r.Backazimuth, r.Slowness)
	}
}
