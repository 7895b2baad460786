package trace

import (
	"fmt"
	"math"
)

// Coordinates locates a station relative to the array reference point.
// Units are kilometers; X points east, Y north.
type Coordinates struct {
	X         float64
	Y         float64
	Elevation float64
}

// PolesZeros describes an instrument response in pole-zero form.
type PolesZeros struct {
	Poles       []complex128
	Zeros       []complex128
	Gain        float64
	Sensitivity float64
}

// Stats holds per-channel metadata.
type Stats struct {
	Channel     string
	SampleRate  float64
	StartTime   Time
	Coordinates *Coordinates
	Response    *PolesZeros
}

// Trace is one channel of evenly sampled data with its metadata.
type Trace struct {
	Stats
	Data []float64
}

// New returns a Trace over data with the given channel metadata.
func New(channel string, sampleRate float64, start Time, data []float64) (*Trace, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("trace: sample rate must be > 0: %f", sampleRate)
	}

	return &Trace{
		Stats: Stats{
			Channel:    channel,
			SampleRate: sampleRate,
			StartTime:  start,
		},
		Data: data,
	}, nil
}

// Delta returns the sampling interval in seconds.
func (tr *Trace) Delta() float64 {
	return 1 / tr.SampleRate
}

// EndTime returns the time of the last sample.
func (tr *Trace) EndTime() Time {
	if len(tr.Data) == 0 {
		return tr.StartTime
	}
	return tr.StartTime.Add(float64(len(tr.Data)-1) / tr.SampleRate)
}

// Duration returns the trace length in seconds, last sample inclusive.
func (tr *Trace) Duration() float64 {
	return tr.EndTime().Seconds() - tr.StartTime.Seconds()
}

// Copy returns a deep copy of the trace.
func (tr *Trace) Copy() *Trace {
	out := &Trace{Stats: tr.Stats}
	out.Data = append([]float64(nil), tr.Data...)

	if tr.Coordinates != nil {
		c := *tr.Coordinates
		out.Coordinates = &c
	}

	if tr.Response != nil {
		r := PolesZeros{
			Poles:       append([]complex128(nil), tr.Response.Poles...),
			Zeros:       append([]complex128(nil), tr.Response.Zeros...),
			Gain:        tr.Response.Gain,
			Sensitivity: tr.Response.Sensitivity,
		}
		out.Response = &r
	}

	return out
}

// Slice returns a copy of the trace restricted to [from, to].
//
// Sample positions are rounded to the nearest sample. The slice must lie
// inside the trace extent.
func (tr *Trace) Slice(from, to Time) (*Trace, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to %f before from %f", ErrInvalidSlice, to.Seconds(), from.Seconds())
	}

	i0 := int(math.Round((from.Seconds() - tr.StartTime.Seconds()) * tr.SampleRate))
	i1 := int(math.Round((to.Seconds() - tr.StartTime.Seconds()) * tr.SampleRate))

	if i0 < 0 || i1 >= len(tr.Data) {
		return nil, fmt.Errorf("%w: [%d, %d] of %d samples", ErrInvalidSlice, i0, i1, len(tr.Data))
	}

	out := tr.Copy()
	out.Data = append([]float64(nil), tr.Data[i0:i1+1]...)
	out.StartTime = tr.StartTime.Add(float64(i0) / tr.SampleRate)

	return out, nil
}
