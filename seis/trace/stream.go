package trace

import "fmt"

// Stream is an ordered collection of traces from one array.
type Stream []*Trace

// Validate checks the alignment invariants required by array processing:
// the stream is non-empty and all traces share start time, sample rate and
// sample count.
func (st Stream) Validate() error {
	if len(st) == 0 {
		return ErrEmptyStream
	}

	ref := st[0]
	for i, tr := range st[1:] {
		if tr.SampleRate != ref.SampleRate {
			return fmt.Errorf("%w: trace %d has %f, want %f", ErrRateMismatch, i+1, tr.SampleRate, ref.SampleRate)
		}
		if tr.StartTime != ref.StartTime {
			return fmt.Errorf("%w: trace %d starts at %f, want %f", ErrMisalignedTraces, i+1, tr.StartTime.Seconds(), ref.StartTime.Seconds())
		}
		if len(tr.Data) != len(ref.Data) {
			return fmt.Errorf("%w: trace %d has %d samples, want %d", ErrLengthMismatch, i+1, len(tr.Data), len(ref.Data))
		}
	}

	return nil
}

// SampleRate returns the common sample rate, or 0 for an empty stream.
func (st Stream) SampleRate() float64 {
	if len(st) == 0 {
		return 0
	}
	return st[0].SampleRate
}

// MinStartTime returns the earliest trace start time.
func (st Stream) MinStartTime() Time {
	if len(st) == 0 {
		return 0
	}

	min := st[0].StartTime
	for _, tr := range st[1:] {
		if tr.StartTime.Before(min) {
			min = tr.StartTime
		}
	}
	return min
}

// MaxEndTime returns the latest trace end time.
func (st Stream) MaxEndTime() Time {
	if len(st) == 0 {
		return 0
	}

	max := st[0].EndTime()
	for _, tr := range st[1:] {
		if tr.EndTime().After(max) {
			max = tr.EndTime()
		}
	}
	return max
}

// Window returns a copy of the stream restricted to [from, to].
func (st Stream) Window(from, to Time) (Stream, error) {
	if len(st) == 0 {
		return nil, ErrEmptyStream
	}

	out := make(Stream, 0, len(st))
	for _, tr := range st {
		sliced, err := tr.Slice(from, to)
		if err != nil {
			return nil, fmt.Errorf("trace: window channel %s: %w", tr.Channel, err)
		}
		out = append(out, sliced)
	}

	return out, nil
}

// Copy returns a deep copy of the stream.
func (st Stream) Copy() Stream {
	out := make(Stream, len(st))
	for i, tr := range st {
		out[i] = tr.Copy()
	}
	return out
}
