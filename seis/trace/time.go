package trace

import "time"

// Time is an absolute timestamp in Unix epoch seconds.
//
// Seismic windows are fractions of a second long, so a float64 epoch keeps
// sub-sample precision over any realistic recording span while staying
// directly plottable as a numeric axis.
type Time float64

// TimeFromUnix converts a time.Time to a Time.
func TimeFromUnix(t time.Time) Time {
	return Time(float64(t.UnixNano()) / 1e9)
}

// Add returns the time shifted by the given number of seconds.
func (t Time) Add(seconds float64) Time {
	return t + Time(seconds)
}

// Seconds returns the timestamp as raw epoch seconds.
func (t Time) Seconds() float64 {
	return float64(t)
}

// Before reports whether t is strictly earlier than other.
func (t Time) Before(other Time) bool {
	return t < other
}

// After reports whether t is strictly later than other.
func (t Time) After(other Time) bool {
	return t > other
}
