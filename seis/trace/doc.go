// Package trace models multi-channel seismic time series.
//
// A Stream is an ordered set of Traces sharing a sample rate. Each Trace
// carries per-channel metadata: station coordinates relative to the array
// reference point (km) and, optionally, the instrument response as poles
// and zeros. Array-processing consumers require streams whose traces are
// time-aligned and of equal length; Validate checks those invariants.
//
// Streams round-trip through a small JSON container (ReadStream and
// WriteStream), which is the persisted form of "a multi-channel time series
// plus per-channel metadata".
package trace
