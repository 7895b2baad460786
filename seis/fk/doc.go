// Package fk implements frequency-wavenumber (FK) beamforming over a
// slowness grid.
//
// Scan slides an analysis window across a multi-channel stream and, for
// every window, searches a grid of candidate slowness vectors for the
// steering that maximizes beamformed power. Each accepted window yields a
// Record with the window start time, relative and absolute beam power,
// backazimuth (degrees clockwise from north) and slowness magnitude (s/km).
//
// Steering works in the frequency domain: each channel's tapered window is
// transformed, restricted to the analysis band, and phase-rotated by
// exp(i*w*tau) where tau is the plane-wave delay implied by the station
// offset and the candidate slowness vector. Relative power is the beam
// power normalized by the total single-channel power times the channel
// count, which bounds it to [0, 1].
package fk
