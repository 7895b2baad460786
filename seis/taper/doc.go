// Package taper generates window coefficients for seismic analysis frames.
//
// Besides the classic cosine-sum windows (Hann, Hamming, Blackman) it
// provides the split-cosine taper traditionally applied before spectral
// array processing: flat over the window centre with cosine ramps covering
// a configurable fraction of the samples at each edge.
package taper
