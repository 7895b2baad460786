// Package filter implements IIR filtering for seismic channel
// pre-conditioning.
//
// Filters are built from second-order sections (biquads) in Direct Form II
// Transposed, cascaded into chains for higher orders. Designs cover RBJ
// lowpass/highpass/bandpass prototypes and Butterworth cascades, including
// the bandpass cascade used to restrict channels to an analysis band before
// beamforming.
package filter
