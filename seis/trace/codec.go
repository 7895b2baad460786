package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// containerVersion is the schema version written by WriteStream.
const containerVersion = 1

type containerDoc struct {
	Version int           `json:"version"`
	Traces  []*traceDoc   `json:"traces"`
}

type traceDoc struct {
	Channel     string          `json:"channel"`
	SampleRate  float64         `json:"sample_rate"`
	StartTime   float64         `json:"start_time"`
	Coordinates *coordinatesDoc `json:"coordinates,omitempty"`
	Response    *polesZerosDoc  `json:"response,omitempty"`
	Data        []float64       `json:"data"`
}

type coordinatesDoc struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Elevation float64 `json:"elevation"`
}

type polesZerosDoc struct {
	Poles       [][2]float64 `json:"poles"`
	Zeros       [][2]float64 `json:"zeros"`
	Gain        float64      `json:"gain"`
	Sensitivity float64      `json:"sensitivity"`
}

func complexPairs(in []complex128) [][2]float64 {
	out := make([][2]float64, len(in))
	for i, c := range in {
		out[i] = [2]float64{real(c), imag(c)}
	}
	return out
}

func pairsComplex(in [][2]float64) []complex128 {
	out := make([]complex128, len(in))
	for i, p := range in {
		out[i] = complex(p[0], p[1])
	}
	return out
}

// WriteStream encodes st as a JSON container document.
func WriteStream(w io.Writer, st Stream) error {
	if len(st) == 0 {
		return ErrEmptyStream
	}

	doc := containerDoc{
		Version: containerVersion,
		Traces:  make([]*traceDoc, len(st)),
	}

	for i, tr := range st {
		td := &traceDoc{
			Channel:    tr.Channel,
			SampleRate: tr.SampleRate,
			StartTime:  tr.StartTime.Seconds(),
			Data:       tr.Data,
		}
		if tr.Coordinates != nil {
			td.Coordinates = &coordinatesDoc{
				X:         tr.Coordinates.X,
				Y:         tr.Coordinates.Y,
				Elevation: tr.Coordinates.Elevation,
			}
		}
		if tr.Response != nil {
			td.Response = &polesZerosDoc{
				Poles:       complexPairs(tr.Response.Poles),
				Zeros:       complexPairs(tr.Response.Zeros),
				Gain:        tr.Response.Gain,
				Sensitivity: tr.Response.Sensitivity,
			}
		}
		doc.Traces[i] = td
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("trace: encode stream: %w", err)
	}

	return nil
}

// ReadStream decodes a JSON container document into a Stream.
func ReadStream(r io.Reader) (Stream, error) {
	var doc containerDoc

	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("trace: decode stream: %w", err)
	}

	if doc.Version != containerVersion {
		return nil, fmt.Errorf("trace: unsupported container version: %d", doc.Version)
	}

	if len(doc.Traces) == 0 {
		return nil, ErrEmptyStream
	}

	out := make(Stream, len(doc.Traces))
	for i, td := range doc.Traces {
		tr, err := New(td.Channel, td.SampleRate, Time(td.StartTime), td.Data)
		if err != nil {
			return nil, fmt.Errorf("trace: container trace %d: %w", i, err)
		}
		if td.Coordinates != nil {
			tr.Coordinates = &Coordinates{
				X:         td.Coordinates.X,
				Y:         td.Coordinates.Y,
				Elevation: td.Coordinates.Elevation,
			}
		}
		if td.Response != nil {
			tr.Response = &PolesZeros{
				Poles:       pairsComplex(td.Response.Poles),
				Zeros:       pairsComplex(td.Response.Zeros),
				Gain:        td.Response.Gain,
				Sensitivity: td.Response.Sensitivity,
			}
		}
		out[i] = tr
	}

	return out, nil
}

// SaveStream writes the stream container to a file.
func SaveStream(path string, st Stream) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trace: create %s: %w", path, err)
	}

	if err := WriteStream(f, st); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// LoadStream reads a stream container from a file.
func LoadStream(path string) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}
	defer f.Close()

	return ReadStream(f)
}
