package fk

import (
	"fmt"

	"github.com/cwbudde/algo-seis/seis/trace"
)

// Geometry holds per-channel station offsets relative to the array
// centroid, in km. X points east, Y north.
type Geometry struct {
	Channels []string
	X        []float64
	Y        []float64
}

// GeometryFromStream extracts array geometry from per-channel coordinates.
//
// Offsets are re-referenced to the array centroid so the derived time
// shifts are balanced around the array centre. Every trace must carry
// coordinates and the stream must have at least 2 channels.
func GeometryFromStream(st trace.Stream) (*Geometry, error) {
	if len(st) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientChannels, len(st))
	}

	g := &Geometry{
		Channels: make([]string, len(st)),
		X:        make([]float64, len(st)),
		Y:        make([]float64, len(st)),
	}

	for i, tr := range st {
		if tr.Coordinates == nil {
			return nil, fmt.Errorf("%w: channel %q", ErrInvalidGeometry, tr.Channel)
		}
		g.Channels[i] = tr.Channel
		g.X[i] = tr.Coordinates.X
		g.Y[i] = tr.Coordinates.Y
	}

	var cx, cy float64
	for i := range g.X {
		cx += g.X[i]
		cy += g.Y[i]
	}
	cx /= float64(len(g.X))
	cy /= float64(len(g.Y))

	for i := range g.X {
		g.X[i] -= cx
		g.Y[i] -= cy
	}

	return g, nil
}

// timeShiftTable returns tau[j][k][l], the plane-wave delay in seconds for
// channel j steered at grid point (k, l): tau = sx*x + sy*y.
func timeShiftTable(g *Geometry, grid Grid) [][][]float64 {
	nx := grid.NX()
	ny := grid.NY()

	table := make([][][]float64, len(g.X))
	for j := range table {
		table[j] = make([][]float64, nx)
		for k := 0; k < nx; k++ {
			sx := grid.SlowX(k)
			row := make([]float64, ny)
			for l := 0; l < ny; l++ {
				row[l] = sx*g.X[j] + grid.SlowY(l)*g.Y[j]
			}
			table[j][k] = row
		}
	}

	return table
}
