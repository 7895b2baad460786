package fk

import "fmt"

// Grid describes the slowness search grid: corner bounds and step, all in
// s/km. The grid is inclusive of both corners on each axis.
type Grid struct {
	SlowXMin float64
	SlowXMax float64
	SlowYMin float64
	SlowYMax float64
	Step     float64
}

// Validate checks that the grid bounds are non-degenerate and the step is
// positive.
func (g Grid) Validate() error {
	if g.Step <= 0 {
		return fmt.Errorf("%w: step must be > 0: %f", ErrInvalidGrid, g.Step)
	}
	if g.SlowXMax <= g.SlowXMin {
		return fmt.Errorf("%w: x bounds [%f, %f]", ErrInvalidGrid, g.SlowXMin, g.SlowXMax)
	}
	if g.SlowYMax <= g.SlowYMin {
		return fmt.Errorf("%w: y bounds [%f, %f]", ErrInvalidGrid, g.SlowYMin, g.SlowYMax)
	}
	return nil
}

// NX returns the number of grid points along the x axis.
func (g Grid) NX() int {
	return int((g.SlowXMax-g.SlowXMin)/g.Step+0.5) + 1
}

// NY returns the number of grid points along the y axis.
func (g Grid) NY() int {
	return int((g.SlowYMax-g.SlowYMin)/g.Step+0.5) + 1
}

// SlowX returns the x slowness of column i.
func (g Grid) SlowX(i int) float64 {
	return g.SlowXMin + float64(i)*g.Step
}

// SlowY returns the y slowness of row j.
func (g Grid) SlowY(j int) float64 {
	return g.SlowYMin + float64(j)*g.Step
}

// SymmetricGrid returns a grid spanning [-slowMax, slowMax] on both axes.
func SymmetricGrid(slowMax, step float64) Grid {
	return Grid{
		SlowXMin: -slowMax,
		SlowXMax: slowMax,
		SlowYMin: -slowMax,
		SlowYMax: slowMax,
		Step:     step,
	}
}
