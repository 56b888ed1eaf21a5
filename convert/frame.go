// Package convert turns a decoded magnetization grid into the coordinate frame stored in
// MAT-files: one (x, y, z, mx, my, mz) record per cell.
package convert

import (
	"github.com/arloliu/omf/decoder"
	"github.com/arloliu/omf/grid"
	"github.com/arloliu/omf/header"
)

// Channels is the number of values per cell in a Frame.
const Channels = 6

// Frame is a (nx, ny, nz, 6) float32 array in column-major order, x varying fastest and the
// channel slowest. Channels 0-2 hold the cell position, 3-5 the magnetization.
type Frame struct {
	NX, NY, NZ int
	Data       []float32
}

// Build computes the coordinate frame of res.
//
// Position of node i along x is xbase + i*xstepsize, likewise for y and z. Absent bases are
// 0; absent step sizes fail with errs.ErrMissingStepSize.
func Build(res *decoder.Result) (*Frame, error) {
	return FromGrid(res.Grid, res.Fields)
}

// FromGrid computes the coordinate frame of g using the geometry in fields.
func FromGrid(g *grid.Grid, fields header.Fields) (*Frame, error) {
	step, err := fields.StepSize()
	if err != nil {
		return nil, err
	}
	base := fields.Base()

	nx, ny, nz := g.Shape()
	f := &Frame{NX: nx, NY: ny, NZ: nz, Data: make([]float32, nx*ny*nz*Channels)}

	for k := range nz {
		z := base[2] + float64(k)*step[2]
		for j := range ny {
			y := base[1] + float64(j)*step[1]
			for i := range nx {
				x := base[0] + float64(i)*step[0]
				m := g.Vector(i, j, k)
				f.set(i, j, k, [Channels]float64{x, y, z, m[0], m[1], m[2]})
			}
		}
	}

	return f, nil
}

// Dims returns the array shape, {nx, ny, nz, 6}.
func (f *Frame) Dims() [4]int {
	return [4]int{f.NX, f.NY, f.NZ, Channels}
}

// Index returns the linear offset of channel c of cell (i, j, k).
func (f *Frame) Index(i, j, k, c int) int {
	return i + f.NX*(j+f.NY*(k+f.NZ*c))
}

// At returns channel c of cell (i, j, k).
func (f *Frame) At(i, j, k, c int) float32 {
	return f.Data[f.Index(i, j, k, c)]
}

func (f *Frame) set(i, j, k int, rec [Channels]float64) {
	stride := f.NX * f.NY * f.NZ
	off := f.Index(i, j, k, 0)
	for c, v := range rec {
		f.Data[off+c*stride] = float32(v)
	}
}
