// Package grid holds the dense vector field produced by the OMF decoder.
package grid

import (
	"fmt"
	"math"

	"github.com/arloliu/omf/errs"
)

// Components is the number of stored channels per cell.
const Components = 3

// Grid is a dense (nx, ny, nz, 3) array of float64 backed by one contiguous slice.
//
// Values are laid out in the OMF on-disk order: x fastest, then y, then z, with the three
// components of a cell adjacent. The linear offset of (i, j, k, c) is
// ((k*ny+j)*nx+i)*3 + c.
type Grid struct {
	nx, ny, nz int
	values     []float64
}

// New allocates a zeroed grid. maxCells bounds nx*ny*nz when positive.
func New(nx, ny, nz, maxCells int) (*Grid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", errs.ErrMissingGridDimensions, nx, ny, nz)
	}

	cells, ok := mulCells(nx, ny, nz)
	if !ok || (maxCells > 0 && cells > maxCells) {
		return nil, fmt.Errorf("%w: %dx%dx%d cells", errs.ErrGridTooLarge, nx, ny, nz)
	}

	return &Grid{
		nx:     nx,
		ny:     ny,
		nz:     nz,
		values: make([]float64, cells*Components),
	}, nil
}

// FromValues wraps values, which must hold exactly nx*ny*nz*3 entries, without copying.
func FromValues(nx, ny, nz int, values []float64) (*Grid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", errs.ErrMissingGridDimensions, nx, ny, nz)
	}

	cells, ok := mulCells(nx, ny, nz)
	if !ok || len(values) != cells*Components {
		return nil, fmt.Errorf("%w: %d values for %dx%dx%d grid", errs.ErrInvalidPayload, len(values), nx, ny, nz)
	}

	return &Grid{nx: nx, ny: ny, nz: nz, values: values}, nil
}

func mulCells(nx, ny, nz int) (int, bool) {
	const limit = math.MaxInt / Components

	if nx > limit/ny {
		return 0, false
	}
	xy := nx * ny
	if xy > limit/nz {
		return 0, false
	}

	return xy * nz, true
}

// Shape returns the node counts along x, y and z.
func (g *Grid) Shape() (nx, ny, nz int) {
	return g.nx, g.ny, g.nz
}

// Cells returns nx*ny*nz.
func (g *Grid) Cells() int {
	return g.nx * g.ny * g.nz
}

// Len returns the number of scalars, nx*ny*nz*3.
func (g *Grid) Len() int {
	return len(g.values)
}

// Index returns the linear offset of component c of cell (i, j, k).
func (g *Grid) Index(i, j, k, c int) int {
	return ((k*g.ny+j)*g.nx+i)*Components + c
}

// At returns component c of cell (i, j, k).
func (g *Grid) At(i, j, k, c int) float64 {
	return g.values[g.Index(i, j, k, c)]
}

// Set stores v as component c of cell (i, j, k).
func (g *Grid) Set(i, j, k, c int, v float64) {
	g.values[g.Index(i, j, k, c)] = v
}

// Vector returns the three components of cell (i, j, k).
func (g *Grid) Vector(i, j, k int) [Components]float64 {
	off := g.Index(i, j, k, 0)
	return [Components]float64{g.values[off], g.values[off+1], g.values[off+2]}
}

// SetVector stores the three components of cell (i, j, k).
func (g *Grid) SetVector(i, j, k int, v [Components]float64) {
	off := g.Index(i, j, k, 0)
	copy(g.values[off:off+Components], v[:])
}

// Values exposes the backing slice in on-disk order. Callers own the grid, so the slice is not copied.
func (g *Grid) Values() []float64 {
	return g.values
}

// Stats summarises the magnitude of the stored vectors.
type Stats struct {
	MinNorm  float64             `json:"min_norm"`
	MaxNorm  float64             `json:"max_norm"`
	MeanNorm float64             `json:"mean_norm"`
	Mean     [Components]float64 `json:"mean"`
}

// Stats computes per-component means and the min/max/mean vector norm over all cells.
func (g *Grid) Stats() Stats {
	cells := g.Cells()
	s := Stats{MinNorm: math.Inf(1), MaxNorm: math.Inf(-1)}

	var sumNorm float64
	for off := 0; off < len(g.values); off += Components {
		x, y, z := g.values[off], g.values[off+1], g.values[off+2]
		n := math.Sqrt(x*x + y*y + z*z)
		s.MinNorm = min(s.MinNorm, n)
		s.MaxNorm = max(s.MaxNorm, n)
		sumNorm += n
		s.Mean[0] += x
		s.Mean[1] += y
		s.Mean[2] += z
	}

	s.MeanNorm = sumNorm / float64(cells)
	for c := range s.Mean {
		s.Mean[c] /= float64(cells)
	}

	return s
}
