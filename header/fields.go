package header

import (
	"fmt"
	"math"

	"github.com/arloliu/omf/errs"
)

// Recognized header keys.
const (
	KeyXBase           = "xbase"
	KeyYBase           = "ybase"
	KeyZBase           = "zbase"
	KeyXStepSize       = "xstepsize"
	KeyYStepSize       = "ystepsize"
	KeyZStepSize       = "zstepsize"
	KeyXNodes          = "xnodes"
	KeyYNodes          = "ynodes"
	KeyZNodes          = "znodes"
	KeyValueMultiplier = "valuemultiplier"
)

// Keys lists the recognized header keys in the order they are matched.
var Keys = [...]string{
	KeyXBase, KeyYBase, KeyZBase,
	KeyXStepSize, KeyYStepSize, KeyZStepSize,
	KeyXNodes, KeyYNodes, KeyZNodes,
	KeyValueMultiplier,
}

// Fields maps recognized header keys to the numeric values found in the prologue.
// Absent keys are simply missing from the map.
type Fields map[string]float64

// Get returns the value of key and whether it was present.
func (f Fields) Get(key string) (float64, bool) {
	v, ok := f[key]
	return v, ok
}

// ValueMultiplier returns the valuemultiplier field, or 1.0 when absent.
func (f Fields) ValueMultiplier() float64 {
	if v, ok := f[KeyValueMultiplier]; ok {
		return v
	}

	return 1.0
}

// Base returns the grid origin, using 0.0 for any absent axis.
func (f Fields) Base() [3]float64 {
	return [3]float64{f[KeyXBase], f[KeyYBase], f[KeyZBase]}
}

// StepSize returns the cell sizes along x, y and z.
// It fails with errs.ErrMissingStepSize if any axis is absent.
func (f Fields) StepSize() ([3]float64, error) {
	var step [3]float64
	for axis, key := range [3]string{KeyXStepSize, KeyYStepSize, KeyZStepSize} {
		v, ok := f[key]
		if !ok {
			return step, fmt.Errorf("%w: %s", errs.ErrMissingStepSize, key)
		}
		step[axis] = v
	}

	return step, nil
}

// Nodes returns the grid dimensions.
//
// It fails with errs.ErrMissingGridDimensions if any of xnodes, ynodes or znodes is absent,
// not an integer, or not positive.
func (f Fields) Nodes() (nx, ny, nz int, err error) {
	var n [3]int
	for axis, key := range [3]string{KeyXNodes, KeyYNodes, KeyZNodes} {
		v, ok := f[key]
		if !ok {
			return 0, 0, 0, fmt.Errorf("%w: %s not found", errs.ErrMissingGridDimensions, key)
		}
		if v < 1 || v != math.Trunc(v) || v > math.MaxInt32 {
			return 0, 0, 0, fmt.Errorf("%w: %s = %g", errs.ErrMissingGridDimensions, key, v)
		}
		n[axis] = int(v)
	}

	return n[0], n[1], n[2], nil
}
