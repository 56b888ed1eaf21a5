// Package omftest builds synthetic OMF files for tests.
package omftest

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"

	"github.com/arloliu/omf/endian"
	"github.com/arloliu/omf/format"
)

// File describes a synthetic OMF file. Vectors are listed in on-disk order (z, y, x).
type File struct {
	NX, NY, NZ int
	// OmitNodes drops the named node keys ("xnodes", ...) from the header.
	OmitNodes []string
	// Multiplier is written as valuemultiplier when non-zero.
	Multiplier float64
	Step       [3]float64
	Base       [3]float64
	SimTime    string
	Mode       format.DataMode
	// Marker overrides the generated "# Begin: Data ..." line.
	Marker string
	Engine endian.EndianEngine
	// Mark overrides the binary byte order sentinel.
	Mark    []byte
	Vectors [][3]float64
	// Truncate drops that many bytes from the end of the output.
	Truncate int
}

// Sequential returns n vectors whose scalars count up from start: {start, start+1, start+2}, ...
func Sequential(n int, start float64) [][3]float64 {
	out := make([][3]float64, n)
	for i := range out {
		base := start + float64(i*3)
		out[i] = [3]float64{base, base + 1, base + 2}
	}

	return out
}

// Bytes renders the file.
func (f File) Bytes() []byte {
	var buf bytes.Buffer

	buf.WriteString("# OOMMF: rectangular mesh v1.0\n")
	buf.WriteString("# Segment count: 1\n")
	buf.WriteString("# Begin: Segment\n")
	buf.WriteString("# Begin: Header\n")
	buf.WriteString("# Title: synthetic\n")
	if f.SimTime != "" {
		fmt.Fprintf(&buf, "# Desc: Total simulation time: %s s\n", f.SimTime)
	}
	buf.WriteString("# meshunit: m\n")
	if f.Multiplier != 0 {
		fmt.Fprintf(&buf, "# valuemultiplier: %s\n", strconv.FormatFloat(f.Multiplier, 'g', -1, 64))
	}
	for axis, name := range [3]string{"x", "y", "z"} {
		fmt.Fprintf(&buf, "# %sbase: %g\n", name, f.Base[axis])
		if f.Step[axis] != 0 {
			fmt.Fprintf(&buf, "# %sstepsize: %g\n", name, f.Step[axis])
		}
	}
	for axis, n := range [3]int{f.NX, f.NY, f.NZ} {
		key := [3]string{"xnodes", "ynodes", "znodes"}[axis]
		if slices.Contains(f.OmitNodes, key) {
			continue
		}
		fmt.Fprintf(&buf, "# %s: %d\n", key, n)
	}
	buf.WriteString("# End: Header\n")

	mode := f.Mode
	if mode == 0 {
		mode = format.ModeText
	}
	marker := f.Marker
	if marker == "" {
		marker = "# Begin: Data " + mode.String()
	}
	buf.WriteString(marker + "\n")

	engine := f.Engine
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	switch mode {
	case format.ModeText:
		for _, v := range f.Vectors {
			fmt.Fprintf(&buf, " %s %s %s\n", ftoa(v[0]), ftoa(v[1]), ftoa(v[2]))
		}
	case format.ModeBinary4:
		mark := f.Mark
		if mark == nil {
			mark = endian.AppendFloat32(engine, nil, endian.Float32Sentinel)
		}
		buf.Write(mark)
		for _, v := range f.Vectors {
			for _, s := range v {
				buf.Write(endian.AppendFloat32(engine, nil, float32(s)))
			}
		}
	case format.ModeBinary8:
		mark := f.Mark
		if mark == nil {
			mark = endian.AppendFloat64(engine, nil, endian.Float64Sentinel)
		}
		buf.Write(mark)
		for _, v := range f.Vectors {
			for _, s := range v {
				buf.Write(endian.AppendFloat64(engine, nil, s))
			}
		}
	}

	if mode.IsBinary() {
		buf.WriteString("\n")
	}
	fmt.Fprintf(&buf, "# End: Data %s\n# End: Segment\n", mode)

	out := buf.Bytes()
	if f.Truncate > 0 {
		// cut into the data section, past the trailer
		trailer := len(fmt.Sprintf("# End: Data %s\n# End: Segment\n", mode))
		if mode.IsBinary() {
			trailer++
		}
		out = out[:len(out)-trailer-f.Truncate]
	}

	return out
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
