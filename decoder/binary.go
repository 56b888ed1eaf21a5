package decoder

import (
	"fmt"
	"io"

	"github.com/arloliu/omf/encoding"
	"github.com/arloliu/omf/endian"
	"github.com/arloliu/omf/errs"
	"github.com/arloliu/omf/grid"
)

// readByteOrder consumes the width-byte sentinel and resolves the block's byte order.
func readByteOrder(r io.Reader, width int) (endian.EndianEngine, error) {
	mark := make([]byte, width)
	if _, err := io.ReadFull(r, mark); err != nil {
		return nil, fmt.Errorf("%w: %d-byte byte order mark: %w", errs.ErrUnexpectedEOF, width, err)
	}

	if width == 4 {
		return endian.DetectFloat32Order(mark)
	}

	return endian.DetectFloat64Order(mark)
}

// decodeBinary reads a flat stream of width-byte scalars in (z, y, x, component) order.
func decodeBinary(r io.Reader, g *grid.Grid, width int, engine endian.EndianEngine, multiplier float64) error {
	dec, err := encoding.NewFloatRawDecoder(engine, width)
	if err != nil {
		return err
	}

	buf := make([]byte, width*grid.Components)

	return fill(g, func(i, j, k int, vec []float64) error {
		if _, err := io.ReadFull(r, buf); err != nil {
			return fmt.Errorf("%w: binary sample (%d,%d,%d): %w", errs.ErrUnexpectedEOF, i, j, k, err)
		}

		c := 0
		for v := range dec.All(buf, grid.Components) {
			vec[c] = v * multiplier
			c++
		}

		return nil
	})
}
