package decoder

import (
	"bufio"
	"fmt"
	"io"

	"github.com/arloliu/omf/endian"
	"github.com/arloliu/omf/format"
	"github.com/arloliu/omf/grid"
	"github.com/arloliu/omf/header"
	"github.com/arloliu/omf/internal/options"
)

// Result is the outcome of decoding one OMF file. The caller owns every field.
type Result struct {
	Grid   *grid.Grid
	Fields header.Fields
	Meta   header.Metadata
	Mode   format.DataMode
	// ByteOrder is the detected byte order of a binary data block, nil for text.
	ByteOrder endian.EndianEngine
}

// Decoder decodes OMF streams.
type Decoder struct {
	cfg *Config
}

// New creates a Decoder.
func New(opts ...Option) (*Decoder, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg}, nil
}

// Decode reads one OMF file from r.
//
// The stream is consumed forward only. If r is already a *bufio.Reader it is used as is.
func (d *Decoder) Decode(r io.Reader) (*Result, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, d.cfg.bufferSize)
	}

	h, err := header.Parse(br)
	if err != nil {
		return nil, err
	}
	d.cfg.logger.Debug("data indicator", "marker", h.Marker, "header_lines", h.Lines)

	nx, ny, nz, err := h.Fields.Nodes()
	if err != nil {
		return nil, err
	}

	mode, err := h.Mode()
	if err != nil {
		return nil, err
	}

	g, err := grid.New(nx, ny, nz, d.cfg.maxCells)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Fields: h.Fields,
		Meta:   h.Meta,
		Mode:   mode,
	}

	multiplier := h.Fields.ValueMultiplier()

	switch mode {
	case format.ModeText:
		err = decodeText(br, g, multiplier)
	case format.ModeBinary4, format.ModeBinary8:
		res.ByteOrder, err = readByteOrder(br, mode.Width())
		if err != nil {
			return nil, err
		}
		d.cfg.logger.Debug("byte order detected", "width", mode.Width(), "order", endian.Name(res.ByteOrder))
		err = decodeBinary(br, g, mode.Width(), res.ByteOrder, multiplier)
	default:
		err = fmt.Errorf("unhandled data mode %s", mode)
	}
	if err != nil {
		return nil, err
	}

	res.Grid = g
	d.cfg.logger.Debug("decode complete", "mode", mode.String(), "nodes", [3]int{nx, ny, nz})

	return res, nil
}

// Decode decodes r with a default Decoder.
func Decode(r io.Reader) (*Result, error) {
	d := &Decoder{cfg: defaultConfig()}
	return d.Decode(r)
}

// fill visits every cell in on-disk order, z outermost and x innermost, handing cell the
// three component slots of that cell.
func fill(g *grid.Grid, cell func(i, j, k int, vec []float64) error) error {
	nx, ny, nz := g.Shape()
	values := g.Values()

	for k := range nz {
		for j := range ny {
			for i := range nx {
				off := g.Index(i, j, k, 0)
				if err := cell(i, j, k, values[off:off+grid.Components]); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
