package omf

import (
	"github.com/arloliu/omf/decoder"
	"github.com/arloliu/omf/endian"
	"github.com/arloliu/omf/grid"
	"github.com/arloliu/omf/header"
)

// Summary describes a decoded file without its samples.
type Summary struct {
	Dims      [3]int          `json:"dims"`
	Cells     int             `json:"cells"`
	Mode      string          `json:"mode"`
	ByteOrder string          `json:"byte_order,omitempty"`
	Fields    header.Fields   `json:"fields"`
	Meta      header.Metadata `json:"meta"`
	Stats     grid.Stats      `json:"stats"`
}

// Summarize reports the shape, header and vector statistics of res.
func Summarize(res *decoder.Result) Summary {
	nx, ny, nz := res.Grid.Shape()
	s := Summary{
		Dims:   [3]int{nx, ny, nz},
		Cells:  res.Grid.Cells(),
		Mode:   res.Mode.String(),
		Fields: res.Fields,
		Meta:   res.Meta,
		Stats:  res.Grid.Stats(),
	}
	if res.ByteOrder != nil {
		s.ByteOrder = endian.Name(res.ByteOrder)
	}

	return s
}
