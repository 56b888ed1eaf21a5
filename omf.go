// Package omf decodes OOMMF vector field files (OMF/OVF 1.0 "rectangular mesh" segments) and
// converts them to MATLAB MAT-files or compact snapshot containers.
//
// An OMF file is a "#"-prefixed text prologue followed by a data block in one of three modes:
// whitespace-separated text, "Binary 4" (float32) or "Binary 8" (float64). Binary blocks start
// with a sentinel value (1234567.0 or 123456789012345.0) whose byte pattern reveals the byte
// order; the decoder tries big-endian first, then little-endian.
//
// # Basic Usage
//
// Decoding a file:
//
//	res, err := omf.DecodeFile("m000123.omf")
//	if err != nil {
//	    return err
//	}
//	nx, ny, nz := res.Grid.Shape()
//	mx := res.Grid.At(0, 0, 0, 0)
//
// Converting to a MAT-file with the matching CSV row:
//
//	table, _ := csvmeta.Load(csvFile)
//	row, _ := table.Row(0)
//	data, err := omf.ConvertToMAT(res, row)
//
// # Package Structure
//
// This package wraps the decoder, convert, mat and snapshot packages for the common cases.
// Use those packages directly for finer control.
package omf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/omf/convert"
	"github.com/arloliu/omf/csvmeta"
	"github.com/arloliu/omf/decoder"
	"github.com/arloliu/omf/format"
	"github.com/arloliu/omf/internal/mmap"
	"github.com/arloliu/omf/mat"
	"github.com/arloliu/omf/snapshot"
)

// Decode reads one OMF file from r.
func Decode(r io.Reader, opts ...decoder.Option) (*decoder.Result, error) {
	d, err := decoder.New(opts...)
	if err != nil {
		return nil, err
	}

	return d.Decode(r)
}

// DecodeBytes decodes an OMF file held in memory.
func DecodeBytes(data []byte, opts ...decoder.Option) (*decoder.Result, error) {
	return Decode(bytes.NewReader(data), opts...)
}

// DecodeFile decodes the OMF file at path. On unix the file is memory-mapped; the result does
// not reference the mapping.
func DecodeFile(path string, opts ...decoder.Option) (*decoder.Result, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	res, err := Decode(m.Reader(), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return res, nil
}

// ConvertToMAT builds the coordinate frame of res and writes it, the simulation metadata and
// energy as a MAT-file.
func ConvertToMAT(res *decoder.Result, energy csvmeta.Record, opts ...mat.Option) ([]byte, error) {
	frame, err := convert.Build(res)
	if err != nil {
		return nil, err
	}

	return mat.Marshal(frame, res.Meta, energy, opts...)
}

// EncodeSnapshot stores res and energy in a snapshot container.
func EncodeSnapshot(res *decoder.Result, energy csvmeta.Record, opts ...snapshot.Option) ([]byte, error) {
	return snapshot.Encode(res, energy, opts...)
}

// ConvertOptions selects the output of Convert.
type ConvertOptions struct {
	Format format.OutputFormat
	// Compression is the snapshot payload codec. For MAT-files any value other than
	// CompressionNone enables zlib elements. Zero picks the format default: uncompressed MAT,
	// zstd snapshot.
	Compression format.CompressionType
	// Encoding is the snapshot payload scalar encoding; zero means raw. MAT-files ignore it.
	Encoding  format.EncodingType
	BigEndian bool
}

// Convert renders res in the output format named by opts.
func Convert(res *decoder.Result, energy csvmeta.Record, opts ConvertOptions) ([]byte, error) {
	switch opts.Format {
	case format.OutputMAT:
		var matOpts []mat.Option
		if opts.Compression != 0 && opts.Compression != format.CompressionNone {
			matOpts = append(matOpts, mat.WithCompression(true))
		}
		if opts.BigEndian {
			matOpts = append(matOpts, mat.WithBigEndian())
		}

		return ConvertToMAT(res, energy, matOpts...)
	case format.OutputSnapshot:
		var snapOpts []snapshot.Option
		if opts.Compression != 0 {
			snapOpts = append(snapOpts, snapshot.WithCompression(opts.Compression))
		}
		if opts.Encoding != 0 {
			snapOpts = append(snapOpts, snapshot.WithEncoding(opts.Encoding))
		}
		if opts.BigEndian {
			snapOpts = append(snapOpts, snapshot.WithBigEndian())
		}

		return EncodeSnapshot(res, energy, snapOpts...)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}
