package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/omf"
	"github.com/arloliu/omf/csvmeta"
	"github.com/arloliu/omf/format"
	"github.com/arloliu/omf/store"
)

// convertFlags are the output flags shared by convert and batch.
type convertFlags struct {
	format      string
	compression string
	encoding    string
	bigEndian   bool
}

func (f *convertFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "output format (mat, snapshot)",
			Value:       "mat",
			Destination: &f.format,
		},
		&cli.StringFlag{
			Name:        "compression",
			Usage:       "output compression (none, zstd, s2, lz4); MAT-files use zlib for anything but none",
			Destination: &f.compression,
		},
		&cli.StringFlag{
			Name:        "encoding",
			Usage:       "snapshot payload encoding (raw, gorilla)",
			Destination: &f.encoding,
		},
		&cli.BoolFlag{
			Name:        "big-endian",
			Usage:       "write big-endian output",
			Destination: &f.bigEndian,
		},
	}
}

func (f *convertFlags) options() (omf.ConvertOptions, error) {
	out, ok := format.ParseOutputFormat(f.format)
	if !ok {
		return omf.ConvertOptions{}, fmt.Errorf("unsupported format %q", f.format)
	}

	var ct format.CompressionType
	if f.compression != "" {
		ct, ok = format.ParseCompression(strings.ToLower(f.compression))
		if !ok {
			return omf.ConvertOptions{}, fmt.Errorf("unsupported compression %q", f.compression)
		}
	}

	var enc format.EncodingType
	if f.encoding != "" {
		enc, ok = format.ParseEncoding(strings.ToLower(f.encoding))
		if !ok {
			return omf.ConvertOptions{}, fmt.Errorf("unsupported encoding %q", f.encoding)
		}
	}

	return omf.ConvertOptions{Format: out, Compression: ct, Encoding: enc, BigEndian: f.bigEndian}, nil
}

func convertCmd(g *globals) *cli.Command {
	var (
		cf      convertFlags
		outPath string
		csvPath string
		row     int64
	)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert one OMF file to a MAT-file or snapshot",
		ArgsUsage: "<file.omf>",
		Flags: append(cf.flags(),
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path (default: next to the input with the format's extension)",
				Destination: &outPath,
			},
			&cli.StringFlag{
				Name:        "csv",
				Usage:       "CSV table whose row is stored as energy_terms",
				Destination: &csvPath,
			},
			&cli.Int64Flag{
				Name:        "row",
				Usage:       "CSV row (0-based) matching the input file",
				Destination: &row,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("convert: expected exactly one input file")
			}
			applyConvertConfig(cmd, g.cfg, &cf)
			opts, err := cf.options()
			if err != nil {
				return err
			}

			in := cmd.Args().First()
			if outPath == "" {
				outPath = strings.TrimSuffix(in, filepath.Ext(in)) + opts.Format.Ext()
			}

			var energy csvmeta.Record
			if csvPath != "" {
				table, err := loadTable(csvPath)
				if err != nil {
					return err
				}
				if energy, err = table.Row(int(row)); err != nil {
					return err
				}
			}

			start := time.Now()
			res, err := omf.DecodeFile(in, g.decoderOptions()...)
			if err != nil {
				return err
			}
			data, err := omf.Convert(res, energy, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}

			st, err := store.NewLocalStore(filepath.Dir(outPath))
			if err != nil {
				return err
			}
			if err := st.Put(ctx, filepath.Base(outPath), data); err != nil {
				return err
			}

			g.log.Info("converted",
				"input", in,
				"output", outPath,
				"mode", res.Mode.String(),
				"bytes", len(data),
				"duration", time.Since(start),
			)

			return nil
		},
	}
}

func loadTable(path string) (*csvmeta.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := csvmeta.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &table, nil
}
