package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/omf/batch"
	"github.com/arloliu/omf/csvmeta"
	"github.com/arloliu/omf/store"
	miniostore "github.com/arloliu/omf/store/minio"
)

type batchFlags struct {
	convertFlags

	input    string
	csvPath  string
	outDir   string
	workers  int64
	rate     float64
	failFast bool

	bucket string
	prefix string
	minio  miniostore.Options
}

func batchCmd(g *globals) *cli.Command {
	var f batchFlags

	return &cli.Command{
		Name:  "batch",
		Usage: "Convert every .omf file in a folder, pairing file i with CSV row i",
		Flags: append(f.flags(),
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "folder holding the .omf files",
				Required:    true,
				Destination: &f.input,
			},
			&cli.StringFlag{
				Name:        "csv",
				Usage:       "CSV table with one row per file, in file name order",
				Destination: &f.csvPath,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output folder (default: the input folder)",
				Destination: &f.outDir,
			},
			&cli.Int64Flag{
				Name:        "workers",
				Aliases:     []string{"j"},
				Usage:       "files converted concurrently (0 = GOMAXPROCS)",
				Destination: &f.workers,
			},
			&cli.Float64Flag{
				Name:        "rate",
				Usage:       "maximum files started per second (0 = unlimited)",
				Destination: &f.rate,
			},
			&cli.BoolFlag{
				Name:        "fail-fast",
				Usage:       "stop at the first failed file",
				Destination: &f.failFast,
			},
			&cli.StringFlag{
				Name:        "bucket",
				Usage:       "upload to this MinIO/S3 bucket instead of --out",
				Destination: &f.bucket,
			},
			&cli.StringFlag{
				Name:        "prefix",
				Usage:       "object name prefix inside --bucket",
				Destination: &f.prefix,
			},
			&cli.StringFlag{
				Name:        "minio-endpoint",
				Usage:       "object store endpoint (host:port)",
				Sources:     cli.EnvVars("OMF_MINIO_ENDPOINT"),
				Destination: &f.minio.Endpoint,
			},
			&cli.StringFlag{
				Name:        "minio-access-key",
				Sources:     cli.EnvVars("OMF_MINIO_ACCESS_KEY"),
				Destination: &f.minio.AccessKey,
			},
			&cli.StringFlag{
				Name:        "minio-secret-key",
				Sources:     cli.EnvVars("OMF_MINIO_SECRET_KEY"),
				Destination: &f.minio.SecretKey,
			},
			&cli.StringFlag{
				Name:        "minio-region",
				Destination: &f.minio.Region,
			},
			&cli.BoolFlag{
				Name:        "minio-secure",
				Usage:       "use TLS for the object store",
				Destination: &f.minio.Secure,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyBatchConfig(cmd, g.cfg, &f)

			st, err := f.sink(ctx)
			if err != nil {
				return err
			}
			opts, err := f.runnerOptions(g)
			if err != nil {
				return err
			}
			runner, err := batch.New(st, opts...)
			if err != nil {
				return err
			}

			var table *csvmeta.Table
			if f.csvPath != "" {
				if table, err = loadTable(f.csvPath); err != nil {
					return err
				}
			}

			rep, err := runner.RunDir(ctx, f.input, table)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(g.stdout, "run %s: %d converted, %d failed, %d skipped in %s\n",
				rep.RunID, rep.Succeeded, rep.Failed, rep.Skipped, rep.Finished.Sub(rep.Started))

			failed := rep.Errors()
			if len(failed) == 0 {
				return nil
			}
			errList := make([]error, 0, len(failed))
			for _, res := range failed {
				errList = append(errList, res.Err)
			}

			return fmt.Errorf("%d of %d files failed: %w", len(failed), len(rep.Results), errors.Join(errList...))
		},
	}
}

func (f *batchFlags) sink(ctx context.Context) (store.Store, error) {
	if f.bucket != "" {
		if f.minio.Endpoint == "" {
			return nil, errors.New("--bucket needs --minio-endpoint")
		}
		st, err := miniostore.Dial(f.minio, f.bucket, f.prefix)
		if err != nil {
			return nil, err
		}
		if err := st.EnsureBucket(ctx); err != nil {
			return nil, err
		}

		return st, nil
	}

	dir := f.outDir
	if dir == "" {
		dir = f.input
	}
	if _, err := os.Stat(f.input); err != nil {
		return nil, err
	}

	return store.NewLocalStore(dir)
}

func (f *batchFlags) runnerOptions(g *globals) ([]batch.Option, error) {
	conv, err := f.options()
	if err != nil {
		return nil, err
	}

	opts := []batch.Option{
		batch.WithFormat(conv.Format),
		batch.WithCompression(conv.Compression),
		batch.WithEncoding(conv.Encoding),
		batch.WithBigEndian(conv.BigEndian),
		batch.WithRateLimit(f.rate),
		batch.WithFailFast(f.failFast),
		batch.WithLogger(g.log),
		batch.WithDecoderOptions(g.decoderOptions()...),
	}
	if f.workers > 0 {
		opts = append(opts, batch.WithWorkers(int(f.workers)))
	}

	return opts, nil
}
