package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/omf/decoder"
	"github.com/arloliu/omf/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// globals holds the root flags and what the root Before hook derives from them.
type globals struct {
	configPath string
	logLevel   string
	logFormat  string
	maxCells   int64

	cfg    Config
	log    logger.Logger
	stdout io.Writer
}

func (g *globals) decoderOptions() []decoder.Option {
	opts := []decoder.Option{decoder.WithLogger(g.log)}
	if g.maxCells > 0 {
		opts = append(opts, decoder.WithMaxCells(int(g.maxCells)))
	}

	return opts
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	g := &globals{log: logger.Discard(), stdout: stdout}

	return &cli.Command{
		Name:      "omf",
		Usage:     "Decode OOMMF vector field files and convert them to MAT-files or snapshots",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config.yaml",
				Value:       configPath(),
				Destination: &g.configPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Value:       "info",
				Destination: &g.logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "log format (pretty, json, text)",
				Value:       "pretty",
				Destination: &g.logFormat,
			},
			&cli.Int64Flag{
				Name:        "max-cells",
				Usage:       "refuse grids with more cells than this (0 = decoder default)",
				Destination: &g.maxCells,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := LoadConfig(g.configPath, cmd.IsSet("config"))
			if err != nil {
				return ctx, err
			}
			g.cfg = cfg
			if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
				g.logLevel = cfg.LogLevel
			}
			if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
				g.logFormat = cfg.LogFormat
			}
			if cfg.MaxCells != nil && !cmd.IsSet("max-cells") {
				g.maxCells = *cfg.MaxCells
			}

			g.log = logger.ForFormat(stderr, g.logFormat, logger.ParseLevel(g.logLevel))

			return logger.WithContext(ctx, g.log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			inspectCmd(g),
			convertCmd(g),
			batchCmd(g),
			serveCmd(g),
		},
	}
}
