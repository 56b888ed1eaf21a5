package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/arloliu/omf"
)

func inspectCmd(g *globals) *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the header, metadata and vector statistics of an OMF file",
		ArgsUsage: "<file.omf>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the summary as JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("inspect: expected exactly one input file")
			}
			path := cmd.Args().First()

			res, err := omf.DecodeFile(path, g.decoderOptions()...)
			if err != nil {
				return err
			}
			summary := omf.Summarize(res)

			if asJSON {
				data, err := json.MarshalIndent(struct {
					File string `json:"file"`
					omf.Summary
				}{path, summary}, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(g.stdout, string(data))

				return err
			}

			return printSummary(g.stdout, path, summary)
		},
	}
}

func printSummary(w io.Writer, path string, s omf.Summary) error {
	var b strings.Builder

	row := func(label, format string, args ...any) {
		fmt.Fprintf(&b, "%-12s "+format+"\n", append([]any{label + ":"}, args...)...)
	}
	optional := func(label string, v float64) {
		if v < 0 {
			row(label, "n/a")
			return
		}
		row(label, "%g", v)
	}

	row("file", "%s", path)
	row("mode", "%s", s.Mode)
	if s.ByteOrder != "" {
		row("byte order", "%s", s.ByteOrder)
	}
	row("dims", "%d x %d x %d (%d cells)", s.Dims[0], s.Dims[1], s.Dims[2], s.Cells)
	for _, axis := range []string{"x", "y", "z"} {
		step, ok := s.Fields[axis+"stepsize"]
		if !ok {
			continue
		}
		row(axis+" step", "%g (base %g)", step, s.Fields[axis+"base"])
	}
	if v, ok := s.Fields["valuemultiplier"]; ok {
		row("multiplier", "%g", v)
	}
	optional("sim time", s.Meta.SimTime)
	optional("iteration", s.Meta.Iteration)
	optional("stage", s.Meta.Stage)
	if s.Meta.MIFSource != "" {
		row("mif source", "%s", s.Meta.MIFSource)
	}
	row("|m|", "min %g mean %g max %g", s.Stats.MinNorm, s.Stats.MeanNorm, s.Stats.MaxNorm)
	row("mean m", "(%g, %g, %g)", s.Stats.Mean[0], s.Stats.Mean[1], s.Stats.Mean[2])

	_, err := io.WriteString(w, b.String())

	return err
}
