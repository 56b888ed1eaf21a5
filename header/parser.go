package header

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/omf/errs"
	"github.com/arloliu/omf/format"
)

const (
	simTimeMarker   = "Total simulation time"
	iterationMarker = "Iteration:"
	stageMarker     = "Stage:"
	mifSourceMarker = "MIF source file"
)

// Header is the parsed prologue of one OMF file.
type Header struct {
	Fields Fields
	Meta   Metadata
	// Marker is the trimmed "Begin: Data ..." line; it declares the data mode.
	Marker string
	// Lines is the number of prologue lines consumed, marker included.
	Lines int
}

// Mode returns the data mode declared on the marker line.
func (h Header) Mode() (format.DataMode, error) {
	return format.ParseDataMode(h.Marker)
}

// Parse consumes r up to and including the data marker line.
//
// On success r is positioned on the first byte of the data section. It fails with
// errs.ErrTruncatedHeader if the stream ends first, and with errs.ErrMalformedHeaderField if
// a recognized key has no numeric third token.
func Parse(r *bufio.Reader) (Header, error) {
	h := Header{
		Fields: make(Fields, len(Keys)),
		Meta:   NewMetadata(),
	}

	for {
		raw, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return Header{}, fmt.Errorf("read header line %d: %w", h.Lines+1, err)
		}
		if raw == "" && err != nil {
			return Header{}, fmt.Errorf("%w after %d lines", errs.ErrTruncatedHeader, h.Lines)
		}

		h.Lines++
		line := strings.TrimSpace(raw)

		if perr := h.parseLine(line); perr != nil {
			return Header{}, fmt.Errorf("header line %d: %w", h.Lines, perr)
		}

		if strings.Contains(line, format.DataMarker) {
			h.Marker = line
			return h, nil
		}

		if err != nil {
			return Header{}, fmt.Errorf("%w after %d lines", errs.ErrTruncatedHeader, h.Lines)
		}
	}
}

func (h *Header) parseLine(line string) error {
	for _, key := range Keys {
		if !strings.Contains(line, key) {
			continue
		}

		v, err := thirdToken(line)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", errs.ErrMalformedHeaderField, key, err)
		}
		h.Fields[key] = v
	}

	if strings.Contains(line, simTimeMarker) {
		if v, ok := parseSimTime(line); ok {
			h.Meta.SimTime = v
		}
	}
	if strings.Contains(line, iterationMarker) {
		if v, ok := parseCounter(line); ok {
			h.Meta.Iteration = v
		}
	}
	if strings.Contains(line, stageMarker) {
		if v, ok := parseCounter(line); ok {
			h.Meta.Stage = v
		}
	}
	if strings.Contains(line, mifSourceMarker) {
		if parts := strings.SplitN(line, ":", 3); len(parts) == 3 {
			h.Meta.MIFSource = strings.TrimSpace(parts[2])
		}
	}

	return nil
}

func thirdToken(line string) (float64, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 3 {
		return 0, fmt.Errorf("expected 3 tokens, got %d", len(tokens))
	}

	return strconv.ParseFloat(tokens[2], 64)
}

// "# Desc: Total simulation time:  3.5e-9  s"
func parseSimTime(line string) (float64, bool) {
	segments := strings.Split(line, ":")
	value := strings.Fields(segments[len(segments)-1])
	if len(value) == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(value[0], 64)

	return v, err == nil
}

// "# Desc: Iteration: 5013, State id: 2105"
func parseCounter(line string) (float64, bool) {
	segments := strings.Split(line, ":")
	if len(segments) < 3 {
		return 0, false
	}

	first, _, _ := strings.Cut(segments[2], ",")
	v, err := strconv.ParseFloat(strings.TrimSpace(first), 64)

	return v, err == nil
}
