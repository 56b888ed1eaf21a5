package decoder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/omf/errs"
	"github.com/arloliu/omf/grid"
)

// decodeText reads one line per cell. Tokens past the third are ignored.
func decodeText(r *bufio.Reader, g *grid.Grid, multiplier float64) error {
	return fill(g, func(i, j, k int, vec []float64) error {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read sample (%d,%d,%d): %w", i, j, k, err)
		}
		if line == "" {
			return fmt.Errorf("%w: text sample (%d,%d,%d)", errs.ErrUnexpectedEOF, i, j, k)
		}

		tokens := strings.Fields(line)
		if len(tokens) < grid.Components {
			return fmt.Errorf("%w: (%d,%d,%d): expected %d values, got %d",
				errs.ErrMalformedTextSample, i, j, k, grid.Components, len(tokens))
		}

		for c := range grid.Components {
			v, perr := strconv.ParseFloat(tokens[c], 64)
			if perr != nil {
				return fmt.Errorf("%w: (%d,%d,%d) component %d: %q",
					errs.ErrMalformedTextSample, i, j, k, c, tokens[c])
			}
			vec[c] = v * multiplier
		}

		return nil
	})
}
