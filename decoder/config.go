package decoder

import (
	"fmt"

	"github.com/arloliu/omf/internal/logger"
	"github.com/arloliu/omf/internal/options"
)

const (
	// DefaultBufferSize is the read buffer placed in front of the input stream.
	DefaultBufferSize = 64 * 1024
	// DefaultMaxCells bounds nx*ny*nz so a corrupt header cannot trigger a huge allocation.
	DefaultMaxCells = 1 << 28
)

// Config holds decoder settings.
type Config struct {
	logger     logger.Logger
	maxCells   int
	bufferSize int
}

// Option configures a Decoder.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		logger:     logger.Discard(),
		maxCells:   DefaultMaxCells,
		bufferSize: DefaultBufferSize,
	}
}

// WithLogger sets the logger receiving debug records about mode and byte order detection.
func WithLogger(l logger.Logger) Option {
	return options.NoError(func(c *Config) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithMaxCells limits the grid size. Zero disables the limit.
func WithMaxCells(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("max cells must not be negative: %d", n)
		}
		c.maxCells = n

		return nil
	})
}

// WithBufferSize sets the size of the read buffer wrapped around the input.
func WithBufferSize(n int) Option {
	return options.New(func(c *Config) error {
		if n < 16 {
			return fmt.Errorf("buffer size too small: %d", n)
		}
		c.bufferSize = n

		return nil
	})
}
