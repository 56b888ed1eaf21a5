package batch

import (
	"fmt"
	"runtime"

	"github.com/arloliu/omf/decoder"
	"github.com/arloliu/omf/format"
	"github.com/arloliu/omf/internal/logger"
	"github.com/arloliu/omf/internal/options"
)

// Config holds batch runner settings.
type Config struct {
	workers     int
	format      format.OutputFormat
	compression format.CompressionType
	encoding    format.EncodingType
	bigEndian   bool
	rate        float64
	failFast    bool
	logger      logger.Logger
	decoderOpts []decoder.Option
}

// Option configures a Runner.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		workers: runtime.GOMAXPROCS(0),
		format:  format.OutputMAT,
		logger:  logger.Discard(),
	}
}

// WithWorkers sets how many files are converted concurrently.
func WithWorkers(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("workers must be at least 1: %d", n)
		}
		c.workers = n

		return nil
	})
}

// WithFormat selects the output format. MAT is the default.
func WithFormat(f format.OutputFormat) Option {
	return options.New(func(c *Config) error {
		if f.Ext() == "" {
			return fmt.Errorf("unsupported output format: %s", f)
		}
		c.format = f

		return nil
	})
}

// WithCompression sets the output compression; see omf.ConvertOptions for its meaning per format.
func WithCompression(ct format.CompressionType) Option {
	return options.NoError(func(c *Config) {
		c.compression = ct
	})
}

// WithEncoding sets the snapshot payload encoding. MAT outputs ignore it.
func WithEncoding(e format.EncodingType) Option {
	return options.NoError(func(c *Config) {
		c.encoding = e
	})
}

// WithBigEndian writes big-endian outputs.
func WithBigEndian(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.bigEndian = enabled
	})
}

// WithRateLimit caps how many files are started per second. Zero disables the limit.
func WithRateLimit(perSecond float64) Option {
	return options.New(func(c *Config) error {
		if perSecond < 0 {
			return fmt.Errorf("rate limit must not be negative: %g", perSecond)
		}
		c.rate = perSecond

		return nil
	})
}

// WithFailFast stops the run at the first failed file instead of recording it and moving on.
func WithFailFast(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.failFast = enabled
	})
}

// WithLogger sets the logger receiving per-file progress.
func WithLogger(l logger.Logger) Option {
	return options.NoError(func(c *Config) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithDecoderOptions passes options to the OMF decoder used for every file.
func WithDecoderOptions(opts ...decoder.Option) Option {
	return options.NoError(func(c *Config) {
		c.decoderOpts = append(c.decoderOpts, opts...)
	})
}
