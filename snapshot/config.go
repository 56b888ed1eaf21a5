package snapshot

import (
	"fmt"

	"github.com/arloliu/omf/endian"
	"github.com/arloliu/omf/format"
	"github.com/arloliu/omf/internal/options"
)

// Config holds snapshot encoder settings.
type Config struct {
	engine      endian.EndianEngine
	compression format.CompressionType
	encoding    format.EncodingType
	single      bool
}

// Option configures Encode.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionZstd,
		encoding:    format.EncodingRaw,
	}
}

// WithCompression selects the payload codec. Zstd is the default.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *Config) error {
		switch c {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.compression = c
			return nil
		default:
			return fmt.Errorf("unsupported compression type: %s", c)
		}
	})
}

// WithBigEndian writes header fields and payload scalars big-endian.
func WithBigEndian() Option {
	return options.NoError(func(cfg *Config) {
		cfg.engine = endian.GetBigEndianEngine()
	})
}

// WithLittleEndian writes header fields and payload scalars little-endian. This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *Config) {
		cfg.engine = endian.GetLittleEndianEngine()
	})
}

// WithSinglePrecision stores payload scalars as float32. Grids decoded from "Binary 4" data
// lose nothing; others are rounded.
func WithSinglePrecision(enabled bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.single = enabled
	})
}

// WithEncoding selects the payload scalar encoding. Raw is the default; Gorilla requires
// float64 scalars.
func WithEncoding(e format.EncodingType) Option {
	return options.New(func(cfg *Config) error {
		switch e {
		case format.EncodingRaw, format.EncodingGorilla:
			cfg.encoding = e
			return nil
		default:
			return fmt.Errorf("unsupported payload encoding: %s", e)
		}
	})
}
