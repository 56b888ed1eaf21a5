package mat

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/klauspost/compress/zlib"

	"github.com/arloliu/omf/endian"
	"github.com/arloliu/omf/errs"
	"github.com/arloliu/omf/internal/options"
	"github.com/arloliu/omf/internal/pool"
)

// Config holds MAT-file writer settings.
type Config struct {
	engine   endian.EndianEngine
	compress bool
	level    int
	created  time.Time
}

// Option configures a Writer.
type Option = options.Option[*Config]

func defaultConfig() *Config {
	return &Config{
		engine: endian.GetLittleEndianEngine(),
		level:  zlib.DefaultCompression,
	}
}

// WithCompression stores every variable in a zlib-compressed element.
func WithCompression(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.compress = enabled
	})
}

// WithCompressionLevel sets the zlib level, from zlib.HuffmanOnly to zlib.BestCompression.
// It implies WithCompression(true).
func WithCompressionLevel(level int) Option {
	return options.New(func(c *Config) error {
		if level < zlib.HuffmanOnly || level > zlib.BestCompression {
			return fmt.Errorf("invalid zlib level %d", level)
		}
		c.compress = true
		c.level = level

		return nil
	})
}

// WithBigEndian writes a big-endian ("MI") file.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithLittleEndian writes a little-endian ("IM") file. This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithCreated sets the creation time written into the header text.
func WithCreated(t time.Time) Option {
	return options.NoError(func(c *Config) {
		c.created = t
	})
}

// Writer writes variables to a MAT-file.
type Writer struct {
	w   io.Writer
	cfg *Config
}

// NewWriter writes the 128-byte file header to w and returns a Writer for the variables.
func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.created.IsZero() {
		cfg.created = time.Now()
	}

	mw := &Writer{w: w, cfg: cfg}
	if _, err := w.Write(mw.header()); err != nil {
		return nil, fmt.Errorf("write mat header: %w", err)
	}

	return mw, nil
}

func (w *Writer) header() []byte {
	h := make([]byte, HeaderSize)

	text := fmt.Sprintf("MATLAB 5.0 MAT-file, Platform: %s/%s, Created on: %s",
		runtime.GOOS, runtime.GOARCH, w.cfg.created.Format("Mon Jan _2 15:04:05 2006"))
	n := copy(h[:headerTextSize], text)
	for i := n; i < headerTextSize; i++ {
		h[i] = ' '
	}
	// bytes 116-123: subsystem data offset, left zero

	w.cfg.engine.PutUint16(h[124:], version)
	w.cfg.engine.PutUint16(h[126:], endianIndicator)

	return h
}

// WriteVar stores v under name.
func (w *Writer) WriteVar(name string, v Value) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: invalid variable name %q", errs.ErrUnsupportedValue, name)
	}

	buf := pool.GetElementBuffer()
	defer pool.PutElementBuffer(buf)

	e := &encoder{engine: w.cfg.engine, buf: buf}
	if err := v.encode(e, name); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	if !w.cfg.compress {
		_, err := buf.WriteTo(w.w)
		return err
	}

	return w.writeCompressed(buf.Bytes())
}

func (w *Writer) writeCompressed(element []byte) error {
	out := pool.GetElementBuffer()
	defer pool.PutElementBuffer(out)

	out.B = w.cfg.engine.AppendUint32(out.B, miCOMPRESSED)
	out.B = w.cfg.engine.AppendUint32(out.B, 0)

	zw, err := zlib.NewWriterLevel(out, w.cfg.level)
	if err != nil {
		return err
	}
	if _, err := zw.Write(element); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	size := out.Len() - tagSize
	if int64(size) > 1<<32-1 {
		return fmt.Errorf("%w: compressed element needs %d bytes", errs.ErrUnsupportedValue, size)
	}
	w.cfg.engine.PutUint32(out.B[4:], uint32(size))

	_, err = out.WriteTo(w.w)

	return err
}
