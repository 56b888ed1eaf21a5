package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/arloliu/omf"
	"github.com/arloliu/omf/csvmeta"
	"github.com/arloliu/omf/decoder"
	"github.com/arloliu/omf/format"
	"github.com/arloliu/omf/internal/logger"
)

// DefaultMaxBodySize caps uploaded OMF files.
const DefaultMaxBodySize int64 = 1 << 30

// Config configures a Server.
type Config struct {
	Logger      logger.Logger
	MaxBodySize int64
	DecoderOpts []decoder.Option
}

// Server serves the decode and convert endpoints.
type Server struct {
	log         logger.Logger
	maxBodySize int64
	decoderOpts []decoder.Option
	clock       func() time.Time
}

func NewServer(cfg Config) *Server {
	s := &Server{
		log:         cfg.Logger,
		maxBodySize: cfg.MaxBodySize,
		decoderOpts: cfg.DecoderOpts,
		clock:       time.Now,
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	if s.maxBodySize <= 0 {
		s.maxBodySize = DefaultMaxBodySize
	}

	return s
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.POST("/v1/decode", s.handleDecode)
	e.POST("/v1/convert", s.handleConvert)
}

// NewEcho returns an echo instance with the request logger, panic recovery and the routes of s.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	s.Register(e)

	return e
}

type healthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

type decodeResponse struct {
	RequestID string `json:"request_id"`
	omf.Summary
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, healthResponse{Status: "ok", Time: s.clock().UTC()})
}

func (s *Server) handleDecode(c *echo.Context) error {
	reqID := requestID(c)
	start := s.clock()

	res, err := s.decode(c)
	if err != nil {
		return s.writeFailure(c, reqID, err)
	}

	summary := omf.Summarize(res)
	s.log.Info("decoded upload",
		"request_id", reqID,
		"mode", summary.Mode,
		"cells", summary.Cells,
		"duration", s.clock().Sub(start),
	)

	return writeJSON(c, http.StatusOK, decodeResponse{RequestID: reqID, Summary: summary})
}

func (s *Server) handleConvert(c *echo.Context) error {
	reqID := requestID(c)

	opts, err := convertOptions(c)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	res, err := s.decode(c)
	if err != nil {
		return s.writeFailure(c, reqID, err)
	}

	data, err := omf.Convert(res, csvmeta.Record{}, opts)
	if err != nil {
		return s.writeFailure(c, reqID, err)
	}

	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		name = "output"
	}
	s.log.Info("converted upload",
		"request_id", reqID,
		"format", opts.Format.String(),
		"bytes", len(data),
	)

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+opts.Format.Ext()))

	return writeBlob(c, http.StatusOK, contentType(opts.Format), data)
}

func (s *Server) decode(c *echo.Context) (*decoder.Result, error) {
	body := http.MaxBytesReader(c.Response(), c.Request().Body, s.maxBodySize)
	defer body.Close()

	return omf.Decode(body, s.decoderOpts...)
}

func (s *Server) writeFailure(c *echo.Context, reqID string, err error) error {
	status, kind := errorKind(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "request_id", reqID, "error", err)
	} else {
		s.log.Warn("rejected upload", "request_id", reqID, "kind", kind, "error", err)
	}

	return writeError(c, status, kind, err.Error())
}

func convertOptions(c *echo.Context) (omf.ConvertOptions, error) {
	opts := omf.ConvertOptions{Format: format.OutputMAT}

	if name := c.QueryParam("format"); name != "" {
		f, ok := format.ParseOutputFormat(name)
		if !ok {
			return opts, fmt.Errorf("unsupported format %q", name)
		}
		opts.Format = f
	}

	if name := c.QueryParam("compression"); name != "" {
		ct, ok := format.ParseCompression(name)
		if !ok {
			return opts, fmt.Errorf("unsupported compression %q", name)
		}
		opts.Compression = ct
	}

	if name := c.QueryParam("encoding"); name != "" {
		enc, ok := format.ParseEncoding(name)
		if !ok {
			return opts, fmt.Errorf("unsupported encoding %q", name)
		}
		opts.Encoding = enc
	}

	switch c.QueryParam("byte_order") {
	case "", "little":
	case "big":
		opts.BigEndian = true
	default:
		return opts, fmt.Errorf("byte_order must be big or little")
	}

	return opts, nil
}

func contentType(f format.OutputFormat) string {
	if f == format.OutputMAT {
		return "application/x-matlab-data"
	}

	return "application/octet-stream"
}
