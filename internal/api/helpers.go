package api

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/arloliu/omf/errs"
)

const headerRequestID = "X-Request-Id"

// ErrorBody is the payload of every failed request.
type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return writeJSON(c, status, map[string]any{
		"error": ErrorBody{
			Message: msg,
			Type:    errType,
		},
	})
}

func writeJSON(c *echo.Context, status int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return writeBlob(c, status, echo.MIMEApplicationJSON, data)
}

func writeBlob(c *echo.Context, status int, contentType string, data []byte) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, contentType)
	res.WriteHeader(status)
	_, err := res.Write(data)

	return err
}

// requestID echoes the caller's X-Request-Id or assigns a fresh one.
func requestID(c *echo.Context) string {
	id := c.Request().Header.Get(headerRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Response().Header().Set(headerRequestID, id)

	return id
}

// errorKind maps a decode failure to an HTTP status and a stable error type.
func errorKind(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, "request_too_large"
	}

	kinds := []struct {
		target error
		kind   string
	}{
		{errs.ErrTruncatedHeader, "truncated_header"},
		{errs.ErrMalformedHeaderField, "malformed_header_field"},
		{errs.ErrMissingGridDimensions, "missing_grid_dimensions"},
		{errs.ErrMissingStepSize, "missing_step_size"},
		{errs.ErrGridTooLarge, "grid_too_large"},
		{errs.ErrUnknownDataFormat, "unknown_data_format"},
		{errs.ErrUnrecognizedByteOrderMark, "unrecognized_byte_order_mark"},
		{errs.ErrMalformedTextSample, "malformed_text_sample"},
		{errs.ErrUnexpectedEOF, "unexpected_eof"},
	}
	for _, k := range kinds {
		if errors.Is(err, k.target) {
			return http.StatusUnprocessableEntity, k.kind
		}
	}

	return http.StatusInternalServerError, "server_error"
}
