// Package errs defines the sentinel errors returned by the omf packages.
//
// Callers match them with errors.Is. Errors that carry extra context (the offending mode
// tokens or the raw byte-order mark) are exposed as typed errors that also match their
// sentinel, so both errors.Is and errors.As work.
package errs

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// Decode errors.
var (
	// ErrTruncatedHeader is returned when the stream ends before the "Begin: Data" marker.
	ErrTruncatedHeader = errors.New("truncated header: data marker not found")
	// ErrMalformedHeaderField is returned when a recognized header key carries no numeric value.
	ErrMalformedHeaderField = errors.New("malformed header field")
	// ErrMissingGridDimensions is returned when xnodes, ynodes or znodes is absent or not a positive integer.
	ErrMissingGridDimensions = errors.New("missing grid dimensions")
	// ErrMissingStepSize is returned when a coordinate frame needs a step size the header lacks.
	ErrMissingStepSize = errors.New("missing grid step size")
	// ErrGridTooLarge is returned when the declared grid exceeds the configured cell limit.
	ErrGridTooLarge = errors.New("grid too large")
	// ErrUnknownDataFormat is returned when the data marker names an unsupported mode.
	ErrUnknownDataFormat = errors.New("unknown data format")
	// ErrUnrecognizedByteOrderMark is returned when the binary sentinel matches neither byte order.
	ErrUnrecognizedByteOrderMark = errors.New("unrecognized byte order mark")
	// ErrMalformedTextSample is returned when a text data line does not hold three numbers.
	ErrMalformedTextSample = errors.New("malformed text sample")
	// ErrUnexpectedEOF is returned when the data section ends before the grid is filled.
	ErrUnexpectedEOF = errors.New("unexpected end of data")
)

// Container errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrUnsupportedValue   = errors.New("unsupported value type")
)

// UnknownDataFormatError reports the mode and width tokens of an unsupported data marker.
type UnknownDataFormatError struct {
	Kind  string
	Width string
}

func (e *UnknownDataFormatError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrUnknownDataFormat, e.Kind, e.Width)
}

func (e *UnknownDataFormatError) Unwrap() error {
	return ErrUnknownDataFormat
}

// ByteOrderMarkError carries the raw sentinel bytes that failed endianness detection.
type ByteOrderMarkError struct {
	Raw []byte
}

func (e *ByteOrderMarkError) Error() string {
	return fmt.Sprintf("%s: can't decode %d-byte mark 0x%s", ErrUnrecognizedByteOrderMark, len(e.Raw), hex.EncodeToString(e.Raw))
}

func (e *ByteOrderMarkError) Unwrap() error {
	return ErrUnrecognizedByteOrderMark
}
