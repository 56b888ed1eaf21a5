package section

import (
	"github.com/arloliu/omf/endian"
	"github.com/arloliu/omf/errs"
	"github.com/arloliu/omf/format"
)

// Flag holds the packed option bits and the codec/mode bytes of a snapshot header.
type Flag struct {
	// Options packs the magic number (bits 4-15) with the option bits (0-3).
	Options uint16
	// Codec holds the payload compression in bits 0-3 and the scalar encoding in bits 4-7.
	Codec uint8
	// SourceMode is the data mode of the OMF file the snapshot was made from.
	SourceMode uint8
}

var validCompressions = map[format.CompressionType]struct{}{
	format.CompressionNone: {},
	format.CompressionZstd: {},
	format.CompressionS2:   {},
	format.CompressionLZ4:  {},
}

// NewFlag returns a little-endian, raw float64, zstd-compressed flag with no metadata.
func NewFlag() Flag {
	f := Flag{Options: MagicSnapshotV1}
	f.SetPayloadCompression(format.CompressionZstd)
	f.SetPayloadEncoding(format.EncodingRaw)

	return f
}

// HasMetadata reports whether a metadata section follows the header.
func (f Flag) HasMetadata() bool {
	return f.Options&MetadataMask != 0
}

// SetHasMetadata enables or disables the metadata section bit.
func (f *Flag) SetHasMetadata(enabled bool) {
	if enabled {
		f.Options |= MetadataMask
	} else {
		f.Options &^= MetadataMask
	}
}

// IsBigEndian reports whether header fields and payload are big-endian.
func (f Flag) IsBigEndian() bool {
	return f.Options&EndiannessMask != 0
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// IsSinglePrecision reports whether payload scalars are float32.
func (f Flag) IsSinglePrecision() bool {
	return f.Options&SinglePrecMask != 0
}

// SetSinglePrecision selects float32 (true) or float64 (false) payload scalars.
func (f *Flag) SetSinglePrecision(enabled bool) {
	if enabled {
		f.Options |= SinglePrecMask
	} else {
		f.Options &^= SinglePrecMask
	}
}

// ScalarWidth returns the payload scalar width in bytes.
func (f Flag) ScalarWidth() int {
	if f.IsSinglePrecision() {
		return 4
	}

	return 8
}

// MagicNumber returns the magic number bits of Options.
func (f Flag) MagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// PayloadCompression returns the payload codec.
func (f Flag) PayloadCompression() format.CompressionType {
	return format.CompressionType(f.Codec & CompressionMask)
}

// SetPayloadCompression sets the payload codec.
func (f *Flag) SetPayloadCompression(c format.CompressionType) {
	f.Codec = f.Codec&EncodingMask | uint8(c)&CompressionMask
}

// PayloadEncoding returns the scalar encoding applied before compression.
func (f Flag) PayloadEncoding() format.EncodingType {
	return format.EncodingType(f.Codec >> EncodingShift)
}

// SetPayloadEncoding sets the scalar encoding.
func (f *Flag) SetPayloadEncoding(e format.EncodingType) {
	f.Codec = f.Codec&CompressionMask | uint8(e)<<EncodingShift
}

// Mode returns the source data mode.
func (f Flag) Mode() format.DataMode {
	return format.DataMode(f.SourceMode)
}

// SetMode records the source data mode.
func (f *Flag) SetMode(m format.DataMode) {
	f.SourceMode = uint8(m)
}

// Validate checks magic number, reserved bits, codec and encoding. Gorilla encoding is
// defined for float64 scalars only.
func (f Flag) Validate() error {
	if f.MagicNumber() != MagicSnapshotV1 {
		return errs.ErrInvalidMagicNumber
	}
	if f.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}
	if _, ok := validCompressions[f.PayloadCompression()]; !ok {
		return errs.ErrInvalidHeaderFlags
	}

	switch f.PayloadEncoding() {
	case format.EncodingRaw:
	case format.EncodingGorilla:
		if f.IsSinglePrecision() {
			return errs.ErrInvalidHeaderFlags
		}
	default:
		return errs.ErrInvalidHeaderFlags
	}

	switch f.Mode() {
	case format.ModeText, format.ModeBinary4, format.ModeBinary8:
	default:
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// EndianEngine returns the engine matching the endianness bit.
func (f Flag) EndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}
