package snapshot

import (
	"fmt"
	"math"

	"github.com/arloliu/omf/compress"
	"github.com/arloliu/omf/csvmeta"
	"github.com/arloliu/omf/decoder"
	"github.com/arloliu/omf/encoding"
	"github.com/arloliu/omf/endian"
	"github.com/arloliu/omf/errs"
	"github.com/arloliu/omf/format"
	"github.com/arloliu/omf/grid"
	"github.com/arloliu/omf/header"
	"github.com/arloliu/omf/internal/hash"
	"github.com/arloliu/omf/internal/options"
	"github.com/arloliu/omf/section"
)

// Snapshot is a decoded snapshot container.
type Snapshot struct {
	Grid   *grid.Grid
	Fields header.Fields
	Meta   header.Metadata
	// Mode is the data mode of the OMF file the snapshot was made from.
	Mode format.DataMode
	// SourceByteOrder is the byte order of the original binary data, nil for text sources.
	SourceByteOrder endian.EndianEngine
	// Energy is the CSV record stored with the grid, empty when there was none.
	Energy csvmeta.Record

	// Compression, Encoding and ByteOrder describe the container itself.
	Compression format.CompressionType
	Encoding    format.EncodingType
	ByteOrder   endian.EndianEngine
}

// Result returns the snapshot as a decoder result.
func (s *Snapshot) Result() *decoder.Result {
	return &decoder.Result{
		Grid:      s.Grid,
		Fields:    s.Fields,
		Meta:      s.Meta,
		Mode:      s.Mode,
		ByteOrder: s.SourceByteOrder,
	}
}

// Encode serializes res and an optional CSV record into a snapshot.
func Encode(res *decoder.Result, energy csvmeta.Record, opts ...Option) ([]byte, error) {
	if res == nil || res.Grid == nil {
		return nil, fmt.Errorf("%w: nil grid", errs.ErrInvalidPayload)
	}

	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	h, err := section.NewHeader(res.Grid.Shape())
	if err != nil {
		return nil, err
	}
	if endian.IsBigEndian(cfg.engine) {
		h.Flag.WithBigEndian()
	}
	h.Flag.SetPayloadCompression(cfg.compression)
	h.Flag.SetPayloadEncoding(cfg.encoding)
	h.Flag.SetSinglePrecision(cfg.single)
	h.Flag.SetMode(res.Mode)
	if err := h.Flag.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot flags (mode %s, encoding %s): %w", res.Mode, cfg.encoding, err)
	}

	meta, err := marshalDocument(res.Fields, res.Meta, res.ByteOrder, energy)
	if err != nil {
		return nil, err
	}
	if int64(len(meta)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: metadata section too large", errs.ErrUnsupportedValue)
	}
	h.Flag.SetHasMetadata(true)
	h.MetadataSize = uint32(len(meta))

	enc, err := payloadEncoder(h.Flag)
	if err != nil {
		return nil, err
	}
	defer enc.Finish()

	enc.WriteSlice(res.Grid.Values())
	raw := enc.Bytes()
	h.Checksum = hash.Checksum(raw)

	packed, _, err := compress.CompressWithStats(cfg.compression, raw)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, section.HeaderSize+len(meta)+len(packed))
	out = append(out, h.Bytes()...)
	out = append(out, meta...)
	out = append(out, packed...)

	return out, nil
}

// Decode parses a snapshot produced by Encode. The returned grid does not alias data.
func Decode(data []byte) (*Snapshot, error) {
	h, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if h.PayloadOffset() > len(data) {
		return nil, fmt.Errorf("%w: metadata section overruns blob", errs.ErrInvalidPayload)
	}

	snap := &Snapshot{
		Meta:        header.NewMetadata(),
		Mode:        h.Flag.Mode(),
		Compression: h.Flag.PayloadCompression(),
		Encoding:    h.Flag.PayloadEncoding(),
		ByteOrder:   h.Flag.EndianEngine(),
	}

	if h.Flag.HasMetadata() {
		doc, err := unmarshalDocument(data[section.MetadataOffset:h.PayloadOffset()])
		if err != nil {
			return nil, err
		}
		snap.Fields = doc.Fields
		snap.Meta = doc.Meta
		if doc.Energy != nil {
			snap.Energy = *doc.Energy
		}
		switch doc.SourceByteOrder {
		case "big":
			snap.SourceByteOrder = endian.GetBigEndianEngine()
		case "little":
			snap.SourceByteOrder = endian.GetLittleEndianEngine()
		}
	}
	if snap.Fields == nil {
		snap.Fields = header.Fields{}
	}

	codec, err := compress.GetCodec(snap.Compression)
	if err != nil {
		return nil, err
	}
	raw, err := codec.Decompress(data[h.PayloadOffset():])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidPayload, err)
	}

	nx, ny, nz := h.Dims()
	g, err := grid.New(nx, ny, nz, decoder.DefaultMaxCells)
	if err != nil {
		return nil, err
	}

	values := g.Values()
	if width := h.Flag.ScalarWidth(); snap.Encoding == format.EncodingRaw && len(raw) != len(values)*width {
		return nil, fmt.Errorf("%w: payload holds %d bytes, want %d", errs.ErrInvalidPayload, len(raw), len(values)*width)
	}
	if !hash.Verify(raw, h.Checksum) {
		return nil, errs.ErrChecksumMismatch
	}

	dec, err := payloadDecoder(h.Flag)
	if err != nil {
		return nil, err
	}
	n := 0
	for v := range dec.All(raw, len(values)) {
		values[n] = v
		n++
	}
	if n != len(values) {
		return nil, fmt.Errorf("%w: payload holds %d of %d scalars", errs.ErrInvalidPayload, n, len(values))
	}
	snap.Grid = g

	return snap, nil
}

func payloadEncoder(f section.Flag) (encoding.ColumnarEncoder[float64], error) {
	if f.PayloadEncoding() == format.EncodingGorilla {
		return encoding.NewFloatGorillaEncoder(), nil
	}

	return encoding.NewFloatRawEncoder(f.EndianEngine(), f.ScalarWidth())
}

func payloadDecoder(f section.Flag) (encoding.ColumnarDecoder[float64], error) {
	if f.PayloadEncoding() == format.EncodingGorilla {
		return encoding.NewFloatGorillaDecoder(), nil
	}

	return encoding.NewFloatRawDecoder(f.EndianEngine(), f.ScalarWidth())
}
