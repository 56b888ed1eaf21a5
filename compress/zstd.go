package compress

// ZstdCompressor provides Zstandard compression, the best ratio of the built-in codecs.
//
// The pure-Go klauspost/compress implementation is used unless the binary is built with
// cgo and the gozstd tag, in which case valyala/gozstd is linked instead. Both produce
// standard zstd frames, so snapshots written by one decode with the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
