// Package compress provides the payload codecs used by the snapshot container.
//
// A snapshot stores the decoded vector grid as a flat run of float64 scalars. That payload is
// passed through one of the codecs below before it is written:
//
//   - None: stored as is
//   - Zstd: best ratio; klauspost/compress by default, valyala/gozstd with the gozstd build tag
//   - S2: balanced ratio and speed (klauspost/compress/s2)
//   - LZ4: fastest decompression (pierrec/lz4 block format)
//
// Magnetization grids are smooth, so neighbouring scalars share exponent and high mantissa
// bytes; Zstd and S2 usually shrink a payload to 30-60% of its raw size.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// # Thread Safety
//
// All built-in codecs are stateless values backed by sync.Pool encoders and are safe for
// concurrent use, which the batch runner relies on.
package compress
