// Package snapshot stores a decoded OMF grid in a compact, checksummed binary container.
//
// A snapshot keeps everything the decoder produced (grid, header fields, simulation metadata,
// source data mode) plus an optional CSV record, so a folder of OMF text dumps can be archived
// at a fraction of their size and reloaded without re-parsing. See package section for the
// byte layout.
//
// The payload is written raw (float64, or float32 with WithSinglePrecision) or Gorilla XOR
// encoded (WithEncoding), then compressed with the selected codec.
//
// # Usage
//
//	res, err := decoder.Decode(f)
//	if err != nil {
//	    return err
//	}
//	blob, err := snapshot.Encode(res, csvmeta.Record{}, snapshot.WithCompression(format.CompressionS2))
//	...
//	snap, err := snapshot.Decode(blob)
package snapshot
