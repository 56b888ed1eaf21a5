// Package decoder turns an OMF byte stream into a dense vector grid.
//
// Decoding runs in two strictly ordered steps. The header package consumes the text prologue
// up to the "Begin: Data" marker, then exactly one data strategy fills the grid:
//
//   - Text: one line per cell, three whitespace-separated numbers
//   - Binary 4: a 4-byte sentinel (1234567.0) followed by IEEE-754 singles
//   - Binary 8: an 8-byte sentinel (123456789012345.0) followed by IEEE-754 doubles
//
// Binary byte order is inferred from the sentinel: big-endian is tried first, then
// little-endian. Cells are visited with z outermost and x innermost; the three components of
// a cell are stored next to each other. Every value is scaled by the header's
// valuemultiplier.
//
// # Usage
//
//	dec, err := decoder.New(decoder.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	res, err := dec.Decode(f)
//	if err != nil {
//	    return err // errs.ErrUnexpectedEOF, errs.ErrMalformedTextSample, ...
//	}
//	v := res.Grid.Vector(i, j, k)
//
// A failed decode never returns a partially filled grid.
//
// # Thread Safety
//
// A Decoder holds configuration only; Decode may be called from several goroutines as long
// as each call reads its own stream.
package decoder
