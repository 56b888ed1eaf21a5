// Package encoding provides the scalar encodings of the snapshot payload.
//
// Two encodings are implemented:
//
//   - Raw: fixed-width IEEE 754 scalars (float32 or float64) in a chosen byte order.
//   - Gorilla: XOR compression of consecutive float64 values with leading/trailing zero
//     elision, as described in https://www.vldb.org/pvldb/vol8/p1816-teller.pdf.
//
// Magnetization grids vary smoothly between neighbouring cells and each component is often
// constant over large regions (saturated or empty cells), so the Gorilla encoding usually
// shrinks the payload before the general purpose codec of the compress package runs.
//
// Encoders draw their buffers from internal/pool; call Finish when the bytes are no longer needed.
//
//	enc := encoding.NewFloatGorillaEncoder()
//	defer enc.Finish()
//	enc.WriteSlice(values)
//	payload := enc.Bytes()
//
//	for v := range encoding.NewFloatGorillaDecoder().All(payload, len(values)) {
//	    ...
//	}
package encoding
