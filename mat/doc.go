// Package mat writes MATLAB Level-5 MAT-files.
//
// Only the subset needed to export OMF snapshots is supported: numeric arrays of class single
// and double, character arrays and 1x1 structs, optionally wrapped in zlib-compressed
// elements (readable by MATLAB 7 and later, scipy.io.loadmat and most other readers).
//
// The layout follows the MAT-File Format reference:
//
//	header     128 bytes: 116-byte text, 8-byte subsystem offset, version, endian indicator
//	element    tag (type, byte count) + data padded to 8 bytes
//	           data of 4 bytes or less is packed into the tag ("small element")
//
// Encode writes the three variables produced for one OMF file: mag_coord_data, metadata and
// energy_terms.
package mat
