// Package section defines the fixed-size header of the snapshot container.
//
// A snapshot is laid out as:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	├─────────────────────────────────────────────────────────┤
//	│ Metadata (MetadataSize bytes, JSON, optional)           │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload (rest of the blob)                              │
//	│  - nx*ny*nz*3 scalars in OMF on-disk order              │
//	│  - raw or Gorilla encoded, then compressed              │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field        | Type   | Description
//	-------|--------------|--------|----------------------------------------
//	0-1    | Options      | uint16 | Magic number and option bits, always little-endian
//	2      | Codec        | uint8  | Bits 0-3: compression (format.CompressionType)
//	       |              |        | Bits 4-7: scalar encoding (format.EncodingType)
//	3      | SourceMode   | uint8  | Data mode of the OMF file (format.DataMode)
//	4-15   | NX, NY, NZ   | uint32 | Grid dimensions
//	16-19  | MetadataSize | uint32 | Length of the metadata section
//	20-23  | Reserved     | uint32 | Must be 0
//	24-31  | Checksum     | uint64 | xxHash64 of the encoded, uncompressed payload
//
// Options bits:
//
//	Bit 0: Metadata section present
//	Bit 1: Endianness (0=little-endian, 1=big-endian), applies to every field but Options
//	Bit 2: Payload scalars are float32 instead of float64
//	Bit 3: Reserved (must be 0)
//	Bits 4-15: Magic number (0xC510)
package section
