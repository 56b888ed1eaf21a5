package section

const (
	MetadataMask     = 0x0001 // Mask for metadata section bit (bit 0)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	SinglePrecMask   = 0x0004 // Mask for float32 payload bit (bit 2)
	ReservedBitsMask = 0x0008 // Mask for reserved bit (bit 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	MagicSnapshotV1 = 0xC510 // MagicSnapshotV1 identifies version 1 of the snapshot container.

	CompressionMask = 0x0F // Bits of the codec byte holding the payload compression
	EncodingMask    = 0xF0 // Bits of the codec byte holding the payload scalar encoding
	EncodingShift   = 4
)

const (
	HeaderSize     = 32         // fixed header size in bytes
	MetadataOffset = HeaderSize // byte offset where the metadata section starts
)
