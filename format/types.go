package format

type (
	DataMode        uint8
	CompressionType uint8
	EncodingType    uint8
	OutputFormat    uint8
)

const (
	ModeText    DataMode = 0x1 // ModeText represents whitespace-delimited text samples.
	ModeBinary4 DataMode = 0x2 // ModeBinary4 represents IEEE-754 single precision samples.
	ModeBinary8 DataMode = 0x3 // ModeBinary8 represents IEEE-754 double precision samples.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	EncodingRaw     EncodingType = 0x1 // EncodingRaw represents fixed-width IEEE 754 scalars.
	EncodingGorilla EncodingType = 0x2 // EncodingGorilla represents Gorilla XOR-compressed float64 scalars.

	OutputMAT      OutputFormat = 0x1 // OutputMAT represents a MATLAB Level-5 MAT-file.
	OutputSnapshot OutputFormat = 0x2 // OutputSnapshot represents the compact binary snapshot container.
)

// Width returns the scalar width in bytes of a binary mode, or 0 for text.
func (m DataMode) Width() int {
	switch m {
	case ModeBinary4:
		return 4
	case ModeBinary8:
		return 8
	default:
		return 0
	}
}

// IsBinary reports whether the mode reads raw floating-point scalars.
func (m DataMode) IsBinary() bool {
	return m == ModeBinary4 || m == ModeBinary8
}

func (m DataMode) String() string {
	switch m {
	case ModeText:
		return "Text"
	case ModeBinary4:
		return "Binary 4"
	case ModeBinary8:
		return "Binary 8"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a lower-case name ("none", "zstd", "s2", "lz4") to its CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

func (e EncodingType) String() string {
	switch e {
	case EncodingRaw:
		return "Raw"
	case EncodingGorilla:
		return "Gorilla"
	default:
		return "Unknown"
	}
}

// ParseEncoding maps "raw" or "gorilla" to its EncodingType.
func ParseEncoding(name string) (EncodingType, bool) {
	switch name {
	case "raw", "":
		return EncodingRaw, true
	case "gorilla":
		return EncodingGorilla, true
	default:
		return 0, false
	}
}

func (o OutputFormat) String() string {
	switch o {
	case OutputMAT:
		return "mat"
	case OutputSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Ext returns the file extension, including the dot, used for the output format.
func (o OutputFormat) Ext() string {
	switch o {
	case OutputMAT:
		return ".mat"
	case OutputSnapshot:
		return ".omfs"
	default:
		return ""
	}
}

// ParseOutputFormat maps "mat" or "snapshot" to its OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, bool) {
	switch name {
	case "mat":
		return OutputMAT, true
	case "snapshot", "omfs":
		return OutputSnapshot, true
	default:
		return 0, false
	}
}
