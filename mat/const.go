package mat

// Data types of element tags.
const (
	miINT8       = 1
	miUINT16     = 4
	miINT32      = 5
	miUINT32     = 6
	miSINGLE     = 7
	miDOUBLE     = 9
	miMATRIX     = 14
	miCOMPRESSED = 15
)

// Array classes stored in the array flags subelement.
const (
	mxSTRUCT = 2
	mxCHAR   = 4
	mxDOUBLE = 6
	mxSINGLE = 7
)

const (
	HeaderSize     = 128
	headerTextSize = 116
	version        = 0x0100
	// endianIndicator reads "IM" in a little-endian file and "MI" in a big-endian one.
	endianIndicator = 'M'<<8 | 'I'

	tagSize      = 8
	smallMaxSize = 4

	// MaxNameLength is the longest variable or field name MATLAB accepts.
	MaxNameLength = 63
	// minFieldNameLength matches what MATLAB itself writes.
	minFieldNameLength = 32
)

// Variable names written by Encode.
const (
	VarMagCoordData = "mag_coord_data"
	VarMetadata     = "metadata"
	VarEnergyTerms  = "energy_terms"
)
