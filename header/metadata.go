package header

// NotFound is the numeric sentinel stored in Metadata fields absent from the prologue.
const NotFound = -1

// Metadata holds the simulation details OOMMF writes into "# Desc:" lines.
type Metadata struct {
	SimTime   float64 `json:"SimTime"`
	Iteration float64 `json:"Iteration"`
	Stage     float64 `json:"Stage"`
	MIFSource string  `json:"MIFSource"`
}

// NewMetadata returns Metadata with every field set to its not-found sentinel.
func NewMetadata() Metadata {
	return Metadata{
		SimTime:   NotFound,
		Iteration: NotFound,
		Stage:     NotFound,
	}
}

// HasSimTime reports whether a simulation time was found.
func (m Metadata) HasSimTime() bool {
	return m.SimTime != NotFound
}
