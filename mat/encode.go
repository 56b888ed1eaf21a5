package mat

import (
	"bytes"
	"io"

	"github.com/arloliu/omf/convert"
	"github.com/arloliu/omf/csvmeta"
	"github.com/arloliu/omf/header"
)

// MetadataStruct returns the metadata struct stored alongside a frame.
func MetadataStruct(meta header.Metadata) Struct {
	return Struct{Fields: []Field{
		{Name: "SimTime", Value: Scalar(meta.SimTime)},
		{Name: "Iteration", Value: Scalar(meta.Iteration)},
		{Name: "Stage", Value: Scalar(meta.Stage)},
		{Name: "MIFSource", Value: Char(meta.MIFSource)},
	}}
}

// Encode writes a MAT-file holding mag_coord_data (the frame as a single array), metadata and
// energy_terms (the CSV row matched to the file; empty when there is none).
func Encode(w io.Writer, frame *convert.Frame, meta header.Metadata, energy csvmeta.Record, opts ...Option) error {
	mw, err := NewWriter(w, opts...)
	if err != nil {
		return err
	}

	dims := frame.Dims()
	if err := mw.WriteVar(VarMagCoordData, Single{Dims: dims[:], Data: frame.Data}); err != nil {
		return err
	}
	if err := mw.WriteVar(VarMetadata, MetadataStruct(meta)); err != nil {
		return err
	}

	return mw.WriteVar(VarEnergyTerms, NewStruct(energy.Keys, energy.Values))
}

// Marshal is Encode into a new byte slice.
func Marshal(frame *convert.Frame, meta header.Metadata, energy csvmeta.Record, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, frame, meta, energy, opts...); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
