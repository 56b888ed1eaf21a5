package snapshot

import (
	"fmt"
	"math"

	json "github.com/goccy/go-json"

	"github.com/arloliu/omf/csvmeta"
	"github.com/arloliu/omf/endian"
	"github.com/arloliu/omf/errs"
	"github.com/arloliu/omf/header"
)

// document is the JSON metadata section.
type document struct {
	Fields          header.Fields   `json:"fields"`
	Meta            header.Metadata `json:"meta"`
	SourceByteOrder string          `json:"source_byte_order,omitempty"`
	Energy          *csvmeta.Record `json:"energy,omitempty"`
}

func marshalDocument(fields header.Fields, meta header.Metadata, order endian.EndianEngine, energy csvmeta.Record) ([]byte, error) {
	for key, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: header field %s = %g", errs.ErrUnsupportedValue, key, v)
		}
	}

	doc := document{Fields: fields, Meta: meta}
	if order != nil {
		doc.SourceByteOrder = endian.Name(order)
	}
	if energy.Len() > 0 {
		// JSON has no NaN, so non-finite cells travel as null
		rec := csvmeta.Record{Keys: energy.Keys, Values: make([]any, len(energy.Values))}
		for i, v := range energy.Values {
			if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
				continue
			}
			rec.Values[i] = v
		}
		doc.Energy = &rec
	}

	return json.Marshal(doc)
}

func unmarshalDocument(data []byte) (document, error) {
	doc := document{Meta: header.NewMetadata()}
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("%w: metadata: %v", errs.ErrInvalidPayload, err)
	}
	if doc.Energy != nil {
		for i, v := range doc.Energy.Values {
			if v == nil {
				doc.Energy.Values[i] = math.NaN()
			}
		}
	}

	return doc, nil
}
