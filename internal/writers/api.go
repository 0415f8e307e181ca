// internal/writers/api.go
package writers

import (
	"gffio/core/gff3"
	"gffio/pkg/api"
)

// ToAPIRecord maps a record to its v1 wire shape.
func ToAPIRecord(rec gff3.Record, sourceFile string) api.RecordV1 {
	out := api.RecordV1{
		ReferenceName: rec.Range.ReferenceName,
		Start:         rec.Range.Start,
		End:           rec.Range.End,
		Source:        rec.Source,
		Type:          rec.Type,
		Score:         rec.Score,
		Strand:        rec.Strand.String(),
		SourceFile:    sourceFile,
	}
	if rec.Phase != gff3.NoPhase {
		p := int(rec.Phase)
		out.Phase = &p
	}
	for _, a := range rec.Attributes {
		out.Attributes = append(out.Attributes, api.AttributeV1{Key: a.Key, Values: a.Values})
	}
	return out
}

// ToAPIHeader maps a header to its v1 wire shape.
func ToAPIHeader(h gff3.Header, sourceFile string) api.HeaderV1 {
	out := api.HeaderV1{GFFVersion: h.GFFVersion, SourceFile: sourceFile}
	for _, r := range h.SequenceRegions {
		out.SequenceRegions = append(out.SequenceRegions, api.RegionV1{ReferenceName: r.ReferenceName, Start: r.Start, End: r.End})
	}
	return out
}
