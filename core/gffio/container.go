// core/gffio/container.go
package gffio

import (
	"math"

	"gopkg.in/mgo.v2/bson"

	"gffio/core/gff3"
	"gffio/core/ranges"
)

// Container payloads are BSON documents. The first record of a container is
// the header document; every later record is one feature.

const (
	kindHeader = "gff3.header"
	kindRecord = "gff3.record"
)

type rangeDoc struct {
	Reference string `bson:"reference_name"`
	Start     int64  `bson:"start"`
	End       int64  `bson:"end"`
}

type headerDoc struct {
	Kind            string     `bson:"kind"`
	GFFVersion      string     `bson:"gff_version"`
	SequenceRegions []rangeDoc `bson:"sequence_regions,omitempty"`
}

type attrDoc struct {
	Key    string   `bson:"key"`
	Values []string `bson:"values"`
}

type recordDoc struct {
	Kind       string    `bson:"kind"`
	Range      rangeDoc  `bson:"range"`
	Source     string    `bson:"source"`
	Type       string    `bson:"type"`
	Score      *float64  `bson:"score,omitempty"`
	Strand     int32     `bson:"strand"`
	Phase      int32     `bson:"phase"`
	Attributes []attrDoc `bson:"attributes,omitempty"`
}

func toRangeDoc(r ranges.Range) (rangeDoc, error) {
	if r.Start > math.MaxInt64 || r.End > math.MaxInt64 {
		return rangeDoc{}, &gff3.FormatError{Record: -1, Field: "range", Message: "coordinate exceeds container limit in " + r.String()}
	}
	return rangeDoc{Reference: r.ReferenceName, Start: int64(r.Start), End: int64(r.End)}, nil
}

func (d rangeDoc) toRange() (ranges.Range, error) {
	if d.Start < 0 || d.End < 0 {
		return ranges.Range{}, &gff3.FormatError{Record: -1, Field: "range", Message: "negative coordinate"}
	}
	r, err := ranges.Make(d.Reference, uint64(d.Start), uint64(d.End))
	if err != nil {
		return ranges.Range{}, &gff3.FormatError{Record: -1, Field: "range", Message: "bad interval", Err: err}
	}
	return r, nil
}

func marshalHeader(h gff3.Header) ([]byte, error) {
	doc := headerDoc{Kind: kindHeader, GFFVersion: h.GFFVersion}
	for _, r := range h.SequenceRegions {
		rd, err := toRangeDoc(r)
		if err != nil {
			return nil, err
		}
		doc.SequenceRegions = append(doc.SequenceRegions, rd)
	}
	return bson.Marshal(doc)
}

func unmarshalHeader(data []byte) (gff3.Header, error) {
	var doc headerDoc
	if err := bson.Unmarshal(data, &doc); err != nil {
		return gff3.Header{}, &gff3.FormatError{Record: -1, Message: "undecodable header document", Err: err}
	}
	if doc.Kind != kindHeader {
		return gff3.Header{}, &gff3.FormatError{Record: -1, Message: "first container record is " + kindLabel(doc.Kind) + ", want header"}
	}
	h := gff3.Header{GFFVersion: doc.GFFVersion}
	for _, rd := range doc.SequenceRegions {
		r, err := rd.toRange()
		if err != nil {
			return gff3.Header{}, err
		}
		h.SequenceRegions = append(h.SequenceRegions, r)
	}
	if err := h.Validate(); err != nil {
		return gff3.Header{}, err
	}
	return h, nil
}

func marshalRecord(rec gff3.Record) ([]byte, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	rd, err := toRangeDoc(rec.Range)
	if err != nil {
		return nil, err
	}
	doc := recordDoc{
		Kind:   kindRecord,
		Range:  rd,
		Source: rec.Source,
		Type:   rec.Type,
		Score:  rec.Score,
		Strand: int32(rec.Strand),
		Phase:  int32(rec.Phase),
	}
	if len(rec.Attributes) > 0 {
		doc.Attributes = make([]attrDoc, len(rec.Attributes))
		for i, a := range rec.Attributes {
			doc.Attributes[i] = attrDoc{Key: a.Key, Values: a.Values}
		}
	}
	return bson.Marshal(doc)
}

func unmarshalRecord(data []byte) (gff3.Record, error) {
	var doc recordDoc
	if err := bson.Unmarshal(data, &doc); err != nil {
		return gff3.Record{}, &gff3.FormatError{Record: -1, Message: "undecodable record document", Err: err}
	}
	if doc.Kind != kindRecord {
		return gff3.Record{}, &gff3.FormatError{Record: -1, Message: "unexpected " + kindLabel(doc.Kind) + " document"}
	}
	r, err := doc.Range.toRange()
	if err != nil {
		return gff3.Record{}, err
	}
	if doc.Strand < 0 || doc.Strand > math.MaxUint8 || doc.Phase < math.MinInt8 || doc.Phase > math.MaxInt8 {
		return gff3.Record{}, &gff3.FormatError{Record: -1, Field: "strand", Message: "strand or phase out of range"}
	}
	rec := gff3.Record{
		Range:  r,
		Source: doc.Source,
		Type:   doc.Type,
		Score:  doc.Score,
		Strand: gff3.Strand(doc.Strand),
		Phase:  gff3.Phase(doc.Phase),
	}
	for _, a := range doc.Attributes {
		rec.Attributes = append(rec.Attributes, gff3.Attribute{Key: a.Key, Values: a.Values})
	}
	if err := rec.Validate(); err != nil {
		return gff3.Record{}, err
	}
	return rec, nil
}

func kindLabel(k string) string {
	if k == "" {
		return "untyped"
	}
	return k
}
