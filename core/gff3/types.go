// Package gff3 holds the GFF3 data model and its text grammar: feature
// records, the file header, the attribute column codec, and the line
// parser/serializer that converts between 1-based closed text coordinates
// and 0-based half-open ranges.
package gff3

import (
	"math"
	"slices"
	"strings"

	"gffio/core/ranges"
)

// DefaultVersion is written when a header carries no version.
const DefaultVersion = "gff-version 3.2.1"

const versionPrefix = "gff-version "

// Strand of a feature. The zero value is StrandUnknown.
type Strand uint8

const (
	StrandUnknown Strand = iota
	StrandForward
	StrandReverse
)

func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "+"
	case StrandReverse:
		return "-"
	default:
		return "."
	}
}

func (s Strand) Valid() bool { return s <= StrandReverse }

// Phase is the CDS reading frame offset, 0..2, or NoPhase. The zero value
// is frame 0, not absent: records built by hand must set NoPhase explicitly.
type Phase int8

const NoPhase Phase = -1

func (p Phase) Valid() bool { return p == NoPhase || (p >= 0 && p <= 2) }

// Attribute is one key of the ninth column with its values in file order.
type Attribute struct {
	Key    string
	Values []string
}

// Attributes is an insertion-ordered multimap. Keys are unique.
type Attributes []Attribute

func (a Attributes) index(key string) int {
	for i := range a {
		if a[i].Key == key {
			return i
		}
	}
	return -1
}

func (a Attributes) Get(key string) ([]string, bool) {
	if i := a.index(key); i >= 0 {
		return a[i].Values, true
	}
	return nil, false
}

// First returns the first value of key, or "".
func (a Attributes) First(key string) string {
	if v, ok := a.Get(key); ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

func (a Attributes) Keys() []string {
	keys := make([]string, len(a))
	for i := range a {
		keys[i] = a[i].Key
	}
	return keys
}

// Set replaces the values of key, appending the key if it is new.
func (a Attributes) Set(key string, values ...string) Attributes {
	vs := slices.Clone(values)
	if i := a.index(key); i >= 0 {
		a[i].Values = vs
		return a
	}
	return append(a, Attribute{Key: key, Values: vs})
}

// Add appends values to key, appending the key if it is new.
func (a Attributes) Add(key string, values ...string) Attributes {
	if i := a.index(key); i >= 0 {
		a[i].Values = append(a[i].Values, values...)
		return a
	}
	return append(a, Attribute{Key: key, Values: slices.Clone(values)})
}

func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for i := range a {
		out[i] = Attribute{Key: a[i].Key, Values: slices.Clone(a[i].Values)}
	}
	return out
}

func (a Attributes) Equal(b Attributes) bool {
	return slices.EqualFunc(a, b, func(x, y Attribute) bool {
		return x.Key == y.Key && slices.Equal(x.Values, y.Values)
	})
}

// Header describes the file: the version pragma text (without the leading
// "##") and the declared sequence regions in file order.
type Header struct {
	GFFVersion      string
	SequenceRegions []ranges.Range
}

// NewHeader builds a header for version token v, e.g. "3.2.1".
func NewHeader(v string, regions ...ranges.Range) Header {
	return Header{GFFVersion: versionPrefix + v, SequenceRegions: regions}
}

// Version returns the token after "gff-version ", or "" if absent.
func (h Header) Version() string {
	v, ok := strings.CutPrefix(h.GFFVersion, versionPrefix)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// WithDefaults fills an empty version with DefaultVersion.
func (h Header) WithDefaults() Header {
	if h.GFFVersion == "" {
		h.GFFVersion = DefaultVersion
	}
	return h
}

func (h Header) Equal(o Header) bool {
	return h.GFFVersion == o.GFFVersion && slices.Equal(h.SequenceRegions, o.SequenceRegions)
}

// Validate checks that h can be written as pragma lines.
func (h Header) Validate() error {
	v := h.Version()
	if v == "" || strings.ContainsAny(v, " \t\r\n") || h.GFFVersion != versionPrefix+v {
		return newFormat("gff-version", "version must be \"gff-version <token>\", got "+quote(h.GFFVersion))
	}
	for _, r := range h.SequenceRegions {
		if !r.Valid() {
			return newFormat("sequence-region", "start > end in "+r.String())
		}
		if r.ReferenceName == "" || strings.ContainsAny(r.ReferenceName, " \t\r\n") {
			return newFormat("sequence-region", "bad reference name "+quote(r.ReferenceName))
		}
	}
	return nil
}

// Record is one feature line.
type Record struct {
	Range      ranges.Range
	Source     string
	Type       string
	Score      *float64 // nil when the column is "."
	Strand     Strand
	Phase      Phase
	Attributes Attributes
}

// HasScore reports whether the score column is set.
func (r Record) HasScore() bool { return r.Score != nil }

// Equal compares records by value.
func (r Record) Equal(o Record) bool {
	if r.Range != o.Range || r.Source != o.Source || r.Type != o.Type ||
		r.Strand != o.Strand || r.Phase != o.Phase {
		return false
	}
	if (r.Score == nil) != (o.Score == nil) {
		return false
	}
	if r.Score != nil && *r.Score != *o.Score {
		return false
	}
	return r.Attributes.Equal(o.Attributes)
}

// Validate checks that r can be serialized without losing information.
func (r Record) Validate() error {
	if !r.Range.Valid() {
		return newFormat("range", "start > end in "+r.Range.String())
	}
	if r.Range.Start == math.MaxUint64 {
		return newFormat("start", "start out of range")
	}
	for _, c := range [...]struct{ name, v string }{
		{"seqid", r.Range.ReferenceName}, {"source", r.Source}, {"type", r.Type},
	} {
		if c.v == "" {
			return newFormat(c.name, "empty column")
		}
		if strings.ContainsAny(c.v, "\t\r\n") {
			return newFormat(c.name, "column contains tab or newline")
		}
	}
	if r.Range.ReferenceName[0] == '#' {
		return newFormat("seqid", "seqid would read back as a comment")
	}
	if r.Score != nil && (math.IsNaN(*r.Score) || math.IsInf(*r.Score, 0)) {
		return newFormat("score", "score must be finite")
	}
	if !r.Strand.Valid() {
		return newFormat("strand", "unknown strand value")
	}
	if !r.Phase.Valid() {
		return newFormat("phase", "phase must be 0, 1, 2 or none")
	}
	for i, a := range r.Attributes {
		if a.Key == "" {
			return newFormat("attributes", "empty attribute key")
		}
		if len(a.Values) == 0 {
			return newFormat("attributes", "attribute "+quote(a.Key)+" has no values")
		}
		if r.Attributes[:i].index(a.Key) >= 0 {
			return newFormat("attributes", "duplicate attribute key "+quote(a.Key))
		}
	}
	return nil
}

func quote(s string) string { return "\"" + s + "\"" }
