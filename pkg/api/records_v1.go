// pkg/api/records_v1.go
package api

// RecordV1 is the stable JSON/JSONL schema for one GFF feature.
// Coordinates are 0-based half-open, as held in memory.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RecordV1 struct {
	ReferenceName string        `json:"reference_name"`
	Start         uint64        `json:"start"`
	End           uint64        `json:"end"`
	Source        string        `json:"source"`
	Type          string        `json:"type"`
	Score         *float64      `json:"score,omitempty"`
	Strand        string        `json:"strand"` // "+" | "-" | "."
	Phase         *int          `json:"phase,omitempty"`
	Attributes    []AttributeV1 `json:"attributes,omitempty"`
	SourceFile    string        `json:"source_file,omitempty"`
}

// AttributeV1 keeps attribute order and repeated values.
type AttributeV1 struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

// HeaderV1 is the stable schema for a file header.
type HeaderV1 struct {
	GFFVersion      string     `json:"gff_version"`
	SequenceRegions []RegionV1 `json:"sequence_regions,omitempty"`
	SourceFile      string     `json:"source_file,omitempty"`
}

type RegionV1 struct {
	ReferenceName string `json:"reference_name"`
	Start         uint64 `json:"start"`
	End           uint64 `json:"end"`
}

// StatV1 summarises one file for the stat command.
type StatV1 struct {
	Path            string         `json:"path"`
	Encoding        string         `json:"encoding"`
	GFFVersion      string         `json:"gff_version"`
	SequenceRegions int            `json:"sequence_regions"`
	Records         int            `json:"records"`
	References      map[string]int `json:"references,omitempty"`
	Types           map[string]int `json:"types,omitempty"`
}
