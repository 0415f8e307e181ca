package gffio

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"gffio/core/gff3"
	"gffio/core/ranges"
)

const fixture = "testdata/test_features.gff"

func f64(v float64) *float64 { return &v }

func sampleHeader() gff3.Header {
	return gff3.Header{
		GFFVersion:      "gff-version 3.2.1",
		SequenceRegions: []ranges.Range{ranges.MustMake("ctg123", 0, 1497228), ranges.MustMake("chrM", 0, 16569)},
	}
}

func sampleRecords() []gff3.Record {
	return []gff3.Record{
		{
			Range: ranges.MustMake("ctg123", 999, 9000), Source: ".", Type: "gene",
			Strand: gff3.StrandForward, Phase: gff3.NoPhase,
			Attributes: gff3.Attributes{}.Add("ID", "gene00001").Add("Name", "EDEN"),
		},
		{
			Range: ranges.MustMake("ctg123", 1049, 9000), Source: "curated", Type: "mRNA",
			Score: f64(0.25), Strand: gff3.StrandForward, Phase: gff3.NoPhase,
			Attributes: gff3.Attributes{}.Add("ID", "mRNA00001").Add("Parent", "gene00001").Add("Alias", "a1", "a2"),
		},
		{
			Range: ranges.MustMake("ctg123", 1200, 1500), Source: "curated", Type: "CDS",
			Score: f64(1e-05), Strand: gff3.StrandReverse, Phase: 2,
			Attributes: gff3.Attributes{}.Add("Note", "reserved ;=,% and\ttab"),
		},
		{
			Range: ranges.MustMake("chrM", 0, 0), Source: "pred", Type: "insertion_site",
			Strand: gff3.StrandUnknown, Phase: gff3.NoPhase,
		},
		{
			Range: ranges.MustMake("chrM", 100, 16569), Source: "pred", Type: "region",
			Score: f64(-12), Strand: gff3.StrandUnknown, Phase: 0,
			Attributes: gff3.Attributes{}.Add("Dbxref", "GO:0005739", ""),
		},
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// writeGz creates a gzipped text file with plain compress/gzip.
func writeGz(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(content)); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

// fixtureIn rewrites the text fixture into encoding e and returns its path.
func fixtureIn(t *testing.T, dir string, e Encoding) string {
	t.Helper()
	h, recs, err := ReadAll(fixture)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	path := filepath.Join(dir, "test_features"+e.Suffix())
	if err := WriteAll(path, h, recs); err != nil {
		t.Fatalf("write %v fixture: %v", e, err)
	}
	return path
}

func equalRecords(t *testing.T, got, want []gff3.Record) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("record %d:\n got %+v\nwant %+v", i, got[i], want[i])
		}
	}
}

// countingCloser records Close calls on an in-memory destination.
type countingCloser struct {
	buf    []byte
	closes int
	fail   error
}

func (c *countingCloser) Write(p []byte) (int, error) {
	if c.fail != nil {
		return 0, c.fail
	}
	c.buf = append(c.buf, p...)
	return len(p), nil
}

func (c *countingCloser) Close() error {
	c.closes++
	return nil
}
