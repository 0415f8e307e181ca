package gff3

import (
	"errors"
	"strings"
	"testing"

	"gffio/core/ranges"
)

func TestParseRecordCoordinates(t *testing.T) {
	line := "ctg123\t.\tgene\t1000\t9000\t.\t+\t.\tID=gene00001;Name=EDEN"
	r, err := ParseRecord(line)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.Range != ranges.MustMake("ctg123", 999, 9000) {
		t.Fatalf("range: got %v", r.Range)
	}
	if r.Source != "." || r.Type != "gene" || r.Strand != StrandForward || r.Phase != NoPhase || r.HasScore() {
		t.Fatalf("fields: %+v", r)
	}
	if r.Attributes.First("Name") != "EDEN" {
		t.Fatalf("attributes: %#v", r.Attributes)
	}
	out, err := FormatRecord(r)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if out != line {
		t.Fatalf("format:\n got %q\nwant %q", out, line)
	}
}

func TestParseRecordFields(t *testing.T) {
	r, err := ParseRecord("chr1\tcurated\tCDS\t201\t300\t0.25\t-\t2\tParent=mRNA1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.Score == nil || *r.Score != 0.25 {
		t.Fatalf("score: %v", r.Score)
	}
	if r.Strand != StrandReverse || r.Phase != 2 {
		t.Fatalf("strand/phase: %v %v", r.Strand, r.Phase)
	}
}

func TestParseRecordErrors(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		field string
	}{
		{"seven columns", "ctg123\t.\tgene\t1000\t9000\t.\t+", ""},
		{"ten columns", "ctg123\t.\tgene\t1000\t9000\t.\t+\t.\tID=a\textra", ""},
		{"bad start", "ctg123\t.\tgene\tx\t9000\t.\t+\t.\t.", "start"},
		{"zero start", "ctg123\t.\tgene\t0\t9000\t.\t+\t.\t.", "range"},
		{"inverted", "ctg123\t.\tgene\t9002\t9000\t.\t+\t.\t.", "range"},
		{"bad score", "ctg123\t.\tgene\t1\t9\tabc\t+\t.\t.", "score"},
		{"nan score", "ctg123\t.\tgene\t1\t9\tNaN\t+\t.\t.", "score"},
		{"bad strand", "ctg123\t.\tgene\t1\t9\t.\t?\t.\t.", "strand"},
		{"bad phase", "ctg123\t.\tCDS\t1\t9\t.\t+\t3\t.", "phase"},
		{"empty seqid", "\t.\tgene\t1\t9\t.\t+\t.\t.", "seqid"},
		{"bad escape", "ctg123\t.\tgene\t1\t9\t.\t+\t.\tNote=%G0", "attributes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord(tt.line)
			if err == nil {
				t.Fatalf("expected error")
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("want *FormatError, got %T %v", err, err)
			}
			if fe.Field != tt.field {
				t.Fatalf("field: got %q want %q (%v)", fe.Field, tt.field, err)
			}
			if !IsFormat(err) {
				t.Fatalf("IsFormat false for %v", err)
			}
		})
	}
}

func TestFormatRecordScoreShortest(t *testing.T) {
	for _, s := range []string{"0.1", "1", "12.5", "1e-05", "1e+21", "-3.75"} {
		line := "c\ts\tt\t1\t2\t" + s + "\t.\t.\t."
		r, err := ParseRecord(line)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		out, err := FormatRecord(r)
		if err != nil {
			t.Fatalf("format: %v", err)
		}
		if out != line {
			t.Fatalf("score %s drifted: %q", s, out)
		}
	}
}

func TestFormatRecordRejectsUnwritable(t *testing.T) {
	good := Record{Range: ranges.MustMake("chr1", 0, 10), Source: "src", Type: "gene", Phase: NoPhase}
	if _, err := FormatRecord(good); err != nil {
		t.Fatalf("good record: %v", err)
	}
	bad := []func(r *Record){
		func(r *Record) { r.Range.Start = 11 },
		func(r *Record) { r.Source = "a\tb" },
		func(r *Record) { r.Type = "" },
		func(r *Record) { r.Range.ReferenceName = "#chr1" },
		func(r *Record) { r.Phase = 3 },
		func(r *Record) { r.Strand = Strand(7) },
		func(r *Record) { r.Attributes = Attributes{{Key: "", Values: []string{"v"}}} },
		func(r *Record) { r.Attributes = Attributes{{Key: "Flag"}} },
		func(r *Record) {
			r.Attributes = Attributes{{Key: "A", Values: []string{"1"}}, {Key: "A", Values: []string{"2"}}}
		},
	}
	for i, mutate := range bad {
		r := good
		mutate(&r)
		if _, err := FormatRecord(r); !IsFormat(err) {
			t.Fatalf("case %d: want format error, got %v", i, err)
		}
	}
}

func TestZeroPhaseIsFrameZero(t *testing.T) {
	r := Record{Range: ranges.MustMake("chr1", 0, 10), Source: "src", Type: "CDS"}
	line, err := FormatRecord(r)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if want := "chr1\tsrc\tCDS\t1\t10\t.\t.\t0\t."; line != want {
		t.Fatalf("got %q, want %q", line, want)
	}
	r.Phase = NoPhase
	if line, _ = FormatRecord(r); !strings.HasSuffix(line, "\t.\t.\t.\t.") {
		t.Fatalf("NoPhase not written as '.': %q", line)
	}
}

func TestRecordEqual(t *testing.T) {
	a, _ := ParseRecord("c\ts\tt\t1\t2\t3.5\t+\t0\tID=a")
	b, _ := ParseRecord("c\ts\tt\t1\t2\t3.5\t+\t0\tID=a")
	if !a.Equal(b) {
		t.Fatalf("identical lines parsed unequal")
	}
	c, _ := ParseRecord("c\ts\tt\t1\t2\t.\t+\t0\tID=a")
	if a.Equal(c) {
		t.Fatalf("score presence ignored")
	}
	d, _ := ParseRecord("c\ts\tt\t1\t2\t3.5\t+\t0\tID=b")
	if a.Equal(d) {
		t.Fatalf("attributes ignored")
	}
}

func TestFormatErrorMessage(t *testing.T) {
	_, err := ParseRecord("a\tb")
	err = AtLine(err, "x.gff", 7)
	if !strings.Contains(err.Error(), "x.gff:7") {
		t.Fatalf("missing location: %v", err)
	}
	_, err = ParseRecord("a\tb")
	err = AtRecord(err, "x.gff.tfrecord", 3)
	if !strings.Contains(err.Error(), "record 3") {
		t.Fatalf("missing record index: %v", err)
	}
}
