package gffio

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Encoding
	}{
		{"test_features.gff", Text},
		{"test_features.gff3", Text},
		{"/data/x/test_features.gff.gz", GzipText},
		{"test_features.gff.tfrecord", Container},
		{"test_features.gff.tfrecord.gz", GzipContainer},
		{"weird.tfrecord.bz2", Text},
		{"archive.gz.tfrecord", Container},
		{"no_suffix", Text},
		{"", Text},
		{".gz", GzipText},
	}
	for _, tt := range tests {
		if got := Classify(tt.path); got != tt.want {
			t.Fatalf("Classify(%q)=%v want %v", tt.path, got, tt.want)
		}
	}
}

func TestEncodingSuffixClassifiesBack(t *testing.T) {
	for _, e := range Encodings() {
		if got := Classify("x" + e.Suffix()); got != e {
			t.Fatalf("%v: suffix %q classifies as %v", e, e.Suffix(), got)
		}
	}
}

func TestParseBackend(t *testing.T) {
	for _, b := range Backends() {
		got, err := ParseBackend(b.String())
		if err != nil || got != b {
			t.Fatalf("ParseBackend(%q)=%v,%v", b.String(), got, err)
		}
	}
	if _, err := ParseBackend("native"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
