package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gffio/pkg/api"
)

const features = "##gff-version 3.2.1\n" +
	"##sequence-region ctg123 1 1497228\n" +
	"ctg123\t.\tgene\t1000\t9000\t.\t+\t.\tID=gene00001;Name=EDEN\n" +
	"ctg123\t.\tTF_binding_site\t1000\t1012\t.\t+\t.\tID=tfbs00001;Parent=gene00001\n"

func TestMain(m *testing.M) {
	ConfigPaths = nil
	os.Exit(m.Run())
}

func run(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errb bytes.Buffer
	code := Run(argv, &out, &errb)
	return code, out.String(), errb.String()
}

func fixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "test_features.gff")
	if err := os.WriteFile(path, []byte(features), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, "version")
	if code != 0 || !strings.HasPrefix(out, "gffio version ") {
		t.Fatalf("code=%d out=%q", code, out)
	}
}

func TestHelpExitsZero(t *testing.T) {
	code, out, _ := run(t, "--help")
	if code != 0 || !strings.Contains(out, "Usage:") {
		t.Fatalf("code=%d out=%q", code, out)
	}
}

func TestUsageErrors(t *testing.T) {
	for _, argv := range [][]string{
		{"frobnicate"},
		{"view"},
		{"view", "x.gff", "--format", "xml"},
		{"--backend", "native", "version"},
	} {
		code, _, errOut := run(t, argv...)
		if code != 2 || !strings.Contains(errOut, "gffio:") {
			t.Fatalf("%v: code=%d stderr=%q", argv, code, errOut)
		}
	}
}

func TestViewRoundTripsText(t *testing.T) {
	path := fixture(t, t.TempDir())
	for _, backend := range []string{"bytes", "scanner"} {
		code, out, errOut := run(t, "--backend", backend, "view", path)
		if code != 0 {
			t.Fatalf("%s: code=%d stderr=%q", backend, code, errOut)
		}
		if out != features {
			t.Fatalf("%s: got:\n%s\nwant:\n%s", backend, out, features)
		}
	}
}

func TestViewFiltersJSONL(t *testing.T) {
	path := fixture(t, t.TempDir())
	code, out, errOut := run(t, "view", path, "--format", "jsonl", "--type", "gene", "--reference", "ctg123")
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 line, got %q", out)
	}
	var rec api.RecordV1
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Start != 999 || rec.End != 9000 || rec.Type != "gene" || rec.SourceFile != path {
		t.Fatalf("record %+v", rec)
	}
}

func TestViewMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gff")
	if err := os.WriteFile(path, []byte("##gff-version 3\nctg123\t.\tgene\t1000\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	code, _, errOut := run(t, "view", path)
	if code != 1 || !strings.Contains(errOut, "bad.gff:2") {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	code, _, _ = run(t, "view", filepath.Join(t.TempDir(), "missing.gff"))
	if code != 1 {
		t.Fatalf("missing file: code=%d", code)
	}
}

func TestConvertDigestStat(t *testing.T) {
	dir := t.TempDir()
	src := fixture(t, dir)
	dst := filepath.Join(dir, "test_features.gff.tfrecord.gz")
	if code, _, errOut := run(t, "convert", src, dst, "--compression-level", "9"); code != 0 {
		t.Fatalf("convert: code=%d stderr=%q", code, errOut)
	}

	code, out, errOut := run(t, "digest", filepath.Join(dir, "test_features.*"))
	if code != 0 {
		t.Fatalf("digest: code=%d stderr=%q", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("digest lines %q", out)
	}
	if strings.Fields(lines[0])[0] != strings.Fields(lines[1])[0] {
		t.Fatalf("digests differ across encodings:\n%s", out)
	}

	code, out, errOut = run(t, "stat", "--json", src, dst)
	if code != 0 {
		t.Fatalf("stat: code=%d stderr=%q", code, errOut)
	}
	dec := json.NewDecoder(strings.NewReader(out))
	for _, want := range []string{"text", "gzip-container"} {
		var st api.StatV1
		if err := dec.Decode(&st); err != nil {
			t.Fatalf("decode stat: %v", err)
		}
		if st.Encoding != want || st.Records != 2 || st.SequenceRegions != 1 || st.Types["gene"] != 1 {
			t.Fatalf("stat %+v", st)
		}
	}

	code, out, _ = run(t, "stat", dst)
	if code != 0 || !strings.HasPrefix(out, "path\tencoding") || !strings.Contains(out, "\tgzip-container\tgff-version 3.2.1\t1\t2\t1\t2\n") {
		t.Fatalf("stat text: code=%d out=%q", code, out)
	}
}

func TestConvertToStdout(t *testing.T) {
	dir := t.TempDir()
	src := fixture(t, dir)
	container := filepath.Join(dir, "x.gff.tfrecord")
	if code, _, errOut := run(t, "convert", src, container); code != 0 {
		t.Fatalf("convert: code=%d stderr=%q", code, errOut)
	}
	code, out, errOut := run(t, "convert", container, "-")
	if code != 0 || out != features {
		t.Fatalf("code=%d stderr=%q out:\n%s", code, errOut, out)
	}
}

func TestDigestLogsAtDebug(t *testing.T) {
	path := fixture(t, t.TempDir())
	code, _, errOut := run(t, "--log-level", "debug", "digest", path)
	if code != 0 || !strings.Contains(errOut, "msg=digest") || !strings.Contains(errOut, "records=2") {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
}

func TestDigestNoMatchIsUsageError(t *testing.T) {
	code, _, _ := run(t, "digest", filepath.Join(t.TempDir(), "*.gff"))
	if code != 2 {
		t.Fatalf("code=%d, want 2", code)
	}
}

func TestBackendFromEnvironment(t *testing.T) {
	path := fixture(t, t.TempDir())
	t.Setenv("GFFIO_BACKEND", "scanner")
	t.Setenv("GFFIO_LOG_LEVEL", "debug")
	code, _, errOut := run(t, "view", path)
	if code != 0 || !strings.Contains(errOut, "backend=scanner") {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	t.Setenv("GFFIO_BACKEND", "bogus")
	if code, _, _ := run(t, "view", path); code != 2 {
		t.Fatalf("bad env backend: code=%d", code)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := fixture(t, dir)
	cfg := filepath.Join(dir, "config.json")
	if err := os.WriteFile(cfg, []byte(`{"log_level": "debug", "log-level": "debug", "log_format": "json", "log-format": "json"}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	old := ConfigPaths
	ConfigPaths = []string{cfg}
	defer func() { ConfigPaths = old }()
	code, _, errOut := run(t, "view", path)
	if code != 0 || !strings.Contains(errOut, `"msg":"gff reader opened"`) {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
}

func TestCancelledContext(t *testing.T) {
	path := fixture(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errb bytes.Buffer
	if code := RunContext(ctx, []string{"view", path}, &out, &errb); code != 130 {
		t.Fatalf("code=%d stderr=%q", code, errb.String())
	}
}
