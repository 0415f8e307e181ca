package appshell

import (
	"context"
	"io"
	"testing"
)

func TestRunDefaultsToHelp(t *testing.T) {
	var got []string
	code := run(context.Background(), func(_ context.Context, argv []string, _, _ io.Writer) int {
		got = argv
		return 0
	}, nil, io.Discard, io.Discard)
	if code != 0 || len(got) != 1 || got[0] != "--help" {
		t.Fatalf("code=%d argv=%v", code, got)
	}
}

func TestRunCancelledIs130(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := run(ctx, func(context.Context, []string, io.Writer, io.Writer) int { return 0 },
		[]string{"version"}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("code=%d, want 130", code)
	}
	code = run(ctx, func(context.Context, []string, io.Writer, io.Writer) int { return 1 },
		[]string{"version"}, io.Discard, io.Discard)
	if code != 1 {
		t.Fatalf("failure code overwritten: %d", code)
	}
}
