// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is a command entry point that reports its exit code.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs fn with a context cancelled by SIGINT or SIGTERM and exits.
// No arguments prints help.
func Main(fn RunFunc) {
	os.Exit(Exec(fn, os.Args[1:], os.Stdout, os.Stderr))
}

// Exec is Main without os.Exit.
func Exec(fn RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, fn, argv, stdout, stderr)
}

func run(ctx context.Context, fn RunFunc, argv []string, stdout, stderr io.Writer) int {
	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	code := fn(ctx, argv, stdout, stderr)
	// Interrupted runs exit 130 even if the command finished cleanly.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
