// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"gffio/core/gffio"
	"gffio/internal/logging"
	"gffio/internal/version"
	"gffio/internal/writers"
)

// ConfigPaths are JSON files whose keys supply flag defaults. Missing files
// are ignored; flags and GFFIO_* variables take precedence.
var ConfigPaths = []string{"~/.config/gffio/config.json", ".gffio.json"}

// CLI is the gffio command line.
type CLI struct {
	Backend   string `name:"backend" enum:"${backends}" default:"bytes" env:"GFFIO_BACKEND" help:"Text tokenizer (${enum})."`
	LogLevel  string `name:"log-level" enum:"debug,info,warn,error" default:"warn" env:"GFFIO_LOG_LEVEL" help:"Log level (${enum})."`
	LogFormat string `name:"log-format" enum:"text,json" default:"text" env:"GFFIO_LOG_FORMAT" help:"Log format on stderr (${enum})."`

	View    ViewCmd    `cmd:"" help:"Print the records of a GFF file."`
	Convert ConvertCmd `cmd:"" help:"Rewrite a GFF file in the encoding implied by the output path."`
	Digest  DigestCmd  `cmd:"" help:"Print an encoding-independent BLAKE3 digest per file."`
	Stat    StatCmd    `cmd:"" help:"Summarise headers and record counts."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

// runEnv is bound into every command's Run method.
type runEnv struct {
	ctx    context.Context
	stdout io.Writer
	stderr io.Writer
	opts   []gffio.Option
}

// exitCode carries kong's exit request out of Parse.
type exitCode int

// usageError maps to exit code 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// outputError maps to exit code 3 unless the pipe was closed downstream.
type outputError struct{ err error }

func (e outputError) Error() string { return e.err.Error() }
func (e outputError) Unwrap() error { return e.err }

func backendNames() string {
	var names []string
	for _, b := range gffio.Backends() {
		names = append(names, b.String())
	}
	return strings.Join(names, ",")
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) (code int) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("gffio"),
		kong.Description("Read, convert and inspect GFF3 files in text, gzip and record-container encodings."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Configuration(kong.JSON, ConfigPaths...),
		kong.Vars{
			"backends": backendNames(),
			"formats":  strings.Join(writers.Formats(), ","),
		},
	)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	kctx, err := parser.Parse(argv)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "gffio: %v\n", err)
		_, _ = fmt.Fprintln(stderr, "run 'gffio --help' for usage")
		return 2
	}

	env, err := newEnv(parent, &cli, stdout, stderr)
	if err != nil {
		return exitFor(usageError{err}, stderr)
	}
	return exitFor(kctx.Run(env), stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func newEnv(ctx context.Context, cli *CLI, stdout, stderr io.Writer) (*runEnv, error) {
	level, err := logging.ParseLevel(cli.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cli.LogFormat)
	if err != nil {
		return nil, err
	}
	backend, err := gffio.ParseBackend(cli.Backend)
	if err != nil {
		return nil, err
	}
	logging.InitLogger(stderr, level, format)
	return &runEnv{
		ctx:    ctx,
		stdout: stdout,
		stderr: stderr,
		opts:   []gffio.Option{gffio.WithBackend(backend), gffio.WithLogger(logging.GetLogger())},
	}, nil
}

func exitFor(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 130
	}
	var ue usageError
	var oe outputError
	switch {
	case errors.As(err, &ue):
		_, _ = fmt.Fprintf(stderr, "gffio: %v\n", err)
		return 2
	case errors.As(err, &oe):
		if writers.IsBrokenPipe(err) {
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "gffio: %v\n", err)
		return 3
	}
	_, _ = fmt.Fprintf(stderr, "gffio: %v\n", err)
	return 1
}

// flush ends a buffered stdout write; closed pipes are not errors.
func flush(w *bufio.Writer) error {
	if err := w.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		return outputError{err}
	}
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run(env *runEnv) error {
	outw := bufio.NewWriter(env.stdout)
	_, _ = fmt.Fprintf(outw, "gffio version %s\n", version.Version)
	return flush(outw)
}
