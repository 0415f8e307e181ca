package gffio

import (
	"compress/gzip"
	"io"
	"log/slog"
)

type config struct {
	backend Backend
	logger  *slog.Logger
	level   int
}

// Option configures Open, Create, NewReader and NewWriter.
type Option func(*config)

// WithBackend picks the text tokenizer. Container encodings ignore it.
func WithBackend(b Backend) Option { return func(c *config) { c.backend = b } }

// WithLogger receives Debug events for stream open and close.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCompressionLevel sets the gzip level used by writers.
func WithCompressionLevel(level int) Option { return func(c *config) { c.level = level } }

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newConfig(opts []Option) config {
	c := config{backend: BackendBytes, logger: discardLogger, level: gzip.DefaultCompression}
	for _, o := range opts {
		o(&c)
	}
	return c
}
