// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"gffio/core/gff3"
)

// Options are shared by every record writer.
type Options struct {
	Header     gff3.Header
	NoHeader   bool
	SourceFile string
}

// StartFunc spins up a writer goroutine. The caller sends records on the
// returned channel, closes it, then waits for the single error value.
type StartFunc func(out io.Writer, opt Options, bufSize int) (chan<- gff3.Record, <-chan error)

// RecordWriters maps format → handler. Register in init() blocks.
var RecordWriters = map[string]StartFunc{}

// RegisterRecord is idempotent last-wins.
func RegisterRecord(format string, fn StartFunc) { RecordWriters[format] = fn }

// Formats lists registered formats in name order.
func Formats() []string {
	out := make([]string, 0, len(RecordWriters))
	for f := range RecordWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// StartRecordWriter dispatches to the registered handler. An unknown format
// drains its input and reports an error.
func StartRecordWriter(out io.Writer, format string, opt Options, bufSize int) (chan<- gff3.Record, <-chan error) {
	fn, ok := RecordWriters[format]
	if ok {
		return fn(out, opt, bufSize)
	}
	in := make(chan gff3.Record, max(bufSize, 1))
	done := make(chan error, 1)
	go func() {
		for range in {
		}
		done <- fmt.Errorf("unknown record format %q (no writer registered)", format)
	}()
	return in, done
}
