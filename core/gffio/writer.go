// core/gffio/writer.go
package gffio

import (
	"bufio"
	"errors"
	"io"
	"log/slog"

	"gffio/core/gff3"
	"gffio/core/recordio"
)

// Writer writes a header and then records in the encoding implied by its
// destination. Records become visible to readers only after Close.
// A Writer is not safe for concurrent use.
type Writer struct {
	name   string
	enc    Encoding
	wc     io.WriteCloser
	bw     *bufio.Writer
	rw     *recordio.Writer
	line   []byte
	n      int
	err    error // sticky I/O failure
	closed bool
	log    *slog.Logger
}

// Create classifies path, creates it, and writes header. An empty header
// version is written as gff3.DefaultVersion.
func Create(path string, header gff3.Header, opts ...Option) (*Writer, error) {
	enc := Classify(path)
	if path == StdioPath {
		enc = Text
	}
	if err := header.WithDefaults().Validate(); err != nil {
		return nil, gff3.AtLine(err, path, 0)
	}
	f, err := createFile(path)
	if err != nil {
		return nil, err
	}
	return NewWriter(f, path, enc, header, opts...)
}

// NewWriter writes encoding enc to dst and takes ownership of it: dst is
// closed on error and by Writer.Close.
func NewWriter(dst io.WriteCloser, name string, enc Encoding, header gff3.Header, opts ...Option) (*Writer, error) {
	cfg := newConfig(opts)
	header = header.WithDefaults()
	if err := header.Validate(); err != nil {
		_ = dst.Close()
		return nil, gff3.AtLine(err, name, 0)
	}
	wc, err := compress(dst, name, enc, cfg.level)
	if err != nil {
		return nil, err
	}
	w := &Writer{name: name, enc: enc, wc: wc, bw: bufio.NewWriterSize(wc, 64<<10), log: cfg.logger}
	if enc.IsContainer() {
		w.rw = recordio.NewWriter(w.bw)
	}
	if err := w.writeHeader(header); err != nil {
		_ = wc.Close()
		w.closed = true
		return nil, err
	}
	w.log.Debug("gff writer opened", "path", name, "encoding", enc.String(),
		"gff_version", header.GFFVersion, "sequence_regions", len(header.SequenceRegions))
	return w, nil
}

func (w *Writer) writeHeader(h gff3.Header) error {
	if w.rw != nil {
		data, err := marshalHeader(h)
		if err != nil {
			return gff3.AtRecord(err, w.name, 0)
		}
		return gff3.NewResource("write", w.name, w.rw.Write(data))
	}
	lines, err := gff3.HeaderLines(h)
	if err != nil {
		return gff3.AtLine(err, w.name, 0)
	}
	for _, ln := range lines {
		if _, err := w.bw.WriteString(ln); err != nil {
			return gff3.NewResource("write", w.name, err)
		}
		if err := w.bw.WriteByte('\n'); err != nil {
			return gff3.NewResource("write", w.name, err)
		}
	}
	return nil
}

// Write appends one record. A record that fails validation is rejected with
// a FormatError and nothing is written; the writer stays usable. I/O
// failures are sticky.
func (w *Writer) Write(rec gff3.Record) error {
	if w.closed {
		return &gff3.StateError{Op: "write", State: "closed"}
	}
	if w.err != nil {
		return w.err
	}
	if w.rw != nil {
		data, err := marshalRecord(rec)
		if err != nil {
			return gff3.AtRecord(err, w.name, w.n)
		}
		if err := w.rw.Write(data); err != nil {
			w.err = gff3.NewResource("write", w.name, err)
			return w.err
		}
		w.n++
		return nil
	}
	line, err := gff3.AppendRecord(w.line[:0], rec)
	if err != nil {
		return gff3.AtRecord(err, w.name, w.n)
	}
	w.line = append(line, '\n')
	if _, err := w.bw.Write(w.line); err != nil {
		w.err = gff3.NewResource("write", w.name, err)
		return w.err
	}
	w.n++
	return nil
}

// Count is the number of records written.
func (w *Writer) Count() int { return w.n }

func (w *Writer) Encoding() Encoding { return w.enc }

// Close flushes and releases the destination exactly once. Later calls
// return nil.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	ferr := w.bw.Flush()
	cerr := w.wc.Close()
	w.log.Debug("gff writer closed", "path", w.name, "records", w.n)
	if ferr != nil {
		return gff3.NewResource("flush", w.name, ferr)
	}
	return gff3.NewResource("close", w.name, cerr)
}

// WriteAll creates path and writes header and records, closing on every path.
func WriteAll(path string, header gff3.Header, records []gff3.Record, opts ...Option) (err error) {
	w, err := Create(path, header, opts...)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, w.Close()) }()
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
