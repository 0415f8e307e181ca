// core/gffio/reader.go
package gffio

import (
	"io"
	"iter"
	"log/slog"

	"gffio/core/gff3"
	"gffio/core/recordio"
)

type readerState int

const (
	stateUnopened readerState = iota
	stateOpen
	stateExhausted
	stateClosed
)

func (s readerState) String() string {
	switch s {
	case stateOpen:
		return "open"
	case stateExhausted:
		return "exhausted"
	case stateClosed:
		return "closed"
	}
	return "unopened"
}

// Reader streams a GFF header and its records from any encoding. It owns the
// underlying stream until Close. A Reader is not safe for concurrent use.
type Reader struct {
	name    string
	enc     Encoding
	backend Backend
	rc      io.ReadCloser
	header  gff3.Header
	it      *Iterator
	state   readerState
	log     *slog.Logger
}

// Open classifies path, opens it, and parses the header eagerly.
func Open(path string, opts ...Option) (*Reader, error) {
	enc := Classify(path)
	if path == StdioPath {
		enc = Text
	}
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	return NewReader(f, path, enc, opts...)
}

// NewReader reads encoding enc from src, which it takes ownership of: src is
// closed on error and by Reader.Close. name labels errors and logs.
func NewReader(src io.ReadCloser, name string, enc Encoding, opts ...Option) (*Reader, error) {
	cfg := newConfig(opts)
	rc, err := decompress(src, name, enc)
	if err != nil {
		return nil, err
	}
	r := &Reader{name: name, enc: enc, backend: cfg.backend, rc: rc, log: cfg.logger}

	var body recordSource
	if enc.IsContainer() {
		cs := &containerSource{rr: recordio.NewReader(rc), name: name}
		r.header, err = cs.readHeader()
		body = cs
	} else {
		ts := &textSource{be: newLineBackend(cfg.backend, rc), name: name}
		r.header, err = ts.readHeader()
		body = ts
	}
	if err != nil {
		_ = rc.Close()
		return nil, err
	}
	r.it = &Iterator{r: r, src: body}
	r.state = stateOpen
	r.log.Debug("gff reader opened", "path", name, "encoding", enc.String(), "backend", cfg.backend.String(),
		"gff_version", r.header.GFFVersion, "sequence_regions", len(r.header.SequenceRegions))
	return r, nil
}

func (r *Reader) check(op string) error {
	if r.state == stateUnopened || r.state == stateClosed {
		return &gff3.StateError{Op: op, State: r.state.String()}
	}
	return nil
}

// Header returns the header parsed at open.
func (r *Reader) Header() (gff3.Header, error) {
	if err := r.check("read header"); err != nil {
		return gff3.Header{}, err
	}
	return r.header, nil
}

// Iterate returns the reader's single iterator. Records already consumed are
// not replayed; reopen the path for a second pass.
func (r *Reader) Iterate() (*Iterator, error) {
	if err := r.check("iterate"); err != nil {
		return nil, err
	}
	return r.it, nil
}

// All adapts Iterate for range-over-func. Iteration stops after the first
// error, which is yielded with a zero record.
func (r *Reader) All() iter.Seq2[gff3.Record, error] {
	return func(yield func(gff3.Record, error) bool) {
		it, err := r.Iterate()
		if err != nil {
			yield(gff3.Record{}, err)
			return
		}
		for it.Next() {
			if !yield(it.Record(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(gff3.Record{}, err)
		}
	}
}

func (r *Reader) Encoding() Encoding { return r.enc }

func (r *Reader) Backend() Backend { return r.backend }

// State reports "unopened", "open", "exhausted" or "closed".
func (r *Reader) State() string { return r.state.String() }

// Close releases the stream. It is safe mid-iteration and idempotent.
func (r *Reader) Close() error {
	if r.state == stateClosed || r.state == stateUnopened {
		return nil
	}
	r.state = stateClosed
	err := r.rc.Close()
	r.log.Debug("gff reader closed", "path", r.name, "records", r.it.pos)
	return gff3.NewResource("close", r.name, err)
}

// ReadAll opens path and returns its header and every record.
func ReadAll(path string, opts ...Option) (gff3.Header, []gff3.Record, error) {
	r, err := Open(path, opts...)
	if err != nil {
		return gff3.Header{}, nil, err
	}
	defer func() { _ = r.Close() }()
	var recs []gff3.Record
	for rec, err := range r.All() {
		if err != nil {
			return gff3.Header{}, nil, err
		}
		recs = append(recs, rec)
	}
	return r.header, recs, nil
}
