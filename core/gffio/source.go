// core/gffio/source.go
package gffio

import (
	"errors"
	"io"

	"gffio/core/gff3"
	"gffio/core/recordio"
)

// recordSource produces body records in file order and io.EOF at the end.
type recordSource interface {
	next() (gff3.Record, error)
}

// textSource walks the body of a text stream. The header has already been
// consumed; pending holds the first body line if the header parser saw it.
type textSource struct {
	be      lineBackend
	name    string
	line    int
	pending string
	hasPend bool
	done    bool
}

// readHeader consumes the pragma block and leaves the first body line pending.
func (s *textSource) readHeader() (gff3.Header, error) {
	var p gff3.HeaderParser
	for {
		ln, err := s.be.nextLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return gff3.Header{}, gff3.NewResource("read", s.name, err)
		}
		s.line++
		ok, err := p.Consume(ln)
		if err != nil {
			return gff3.Header{}, gff3.AtLine(err, s.name, s.line)
		}
		if !ok {
			s.pending, s.hasPend = ln, true
			break
		}
	}
	h, err := p.Finish()
	if err != nil {
		return gff3.Header{}, gff3.AtLine(err, s.name, s.line)
	}
	return h, nil
}

func (s *textSource) next() (gff3.Record, error) {
	for !s.done {
		var ln string
		if s.hasPend {
			ln, s.hasPend = s.pending, false
		} else {
			var err error
			ln, err = s.be.nextLine()
			if err == io.EOF {
				s.done = true
				break
			}
			if err != nil {
				return gff3.Record{}, gff3.NewResource("read", s.name, err)
			}
			s.line++
		}
		switch gff3.Classify(ln) {
		case gff3.LineBlank, gff3.LineComment, gff3.LinePragma:
			continue
		case gff3.LineFASTA:
			s.done = true
			return gff3.Record{}, io.EOF
		}
		rec, err := s.be.parse(ln)
		if err != nil {
			return gff3.Record{}, gff3.AtLine(err, s.name, s.line)
		}
		return rec, nil
	}
	return gff3.Record{}, io.EOF
}

// containerSource decodes framed BSON documents.
type containerSource struct {
	rr   *recordio.Reader
	name string
	idx  int
}

// frameErr maps framing failures: damaged frames are malformed content,
// anything else comes from the byte stream.
func (s *containerSource) frameErr(err error) error {
	if errors.Is(err, recordio.ErrCorrupt) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &gff3.FormatError{Path: s.name, Record: s.idx, Message: "damaged container frame", Err: err}
	}
	return gff3.NewResource("read", s.name, err)
}

func (s *containerSource) readHeader() (gff3.Header, error) {
	data, err := s.rr.ReadNext()
	if err == io.EOF {
		return gff3.Header{}, &gff3.FormatError{Path: s.name, Record: 0, Message: "empty container: missing header record"}
	}
	if err != nil {
		return gff3.Header{}, s.frameErr(err)
	}
	h, err := unmarshalHeader(data)
	if err != nil {
		return gff3.Header{}, gff3.AtRecord(err, s.name, 0)
	}
	return h, nil
}

func (s *containerSource) next() (gff3.Record, error) {
	data, err := s.rr.ReadNext()
	if err == io.EOF {
		return gff3.Record{}, io.EOF
	}
	if err != nil {
		return gff3.Record{}, s.frameErr(err)
	}
	rec, err := unmarshalRecord(data)
	if err != nil {
		return gff3.Record{}, gff3.AtRecord(err, s.name, s.idx)
	}
	s.idx++
	return rec, nil
}
