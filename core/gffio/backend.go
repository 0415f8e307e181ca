// core/gffio/backend.go
package gffio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"gffio/core/gff3"
)

// Backend selects how text encodings are tokenized. Both backends honour the
// same reader contract and must produce identical records.
type Backend int

const (
	// BackendBytes reads lines with bufio.Reader and splits columns in place.
	// Line length is unbounded.
	BackendBytes Backend = iota
	// BackendScanner reads lines with bufio.Scanner and splits with
	// strings.Split via gff3.ParseRecord.
	BackendScanner
)

func (b Backend) String() string {
	switch b {
	case BackendBytes:
		return "bytes"
	case BackendScanner:
		return "scanner"
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend accepts the names printed by String.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(s) {
	case "", "bytes":
		return BackendBytes, nil
	case "scanner":
		return BackendScanner, nil
	}
	return BackendBytes, fmt.Errorf("unknown backend %q (want bytes|scanner)", s)
}

// Backends lists every backend.
func Backends() []Backend { return []Backend{BackendBytes, BackendScanner} }

// lineBackend is the text tokenizer strategy used by textSource.
type lineBackend interface {
	// nextLine returns the next line without its terminator, or io.EOF.
	nextLine() (string, error)
	// parse converts one feature line to a record.
	parse(line string) (gff3.Record, error)
}

func newLineBackend(b Backend, r io.Reader) lineBackend {
	if b == BackendScanner {
		sc := bufio.NewScanner(r)
		const maxLine = 64 * 1024 * 1024 // allow very long attribute columns (64 MiB)
		buf := make([]byte, 64*1024)
		sc.Buffer(buf, maxLine)
		return &scannerBackend{sc: sc}
	}
	return &bytesBackend{br: bufio.NewReaderSize(r, 64*1024)}
}

type bytesBackend struct {
	br  *bufio.Reader
	acc []byte
}

func (b *bytesBackend) nextLine() (string, error) {
	b.acc = b.acc[:0]
	for {
		chunk, err := b.br.ReadSlice('\n')
		b.acc = append(b.acc, chunk...)
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF {
			if len(b.acc) == 0 {
				return "", io.EOF
			}
			break
		}
		if err != nil {
			return "", err
		}
		break
	}
	line := bytes.TrimSuffix(b.acc, []byte{'\n'})
	line = bytes.TrimSuffix(line, []byte{'\r'})
	return string(line), nil
}

func (b *bytesBackend) parse(line string) (gff3.Record, error) {
	var f [gff3.NumFields]string
	n, start := 0, 0
	for i := 0; i < len(line); i++ {
		if line[i] != '\t' {
			continue
		}
		if n == gff3.NumFields-1 {
			// too many columns; let SplitLine build the error
			_, err := gff3.SplitLine(line)
			return gff3.Record{}, err
		}
		f[n] = line[start:i]
		n++
		start = i + 1
	}
	if n != gff3.NumFields-1 {
		_, err := gff3.SplitLine(line)
		return gff3.Record{}, err
	}
	f[n] = line[start:]
	return gff3.RecordFromFields(f)
}

type scannerBackend struct {
	sc *bufio.Scanner
}

func (s *scannerBackend) nextLine() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scannerBackend) parse(line string) (gff3.Record, error) {
	return gff3.ParseRecord(line)
}
