// Package recordio frames opaque records in a length-prefixed, checksummed
// stream using the TFRecord layout:
//
//	uint64 length          little endian
//	uint32 masked crc32c   of the 8 length bytes
//	[length]byte data
//	uint32 masked crc32c   of data
//
// It knows nothing about what the records contain.
package recordio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// MaxRecordSize bounds a single record; larger length prefixes are treated
// as corruption.
const MaxRecordSize = 1 << 30

var ErrCorrupt = errors.New("recordio: corrupt record")

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

const maskDelta = 0xa282ead8

func maskedCRC(b []byte) uint32 {
	c := crc32.Checksum(b, castagnoli)
	return ((c >> 15) | (c << 17)) + maskDelta
}

// Reader reads framed records.
type Reader struct {
	br   *bufio.Reader
	hdr  [12]byte
	tail [4]byte
	n    int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 64<<10)}
}

// ReadNext returns the next record's payload. It returns io.EOF at a clean
// record boundary and io.ErrUnexpectedEOF when the stream ends mid-record.
func (r *Reader) ReadNext() ([]byte, error) {
	if _, err := io.ReadFull(r.br, r.hdr[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("recordio: record %d header: %w", r.n, err)
	}
	length := binary.LittleEndian.Uint64(r.hdr[:8])
	if maskedCRC(r.hdr[:8]) != binary.LittleEndian.Uint32(r.hdr[8:]) {
		return nil, fmt.Errorf("recordio: record %d: length checksum mismatch: %w", r.n, ErrCorrupt)
	}
	if length > MaxRecordSize {
		return nil, fmt.Errorf("recordio: record %d: length %d exceeds limit: %w", r.n, length, ErrCorrupt)
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r.br, data); err != nil {
		return nil, fmt.Errorf("recordio: record %d data: %w", r.n, eofIsUnexpected(err))
	}
	if _, err := io.ReadFull(r.br, r.tail[:]); err != nil {
		return nil, fmt.Errorf("recordio: record %d checksum: %w", r.n, eofIsUnexpected(err))
	}
	if maskedCRC(data) != binary.LittleEndian.Uint32(r.tail[:]) {
		return nil, fmt.Errorf("recordio: record %d: data checksum mismatch: %w", r.n, ErrCorrupt)
	}
	r.n++
	return data, nil
}

// Count is the number of records read so far.
func (r *Reader) Count() int { return r.n }

func eofIsUnexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Writer appends framed records to w. It does not buffer; wrap w if needed.
type Writer struct {
	w   io.Writer
	buf []byte
	n   int
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Write frames data as one record.
func (w *Writer) Write(data []byte) error {
	if len(data) > MaxRecordSize {
		return fmt.Errorf("recordio: record of %d bytes exceeds limit", len(data))
	}
	need := 12 + len(data) + 4
	if cap(w.buf) < need {
		w.buf = make([]byte, need)
	}
	b := w.buf[:need]
	binary.LittleEndian.PutUint64(b[:8], uint64(len(data)))
	binary.LittleEndian.PutUint32(b[8:12], maskedCRC(b[:8]))
	copy(b[12:], data)
	binary.LittleEndian.PutUint32(b[12+len(data):], maskedCRC(data))
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	w.n++
	return nil
}

// Count is the number of records written so far.
func (w *Writer) Count() int { return w.n }
