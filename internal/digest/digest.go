// internal/digest/digest.go
package digest

import (
	"encoding/hex"
	"errors"

	"github.com/zeebo/blake3"

	"gffio/core/gff3"
	"gffio/core/gffio"
)

// Result is the content digest of one GFF stream.
type Result struct {
	Path     string
	Encoding string
	Records  int
	BLAKE3   string
}

// Reader hashes the canonical text rendering of r's header and remaining
// records. Two streams with equal headers and records hash equal regardless
// of encoding or original formatting.
func Reader(r *gffio.Reader) (string, int, error) {
	h, err := r.Header()
	if err != nil {
		return "", 0, err
	}
	lines, err := gff3.HeaderLines(h)
	if err != nil {
		return "", 0, err
	}
	hasher := blake3.New()
	for _, ln := range lines {
		_, _ = hasher.Write([]byte(ln + "\n"))
	}
	var buf []byte
	n := 0
	for rec, err := range r.All() {
		if err != nil {
			return "", n, err
		}
		buf, err = gff3.AppendRecord(buf[:0], rec)
		if err != nil {
			return "", n, err
		}
		buf = append(buf, '\n')
		_, _ = hasher.Write(buf)
		n++
	}
	return hex.EncodeToString(hasher.Sum(nil)), n, nil
}

// File opens path and digests it.
func File(path string, opts ...gffio.Option) (res Result, err error) {
	r, err := gffio.Open(path, opts...)
	if err != nil {
		return Result{}, err
	}
	defer func() { err = errors.Join(err, r.Close()) }()
	sum, n, err := Reader(r)
	if err != nil {
		return Result{}, err
	}
	return Result{Path: path, Encoding: r.Encoding().String(), Records: n, BLAKE3: sum}, nil
}
