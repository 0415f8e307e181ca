// core/gffio/stream.go
package gffio

import (
	"compress/gzip"
	"io"
	"os"

	"gffio/core/gff3"
)

// StdioPath reads stdin or writes stdout as plain text.
const StdioPath = "-"

// closers closes each element in order and reports the first error. Order
// matters for writers: the compressor is flushed before the file under it.
type closers []io.Closer

func (cs closers) Close() error {
	var err error
	for _, c := range cs {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type multiReadCloser struct {
	io.Reader
	closers
}

type multiWriteCloser struct {
	io.Writer
	closers
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func openFile(path string) (io.ReadCloser, error) {
	if path == StdioPath {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, gff3.NewResource("open", path, err)
	}
	return fh, nil
}

func createFile(path string) (io.WriteCloser, error) {
	if path == StdioPath {
		return nopWriteCloser{os.Stdout}, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, gff3.NewResource("create", path, err)
	}
	return fh, nil
}

// decompress layers gzip over src for compressed encodings. On failure src
// is closed.
func decompress(src io.ReadCloser, name string, enc Encoding) (io.ReadCloser, error) {
	if !enc.Compressed() {
		return src, nil
	}
	gr, err := gzip.NewReader(src)
	if err != nil {
		_ = src.Close()
		return nil, gff3.NewResource("open gzip", name, err)
	}
	return &multiReadCloser{Reader: gr, closers: closers{gr, src}}, nil
}

// compress is decompress for writers.
func compress(dst io.WriteCloser, name string, enc Encoding, level int) (io.WriteCloser, error) {
	if !enc.Compressed() {
		return dst, nil
	}
	gw, err := gzip.NewWriterLevel(dst, level)
	if err != nil {
		_ = dst.Close()
		return nil, gff3.NewResource("open gzip", name, err)
	}
	return &multiWriteCloser{Writer: gw, closers: closers{gw, dst}}, nil
}
