// internal/writers/gff3.go
package writers

import (
	"bufio"
	"io"

	"gffio/core/gff3"
)

func init() { RegisterRecord("gff3", StartRecordGFF3Writer) }

// StartRecordGFF3Writer streams records as GFF3 text lines, preceded by the
// header pragmas unless opt.NoHeader is set. Broken pipes end the stream
// quietly.
func StartRecordGFF3Writer(out io.Writer, opt Options, bufSize int) (chan<- gff3.Record, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan gff3.Record, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bufio.NewWriterSize(out, 64<<10)
		err := writeGFF3(bw, in, opt)
		if err == nil {
			err = bw.Flush()
		}
		for range in {
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		done <- err
	}()
	return in, done
}

func writeGFF3(bw *bufio.Writer, in <-chan gff3.Record, opt Options) error {
	if !opt.NoHeader {
		lines, err := gff3.HeaderLines(opt.Header.WithDefaults())
		if err != nil {
			return err
		}
		for _, ln := range lines {
			if _, err := bw.WriteString(ln + "\n"); err != nil {
				return err
			}
		}
	}
	var line []byte
	for rec := range in {
		var err error
		line, err = gff3.AppendRecord(line[:0], rec)
		if err != nil {
			return err
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return nil
}
