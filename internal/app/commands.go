// internal/app/commands.go
package app

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gffio/core/gff3"
	"gffio/core/gffio"
	"gffio/internal/cliutil"
	"gffio/internal/digest"
	"gffio/internal/jsonlutil"
	"gffio/internal/logging"
	"gffio/internal/writers"
	"gffio/pkg/api"
)

type ViewCmd struct {
	Path      string `arg:"" help:"GFF file, or - for text on stdin."`
	Format    string `name:"format" short:"f" enum:"${formats}" default:"gff3" help:"Output format (${enum})."`
	Reference string `name:"reference" short:"r" help:"Only records on this reference sequence."`
	Type      string `name:"type" short:"t" help:"Only records of this feature type."`
	NoHeader  bool   `name:"no-header" help:"Omit header pragmas from gff3 output."`
}

func (c *ViewCmd) Run(env *runEnv) error {
	r, err := openLogged(env, c.Path)
	if err != nil {
		return rejected(c.Path, err)
	}
	defer func() { _ = r.Close() }()
	h, err := r.Header()
	if err != nil {
		return err
	}
	in, done := writers.StartRecordWriter(env.stdout, c.Format,
		writers.Options{Header: h, NoHeader: c.NoHeader, SourceFile: c.Path}, 64)

	var rerr error
	n := 0
	for rec, err := range r.All() {
		if err != nil {
			rerr = err
			break
		}
		if err := env.ctx.Err(); err != nil {
			rerr = err
			break
		}
		if c.Reference != "" && rec.Range.ReferenceName != c.Reference {
			continue
		}
		if c.Type != "" && rec.Type != c.Type {
			continue
		}
		in <- rec
		n++
	}
	close(in)
	werr := <-done
	if rerr != nil {
		return rejected(c.Path, rerr)
	}
	if werr != nil {
		return outputError{werr}
	}
	logging.StreamClosed("view", c.Path, n, "format", c.Format)
	return nil
}

type ConvertCmd struct {
	In               string `arg:"" help:"Input GFF file, or - for text on stdin."`
	Out              string `arg:"" help:"Output path; its suffix picks the encoding. - writes text to stdout."`
	CompressionLevel int    `name:"compression-level" default:"-1" env:"GFFIO_COMPRESSION_LEVEL" help:"gzip level for .gz outputs (-1 default, 0-9)."`
}

func (c *ConvertCmd) Run(env *runEnv) (err error) {
	r, err := openLogged(env, c.In)
	if err != nil {
		return rejected(c.In, err)
	}
	defer func() { _ = r.Close() }()
	h, err := r.Header()
	if err != nil {
		return err
	}
	opts := append(append([]gffio.Option{}, env.opts...), gffio.WithCompressionLevel(c.CompressionLevel))
	var w *gffio.Writer
	if c.Out == gffio.StdioPath {
		w, err = gffio.NewWriter(nopWriteCloser{env.stdout}, c.Out, gffio.Text, h, opts...)
	} else {
		w, err = gffio.Create(c.Out, h, opts...)
	}
	if err != nil {
		return err
	}
	logging.StreamOpened("write", c.Out, w.Encoding().String())
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = outputError{cerr}
		}
	}()

	for rec, rerr := range r.All() {
		if rerr != nil {
			return rejected(c.In, rerr)
		}
		if cerr := env.ctx.Err(); cerr != nil {
			return cerr
		}
		if werr := w.Write(rec); werr != nil {
			if gff3.IsFormat(werr) {
				return werr
			}
			return outputError{werr}
		}
	}
	logging.StreamClosed("convert", c.Out, w.Count(), "from", c.In)
	return nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

type DigestCmd struct {
	Paths []string `arg:"" help:"GFF files or globs."`
}

func (c *DigestCmd) Run(env *runEnv) error {
	paths, err := cliutil.ExpandPositionals(c.Paths)
	if err != nil {
		return usageError{err}
	}
	outw := bufio.NewWriter(env.stdout)
	for _, p := range paths {
		if err := env.ctx.Err(); err != nil {
			return err
		}
		res, err := digest.File(p, env.opts...)
		if err != nil {
			_ = flush(outw)
			return rejected(p, err)
		}
		_, _ = fmt.Fprintf(outw, "%s  %s\n", res.BLAKE3, p)
		logging.Debug("digest", "path", p, "records", res.Records, "encoding", res.Encoding)
	}
	return flush(outw)
}

type StatCmd struct {
	Paths []string `arg:"" help:"GFF files or globs."`
	JSON  bool     `name:"json" help:"Emit one JSON line per file."`
}

func (c *StatCmd) Run(env *runEnv) error {
	paths, err := cliutil.ExpandPositionals(c.Paths)
	if err != nil {
		return usageError{err}
	}
	stats := make([]api.StatV1, 0, len(paths))
	for _, p := range paths {
		if err := env.ctx.Err(); err != nil {
			return err
		}
		st, err := statFile(env, p)
		if err != nil {
			return rejected(p, err)
		}
		stats = append(stats, st)
	}
	if c.JSON {
		in, done := jsonlutil.Start[api.StatV1](env.stdout, len(stats),
			func(enc *json.Encoder, st api.StatV1) error { return enc.Encode(st) },
			writers.IsBrokenPipe)
		for _, st := range stats {
			in <- st
		}
		close(in)
		if err := <-done; err != nil {
			return outputError{err}
		}
		return nil
	}
	outw := bufio.NewWriter(env.stdout)
	_, _ = fmt.Fprintln(outw, "path\tencoding\tgff_version\tsequence_regions\trecords\treferences\ttypes")
	for _, st := range stats {
		_, _ = fmt.Fprintf(outw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			st.Path, st.Encoding, st.GFFVersion, st.SequenceRegions, st.Records, len(st.References), len(st.Types))
	}
	return flush(outw)
}

func statFile(env *runEnv, path string) (st api.StatV1, err error) {
	r, err := openLogged(env, path)
	if err != nil {
		return st, err
	}
	defer func() { err = errors.Join(err, r.Close()) }()
	h, err := r.Header()
	if err != nil {
		return st, err
	}
	st = api.StatV1{
		Path:            path,
		Encoding:        r.Encoding().String(),
		GFFVersion:      h.GFFVersion,
		SequenceRegions: len(h.SequenceRegions),
		References:      map[string]int{},
		Types:           map[string]int{},
	}
	for rec, err := range r.All() {
		if err != nil {
			return st, err
		}
		st.Records++
		st.References[rec.Range.ReferenceName]++
		st.Types[rec.Type]++
	}
	return st, nil
}

func openLogged(env *runEnv, path string) (*gffio.Reader, error) {
	r, err := gffio.Open(path, env.opts...)
	if err != nil {
		return nil, err
	}
	logging.StreamOpened("read", path, r.Encoding().String(), "backend", r.Backend().String())
	return r, nil
}

// rejected logs content failures before handing err back.
func rejected(path string, err error) error {
	if gff3.IsFormat(err) {
		logging.RecordRejected(path, err)
	}
	return err
}
