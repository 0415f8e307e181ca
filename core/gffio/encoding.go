// core/gffio/encoding.go
package gffio

import (
	"fmt"
	"strings"
)

// Encoding is the physical layout of a GFF file, chosen from its path.
type Encoding int

const (
	Text Encoding = iota
	GzipText
	Container
	GzipContainer
)

const (
	// ContainerSuffix marks a framed record container.
	ContainerSuffix = ".tfrecord"
	// GzipSuffix marks gzip compression of either layout.
	GzipSuffix = ".gz"
)

// Classify maps a path to its encoding by suffix alone; it never touches the
// file. Anything unrecognised is Text.
func Classify(path string) Encoding {
	base, gz := strings.CutSuffix(path, GzipSuffix)
	switch {
	case strings.HasSuffix(base, ContainerSuffix) && gz:
		return GzipContainer
	case strings.HasSuffix(base, ContainerSuffix):
		return Container
	case gz:
		return GzipText
	}
	return Text
}

func (e Encoding) Compressed() bool { return e == GzipText || e == GzipContainer }

func (e Encoding) IsContainer() bool { return e == Container || e == GzipContainer }

func (e Encoding) String() string {
	switch e {
	case Text:
		return "text"
	case GzipText:
		return "gzip-text"
	case Container:
		return "container"
	case GzipContainer:
		return "gzip-container"
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// Suffix is the conventional filename suffix for e.
func (e Encoding) Suffix() string {
	switch e {
	case GzipText:
		return ".gff" + GzipSuffix
	case Container:
		return ".gff" + ContainerSuffix
	case GzipContainer:
		return ".gff" + ContainerSuffix + GzipSuffix
	}
	return ".gff"
}

// Encodings lists every encoding, in declaration order.
func Encodings() []Encoding { return []Encoding{Text, GzipText, Container, GzipContainer} }
