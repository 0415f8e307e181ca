package gff3

import (
	"strconv"
	"strings"

	"gffio/core/ranges"
)

const (
	pragmaVersion        = "gff-version"
	pragmaSequenceRegion = "sequence-region"
	pragmaFASTA          = "FASTA"
)

// LineKind classifies a raw text line.
type LineKind int

const (
	LineBlank   LineKind = iota
	LineComment          // "#" but not "##"
	LinePragma           // "##..."
	LineFASTA            // "##FASTA": features end here
	LineFeature
)

// Classify reports the kind of line. Only spaces and a CR count as blank; a
// line holding tabs is a feature line with empty columns.
func Classify(line string) LineKind {
	switch {
	case strings.Trim(line, " \r") == "":
		return LineBlank
	case strings.HasPrefix(line, "##"):
		if directive(line) == pragmaFASTA {
			return LineFASTA
		}
		return LinePragma
	case line[0] == '#':
		return LineComment
	}
	return LineFeature
}

func directive(line string) string {
	f := strings.Fields(line[2:])
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// HeaderParser consumes the leading pragma block of a GFF3 text stream one
// line at a time.
type HeaderParser struct {
	h           Header
	seenVersion bool
}

// Consume feeds one line. It returns consumed=false at the first line that
// belongs to the body; that line is left for the caller.
func (p *HeaderParser) Consume(line string) (consumed bool, err error) {
	switch Classify(line) {
	case LineBlank, LineComment:
		return true, nil
	case LineFeature, LineFASTA:
		if !p.seenVersion {
			return false, newFormat(pragmaVersion, "missing ##gff-version pragma")
		}
		return false, nil
	}
	f := strings.Fields(line[2:])
	name := ""
	if len(f) > 0 {
		name = f[0]
	}
	if !p.seenVersion {
		if name != pragmaVersion || len(f) != 2 {
			return false, newFormat(pragmaVersion, "first pragma must be \"##gff-version <version>\", got "+quote(line))
		}
		p.h.GFFVersion = pragmaVersion + " " + f[1]
		p.seenVersion = true
		return true, nil
	}
	switch name {
	case pragmaVersion:
		return false, newFormat(pragmaVersion, "duplicate ##gff-version pragma")
	case pragmaSequenceRegion:
		r, err := parseSequenceRegion(f[1:])
		if err != nil {
			return false, err
		}
		p.h.SequenceRegions = append(p.h.SequenceRegions, r)
	}
	return true, nil
}

// Finish returns the header once the block has ended (or the input did).
func (p *HeaderParser) Finish() (Header, error) {
	if !p.seenVersion {
		return Header{}, newFormat(pragmaVersion, "missing ##gff-version pragma")
	}
	return p.h, nil
}

func parseSequenceRegion(args []string) (ranges.Range, error) {
	if len(args) != 3 {
		return ranges.Range{}, newFormat(pragmaSequenceRegion, "want \"<seqid> <start> <end>\", got "+strconv.Itoa(len(args))+" fields")
	}
	start1, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return ranges.Range{}, &FormatError{Record: -1, Field: pragmaSequenceRegion, Message: "bad start " + quote(args[1]), Err: err}
	}
	end1, err := strconv.ParseUint(args[2], 10, 64)
	if err != nil {
		return ranges.Range{}, &FormatError{Record: -1, Field: pragmaSequenceRegion, Message: "bad end " + quote(args[2]), Err: err}
	}
	r, err := ranges.FromOneBased(args[0], start1, end1)
	if err != nil {
		return ranges.Range{}, &FormatError{Record: -1, Field: pragmaSequenceRegion, Message: "bad interval", Err: err}
	}
	return r, nil
}

// ParseHeaderLines parses the leading header of lines and returns it with
// the number of lines consumed.
func ParseHeaderLines(lines []string) (Header, int, error) {
	var p HeaderParser
	n := 0
	for _, ln := range lines {
		ok, err := p.Consume(ln)
		if err != nil {
			return Header{}, n, AtLine(err, "", n+1)
		}
		if !ok {
			break
		}
		n++
	}
	h, err := p.Finish()
	return h, n, err
}

// HeaderLines renders h as pragma lines without newlines.
func HeaderLines(h Header) ([]string, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	out := make([]string, 0, 1+len(h.SequenceRegions))
	out = append(out, "##"+h.GFFVersion)
	for _, r := range h.SequenceRegions {
		s, e := r.OneBased()
		out = append(out, "##"+pragmaSequenceRegion+" "+r.ReferenceName+" "+
			strconv.FormatUint(s, 10)+" "+strconv.FormatUint(e, 10))
	}
	return out, nil
}
