package gff3

import (
	"math"
	"strconv"
	"strings"

	"gffio/core/ranges"
)

// Column indexes of a feature line.
const (
	FieldSeqid = iota
	FieldSource
	FieldType
	FieldStart
	FieldEnd
	FieldScore
	FieldStrand
	FieldPhase
	FieldAttributes
	NumFields
)

var fieldNames = [NumFields]string{
	"seqid", "source", "type", "start", "end", "score", "strand", "phase", "attributes",
}

// SplitLine splits a feature line into exactly NumFields columns.
func SplitLine(line string) ([NumFields]string, error) {
	var f [NumFields]string
	parts := strings.Split(line, "\t")
	if len(parts) != NumFields {
		return f, newFormat("", "expected "+strconv.Itoa(NumFields)+" tab-separated columns, got "+strconv.Itoa(len(parts)))
	}
	copy(f[:], parts)
	return f, nil
}

// ParseRecord parses one feature line (no trailing newline).
func ParseRecord(line string) (Record, error) {
	f, err := SplitLine(line)
	if err != nil {
		return Record{}, err
	}
	return RecordFromFields(f)
}

// RecordFromFields converts split columns to a Record. Text coordinates are
// 1-based closed and become a 0-based half-open range.
func RecordFromFields(f [NumFields]string) (Record, error) {
	for _, i := range [...]int{FieldSeqid, FieldSource, FieldType} {
		if f[i] == "" {
			return Record{}, newFormat(fieldNames[i], "empty column")
		}
	}
	start1, err := strconv.ParseUint(f[FieldStart], 10, 64)
	if err != nil {
		return Record{}, numErr(FieldStart, f[FieldStart], err)
	}
	end1, err := strconv.ParseUint(f[FieldEnd], 10, 64)
	if err != nil {
		return Record{}, numErr(FieldEnd, f[FieldEnd], err)
	}
	rng, err := ranges.FromOneBased(f[FieldSeqid], start1, end1)
	if err != nil {
		return Record{}, &FormatError{Record: -1, Field: "range", Message: "bad interval", Err: err}
	}
	rec := Record{
		Range:  rng,
		Source: f[FieldSource],
		Type:   f[FieldType],
	}
	if f[FieldScore] != "." {
		v, err := strconv.ParseFloat(f[FieldScore], 64)
		if err != nil {
			return Record{}, numErr(FieldScore, f[FieldScore], err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Record{}, newFormat("score", "score must be finite, got "+quote(f[FieldScore]))
		}
		rec.Score = &v
	}
	if rec.Strand, err = ParseStrand(f[FieldStrand]); err != nil {
		return Record{}, err
	}
	if rec.Phase, err = ParsePhase(f[FieldPhase]); err != nil {
		return Record{}, err
	}
	if rec.Attributes, err = DecodeAttributes(f[FieldAttributes]); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return StrandForward, nil
	case "-":
		return StrandReverse, nil
	case ".":
		return StrandUnknown, nil
	}
	return StrandUnknown, newFormat("strand", "want '+', '-' or '.', got "+quote(s))
}

func ParsePhase(s string) (Phase, error) {
	switch s {
	case ".":
		return NoPhase, nil
	case "0", "1", "2":
		return Phase(s[0] - '0'), nil
	}
	return NoPhase, newFormat("phase", "want 0, 1, 2 or '.', got "+quote(s))
}

func numErr(field int, v string, err error) error {
	return &FormatError{Record: -1, Field: fieldNames[field], Message: "not a number: " + quote(v), Err: err}
}

// FormatRecord serializes r as one feature line without the newline.
func FormatRecord(r Record) (string, error) {
	b, err := AppendRecord(nil, r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AppendRecord validates r and appends its feature line (no newline) to dst.
// Scores use the shortest decimal that parses back to the same float64.
func AppendRecord(dst []byte, r Record) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return dst, err
	}
	start1, end1 := r.Range.OneBased()
	dst = append(dst, r.Range.ReferenceName...)
	dst = append(dst, '\t')
	dst = append(dst, r.Source...)
	dst = append(dst, '\t')
	dst = append(dst, r.Type...)
	dst = append(dst, '\t')
	dst = strconv.AppendUint(dst, start1, 10)
	dst = append(dst, '\t')
	dst = strconv.AppendUint(dst, end1, 10)
	dst = append(dst, '\t')
	if r.Score != nil {
		dst = strconv.AppendFloat(dst, *r.Score, 'g', -1, 64)
	} else {
		dst = append(dst, '.')
	}
	dst = append(dst, '\t')
	dst = append(dst, r.Strand.String()...)
	dst = append(dst, '\t')
	if r.Phase == NoPhase {
		dst = append(dst, '.')
	} else {
		dst = strconv.AppendInt(dst, int64(r.Phase), 10)
	}
	dst = append(dst, '\t')
	dst = append(dst, EncodeAttributes(r.Attributes)...)
	return dst, nil
}
