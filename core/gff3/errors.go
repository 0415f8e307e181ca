package gff3

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormat marks malformed GFF3 input or a record that cannot be serialized.
	ErrFormat = errors.New("malformed gff3")
	// ErrClosed is returned by operations on a closed reader or writer.
	ErrClosed = errors.New("stream is closed")
	// ErrState marks an operation invoked in the wrong lifecycle state.
	ErrState = errors.New("invalid stream state")
)

// FormatError describes a structural problem with one line or record.
type FormatError struct {
	Path    string // source or destination, if known
	Line    int    // 1-based text line, 0 when not applicable
	Record  int    // 0-based record index, -1 when not applicable
	Field   string // column or pragma name, optional
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("gff3")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	switch {
	case e.Line > 0:
		fmt.Fprintf(&b, ":%d", e.Line)
	case e.Record >= 0:
		fmt.Fprintf(&b, " record %d", e.Record)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " %s", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}

func newFormat(field, msg string) *FormatError {
	return &FormatError{Record: -1, Field: field, Message: msg}
}

// AtLine attaches location context to err when it is a *FormatError and
// returns it; other errors pass through unchanged.
func AtLine(err error, path string, line int) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Path, fe.Line = path, line
	}
	return err
}

// AtRecord is AtLine for record-indexed streams.
func AtRecord(err error, path string, idx int) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Path, fe.Record = path, idx
	}
	return err
}

// StateError reports an operation attempted in a state that forbids it.
type StateError struct {
	Op    string
	State string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("gff3: cannot %s: stream is %s", e.Op, e.State)
}

func (e *StateError) Unwrap() error {
	if e.State == "closed" {
		return ErrClosed
	}
	return ErrState
}

// ResourceError wraps an open or I/O failure from the underlying stream.
// The collaborator's error is kept intact for errors.Is.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// NewResource returns nil when err is nil.
func NewResource(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Op: op, Path: path, Err: err}
}

func IsFormat(err error) bool { return errors.Is(err, ErrFormat) }

func IsState(err error) bool { return errors.Is(err, ErrState) || errors.Is(err, ErrClosed) }

func IsResource(err error) bool {
	var re *ResourceError
	return errors.As(err, &re)
}
