package gffio

import (
	"io"

	"gffio/core/gff3"
)

// Iterator walks a Reader's records once, in file order. Its state is
// explicit: Position counts records yielded, Exhausted reports a clean end,
// Err reports the failure that stopped it. It cannot be rewound.
//
//	it, _ := r.Iterate()
//	for it.Next() {
//		rec := it.Record()
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator struct {
	r         *Reader
	src       recordSource
	cur       gff3.Record
	err       error
	pos       int
	exhausted bool
}

// Next advances to the next record. It returns false at the end of the
// stream, after an error, or once the reader is closed.
func (it *Iterator) Next() bool {
	if it.r.state == stateClosed {
		if it.err == nil {
			it.err = &gff3.StateError{Op: "iterate", State: stateClosed.String()}
		}
		return false
	}
	if it.exhausted || it.err != nil {
		return false
	}
	rec, err := it.src.next()
	if err == io.EOF {
		it.exhausted = true
		it.r.state = stateExhausted
		return false
	}
	if err != nil {
		it.err = err
		return false
	}
	it.cur = rec
	it.pos++
	return true
}

// Record returns the record read by the last successful Next.
func (it *Iterator) Record() gff3.Record { return it.cur }

func (it *Iterator) Err() error { return it.err }

func (it *Iterator) Position() int { return it.pos }

func (it *Iterator) Exhausted() bool { return it.exhausted }
