// core/ranges/range.go
package ranges

import "fmt"

// Range is a half-open interval [Start, End) on a named reference sequence.
// Start is 0-based. Start <= End always holds for values built by Make.
type Range struct {
	ReferenceName string
	Start         uint64
	End           uint64
}

// Make returns the range [start, end) on ref. It fails when start > end.
func Make(ref string, start, end uint64) (Range, error) {
	if start > end {
		return Range{}, fmt.Errorf("range %s: start %d > end %d", ref, start, end)
	}
	return Range{ReferenceName: ref, Start: start, End: end}, nil
}

// MustMake is Make for literals known to be valid.
func MustMake(ref string, start, end uint64) Range {
	r, err := Make(ref, start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// FromOneBased converts a 1-based closed interval [start1, end1] to the
// half-open form. start1 must be >= 1 and at most end1+1.
func FromOneBased(ref string, start1, end1 uint64) (Range, error) {
	if start1 == 0 {
		return Range{}, fmt.Errorf("range %s: 1-based start must be >= 1", ref)
	}
	return Make(ref, start1-1, end1)
}

// OneBased returns the 1-based closed coordinates of r.
func (r Range) OneBased() (start1, end1 uint64) { return r.Start + 1, r.End }

func (r Range) Valid() bool { return r.Start <= r.End }

func (r Range) Len() uint64 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether pos (0-based) lies in r.
func (r Range) Contains(ref string, pos uint64) bool {
	return r.ReferenceName == ref && pos >= r.Start && pos < r.End
}

// Overlaps reports whether r and o share at least one base.
func (r Range) Overlaps(o Range) bool {
	return r.ReferenceName == o.ReferenceName && r.Start < o.End && o.Start < r.End
}

// Less orders by reference name, then start, then end.
func (r Range) Less(o Range) bool {
	if r.ReferenceName != o.ReferenceName {
		return r.ReferenceName < o.ReferenceName
	}
	if r.Start != o.Start {
		return r.Start < o.Start
	}
	return r.End < o.End
}

func (r Range) String() string {
	return fmt.Sprintf("%s:%d-%d", r.ReferenceName, r.Start, r.End)
}
