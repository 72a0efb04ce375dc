// Package bucket classifies years and leading characters into
// user-configured buckets.
//
// Bucket labels are parsed once into descriptors; lookups scan the
// descriptors in configured order and return the label of the first bucket
// that covers the query. Year lookups can optionally synthesize a new bucket
// in the dominant style of the configuration when nothing matches.
package bucket

import "fmt"

// Kind is the syntactic style of a bucket label.
type Kind int

const (
	// SinglePlain is a bare year such as "1950".
	SinglePlain Kind = iota
	// SingleDecadeSuffixed is a year with a trailing 's' such as "1950s".
	SingleDecadeSuffixed
	// RangeExplicitList lists every member: "1950,51,52,53" or "ABCD".
	RangeExplicitList
	// RangeFromTo is a from-to range: "1950-59", "1960-1969" or "A-D".
	RangeFromTo
)

func (k Kind) String() string {
	switch k {
	case SinglePlain:
		return "single"
	case SingleDecadeSuffixed:
		return "decade"
	case RangeExplicitList:
		return "list"
	case RangeFromTo:
		return "range"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsSingle reports whether k denotes an open single-value bucket.
func (k Kind) IsSingle() bool {
	return k == SinglePlain || k == SingleDecadeSuffixed
}

// Descriptor is a parsed year bucket. Descriptors are immutable once parsed.
type Descriptor struct {
	Label string
	Kind  Kind
	Start int
	// End is nil for single kinds; the bound is resolved from the
	// neighbouring bucket (or the current year) at lookup time.
	End *int
	// EndDigitWidth is the number of digits in the textual end token,
	// 2 for "1950-59" and 4 for "1960-1969".
	EndDigitWidth int
}

// Open reports whether the descriptor's end depends on its neighbours.
func (d Descriptor) Open() bool {
	return d.End == nil
}

func (d Descriptor) String() string {
	if d.End == nil {
		return fmt.Sprintf("%s(%d-)", d.Kind, d.Start)
	}
	return fmt.Sprintf("%s(%d-%d)", d.Kind, d.Start, *d.End)
}

// AlphaDescriptor is a parsed alphabetic bucket.
type AlphaDescriptor struct {
	Label string
	Kind  Kind
	Start rune
	End   rune
	// Members holds every character of an explicit list bucket.
	Members map[rune]struct{}
}

// Contains reports whether the upper-cased character ch falls in the bucket.
func (d AlphaDescriptor) Contains(ch rune) bool {
	if d.Kind == RangeFromTo {
		return d.Start <= ch && ch <= d.End
	}
	_, ok := d.Members[ch]
	return ok
}
