package bucket

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var singleYearRe = regexp.MustCompile(`^(\d+)(s?)$`)

// ParseYear parses a year bucket label. Supported forms, in priority order:
//
//	1950  1950s           single year, open ended
//	1950,51,52,53         explicit list
//	1950-59  1960-1969    from-to range
//
// Short tokens replace the low-order digits of the first year, rolling over
// to the next block when that would go backwards ("1995-05" ends in 2005).
func ParseYear(label string) (Descriptor, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return Descriptor{}, yearError(label, "empty label")
	}

	hasDash := strings.Contains(s, "-")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasDash && hasComma:
		return Descriptor{}, yearError(label, "cannot mix ',' and '-'")
	case hasComma:
		return parseYearList(label, s)
	case hasDash:
		return parseYearRange(label, s)
	default:
		return parseYearSingle(label, s)
	}
}

func parseYearSingle(label, s string) (Descriptor, error) {
	m := singleYearRe.FindStringSubmatch(s)
	if m == nil {
		return Descriptor{}, yearError(label, "expected a year such as 1950 or 1950s")
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return Descriptor{}, yearError(label, "%v", err)
	}

	kind := SinglePlain
	if m[2] == "s" {
		kind = SingleDecadeSuffixed
	}
	return Descriptor{Label: label, Kind: kind, Start: year}, nil
}

func parseYearList(label, s string) (Descriptor, error) {
	tokens := strings.Split(s, ",")
	first := strings.TrimSpace(tokens[0])
	start, err := atoiDigits(first)
	if err != nil {
		return Descriptor{}, yearError(label, "first year %q: %v", first, err)
	}

	// Members may come in any order; the bucket spans the smallest to the
	// largest. Short tokens still resolve against the first year.
	lo, hi := start, start
	var last string
	for _, tok := range tokens[1:] {
		last = strings.TrimSpace(tok)
		year, err := listYear(start, len(first), last)
		if err != nil {
			return Descriptor{}, yearError(label, "%v", err)
		}
		lo = min(lo, year)
		hi = max(hi, year)
	}

	return Descriptor{
		Label:         label,
		Kind:          RangeExplicitList,
		Start:         lo,
		End:           &hi,
		EndDigitWidth: len(last),
	}, nil
}

// listYear resolves a list member. A full-width member is taken literally,
// so it may precede the first year.
func listYear(base, width int, tok string) (int, error) {
	if len(tok) != width {
		return resolveYear(base, width, tok)
	}
	v, err := atoiDigits(tok)
	if err != nil {
		return 0, fmt.Errorf("year %q: %w", tok, err)
	}
	return v, nil
}

func parseYearRange(label, s string) (Descriptor, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Descriptor{}, yearError(label, "expected a single '-' between two years")
	}
	from := strings.TrimSpace(parts[0])
	to := strings.TrimSpace(parts[1])

	start, err := atoiDigits(from)
	if err != nil {
		return Descriptor{}, yearError(label, "start year %q: %v", from, err)
	}
	end, err := resolveYear(start, len(from), to)
	if err != nil {
		return Descriptor{}, yearError(label, "%v", err)
	}

	return Descriptor{
		Label:         label,
		Kind:          RangeFromTo,
		Start:         start,
		End:           &end,
		EndDigitWidth: len(to),
	}, nil
}

// resolveYear turns tok into a full year relative to base, whose textual
// form is width digits long.
func resolveYear(base, width int, tok string) (int, error) {
	v, err := atoiDigits(tok)
	if err != nil {
		return 0, fmt.Errorf("year %q: %w", tok, err)
	}
	if len(tok) > width {
		return 0, fmt.Errorf("year %q is wider than the first year", tok)
	}
	if len(tok) == width {
		if v < base {
			return 0, fmt.Errorf("year %q is before the first year", tok)
		}
		return v, nil
	}

	mod := pow10(len(tok))
	year := base - base%mod + v
	if year < base {
		year += mod
	}
	return year, nil
}

var (
	errEmptyToken = errors.New("empty")
	errNotDigits  = errors.New("not a number")
)

func atoiDigits(s string) (int, error) {
	if s == "" {
		return 0, errEmptyToken
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errNotDigits
		}
	}
	return strconv.Atoi(s)
}

func pow10(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}

// ParseAlpha parses an alphabetic bucket label: either "X-Y" or a run of
// member characters such as "ABCD". Characters are compared upper-cased.
func ParseAlpha(label string) (AlphaDescriptor, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, label)
	runes := []rune(compact)
	if len(runes) == 0 {
		return AlphaDescriptor{}, alphaError(label, "empty label")
	}

	upper := newUpper()
	if len(runes) == 3 && runes[1] == '-' {
		start, end := upperRune(upper, runes[0]), upperRune(upper, runes[2])
		if start > end {
			return AlphaDescriptor{}, alphaError(label, "%q sorts after %q", runes[0], runes[2])
		}
		return AlphaDescriptor{Label: label, Kind: RangeFromTo, Start: start, End: end}, nil
	}

	d := AlphaDescriptor{
		Label:   label,
		Kind:    RangeExplicitList,
		Members: make(map[rune]struct{}, len(runes)),
	}
	for i, r := range runes {
		r = upperRune(upper, r)
		d.Members[r] = struct{}{}
		if i == 0 || r < d.Start {
			d.Start = r
		}
		if i == 0 || r > d.End {
			d.End = r
		}
	}
	return d, nil
}

func newUpper() cases.Caser {
	return cases.Upper(language.Und)
}

// upperRune upper-cases a single character with c. A Caser keeps state and
// must not be shared between goroutines.
func upperRune(c cases.Caser, r rune) rune {
	up := []rune(c.String(string(r)))
	if len(up) == 0 {
		return r
	}
	return up[0]
}
