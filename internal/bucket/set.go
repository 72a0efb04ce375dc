package bucket

import (
	"fmt"
	"strings"
)

// Options is the bucket section of the configuration.
type Options struct {
	Year        []string
	Alpha       []string
	AlphaRegex  map[string]string
	Extrapolate bool
}

// Set pairs the year and alpha classifiers built from one configuration.
type Set struct {
	Year  *YearClassifier
	Alpha *AlphaClassifier
}

// NewSet builds both classifiers. A bad label in either list fails the set.
func NewSet(o Options, opts ...Option) (*Set, error) {
	opts = append([]Option{WithExtrapolate(o.Extrapolate), WithAlphaRegex(o.AlphaRegex)}, opts...)

	year, err := NewYearClassifier(o.Year, opts...)
	if err != nil {
		return nil, fmt.Errorf("year buckets: %w", err)
	}
	alpha, err := NewAlphaClassifier(o.Alpha, opts...)
	if err != nil {
		return nil, fmt.Errorf("alpha buckets: %w", err)
	}
	return &Set{Year: year, Alpha: alpha}, nil
}

// Field names accepted by Bucket.
const (
	FieldYear  = "year"
	FieldAlpha = "alpha"
)

// Bucket classifies text the way the %bucket{} template function does.
// With no field, four digits are treated as a year and anything else by its
// initial. Field "year" forces a year lookup; any other field an alpha one.
func (s *Set) Bucket(text, field string) (string, error) {
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" && looksLikeYear(text) {
		field = FieldYear
	}
	if field == FieldYear {
		return s.Year.LookupString(text)
	}
	return s.Alpha.Lookup(text), nil
}

func looksLikeYear(text string) bool {
	if len(text) != 4 {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}
