package bucket

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Nomadcxx/jellybucket/internal/logging"
)

// YearClassifier maps years to configured year buckets.
//
// The configured buckets are read-only after construction and safe for
// concurrent use. Generated buckets are cached under a mutex.
type YearClassifier struct {
	buckets     []Descriptor
	extrapolate bool
	currentYear func() int
	logger      *logging.Logger

	// plan is nil when no bucket width can be inferred.
	plan *extrapolation

	mu        sync.Mutex
	generated map[int]Descriptor
}

// Span is a configured bucket together with its resolved end year.
type Span struct {
	Descriptor
	EffectiveEnd int
}

// NewYearClassifier parses labels in order. Any unparsable label fails the
// whole configuration.
func NewYearClassifier(labels []string, opts ...Option) (*YearClassifier, error) {
	s := newSettings(opts)

	buckets := make([]Descriptor, 0, len(labels))
	for _, label := range labels {
		d, err := ParseYear(label)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, d)
	}

	c := &YearClassifier{
		buckets:     buckets,
		extrapolate: s.extrapolate,
		currentYear: s.currentYear,
		logger:      s.logger,
		generated:   make(map[int]Descriptor),
	}
	if c.extrapolate {
		c.plan = planExtrapolation(buckets)
		if c.plan == nil {
			c.logger.Debug("bucket", "Year extrapolation unavailable, falling back to identity labels",
				logging.F("buckets", len(buckets)))
		}
	}
	return c, nil
}

// Buckets returns the parsed buckets in configured order.
func (c *YearClassifier) Buckets() []Descriptor {
	out := make([]Descriptor, len(c.buckets))
	copy(out, c.buckets)
	return out
}

// Spans returns the configured buckets with their ends resolved against the
// current year.
func (c *YearClassifier) Spans() []Span {
	now := c.currentYear()
	spans := make([]Span, len(c.buckets))
	for i, d := range c.buckets {
		spans[i] = Span{Descriptor: d, EffectiveEnd: c.effectiveEnd(i, now)}
	}
	return spans
}

// Extrapolates reports whether uncovered years get generated buckets.
func (c *YearClassifier) Extrapolates() bool {
	return c.extrapolate && c.plan != nil
}

// effectiveEnd resolves the inclusive end of bucket i. An open bucket ends
// just before the next one; the last open bucket runs to the current year.
func (c *YearClassifier) effectiveEnd(i, now int) int {
	d := c.buckets[i]
	if d.End != nil {
		return *d.End
	}
	if i+1 < len(c.buckets) {
		return max(d.Start, c.buckets[i+1].Start-1)
	}
	return max(d.Start, now)
}

// Lookup returns the label of the first bucket containing year. Without a
// match the year itself is returned, or a generated bucket's label when
// extrapolation is enabled.
func (c *YearClassifier) Lookup(year int) string {
	now := c.currentYear()
	for i, d := range c.buckets {
		if d.Start <= year && year <= c.effectiveEnd(i, now) {
			return d.Label
		}
	}

	if !c.extrapolate || c.plan == nil {
		return strconv.Itoa(year)
	}
	return c.generate(year).Label
}

// LookupString is Lookup for a year taken from tag or template text.
func (c *YearClassifier) LookupString(text string) (string, error) {
	year, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotAYear, text)
	}
	return c.Lookup(year), nil
}

func (c *YearClassifier) generate(year int) Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()

	for start, d := range c.generated {
		if start <= year && year < start+c.plan.width {
			return d
		}
	}

	d := c.plan.bucketFor(year)
	c.generated[d.Start] = d
	c.logger.Debug("bucket", "Generated year bucket",
		logging.F("year", year),
		logging.F("label", d.Label),
		logging.F("style", d.Kind))
	return d
}

// Generated returns the buckets synthesized so far, ordered by start.
func (c *YearClassifier) Generated() []Span {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Span, 0, len(c.generated))
	for start, d := range c.generated {
		out = append(out, Span{Descriptor: d, EffectiveEnd: start + c.plan.width - 1})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
