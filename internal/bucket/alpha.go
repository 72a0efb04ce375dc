package bucket

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/Nomadcxx/jellybucket/internal/logging"
	"golang.org/x/text/cases"
)

// AlphaClassifier maps text to a bucket by its leading character.
// It never extrapolates.
type AlphaClassifier struct {
	buckets []alphaBucket
	logger  *logging.Logger

	mu    sync.Mutex
	upper cases.Caser
}

type alphaBucket struct {
	AlphaDescriptor
	// re, when set, replaces the character match and is tested against
	// the whole text.
	re *regexp.Regexp
}

// NewAlphaClassifier parses labels in order.
func NewAlphaClassifier(labels []string, opts ...Option) (*AlphaClassifier, error) {
	s := newSettings(opts)

	seen := make(map[string]bool, len(labels))
	buckets := make([]alphaBucket, 0, len(labels))
	for _, label := range labels {
		d, err := ParseAlpha(label)
		if err != nil {
			return nil, err
		}
		b := alphaBucket{AlphaDescriptor: d}
		if pattern, ok := s.alphaRegex[label]; ok {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, alphaError(label, "regex %q: %v", pattern, err)
			}
			b.re = re
		}
		seen[label] = true
		buckets = append(buckets, b)
	}

	for label := range s.alphaRegex {
		if !seen[label] {
			s.logger.Warn("bucket", "Ignoring regex for unknown alpha bucket", logging.F("label", label))
		}
	}

	return &AlphaClassifier{buckets: buckets, logger: s.logger, upper: newUpper()}, nil
}

// Buckets returns the parsed buckets in configured order.
func (c *AlphaClassifier) Buckets() []AlphaDescriptor {
	out := make([]AlphaDescriptor, len(c.buckets))
	for i, b := range c.buckets {
		out[i] = b.AlphaDescriptor
	}
	return out
}

// Lookup returns the label of the first bucket matching the upper-cased
// first character of text, or that character when nothing matches.
func (c *AlphaClassifier) Lookup(text string) string {
	text = strings.TrimSpace(text)
	r, _ := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError {
		return ""
	}
	c.mu.Lock()
	ch := upperRune(c.upper, r)
	c.mu.Unlock()

	for _, b := range c.buckets {
		if b.re != nil {
			if b.re.MatchString(text) {
				return b.Label
			}
			continue
		}
		if b.Contains(ch) {
			return b.Label
		}
	}
	return string(ch)
}
