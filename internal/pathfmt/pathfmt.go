// Package pathfmt expands path templates such as
//
//	$albumartist/%bucket{$year}/$album
//
// Fields are substituted with $name or ${name}; functions are called as
// %name{arg,arg}. "$$" and "%%" produce literal characters.
package pathfmt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Nomadcxx/jellybucket/internal/bucket"
)

// Func is a template function. Arguments arrive with fields already
// substituted.
type Func func(args ...string) (string, error)

// Template holds the functions available to %name{} calls.
type Template struct {
	funcs map[string]Func
}

// New creates a Template with the given functions.
func New(funcs map[string]Func) *Template {
	t := &Template{funcs: make(map[string]Func, len(funcs))}
	for name, fn := range funcs {
		t.funcs[name] = fn
	}
	return t
}

// BucketFunc adapts a bucket set to %bucket{text} and %bucket{text,field}.
func BucketFunc(s *bucket.Set) Func {
	return func(args ...string) (string, error) {
		switch len(args) {
		case 1:
			return s.Bucket(args[0], "")
		case 2:
			return s.Bucket(args[0], args[1])
		default:
			return "", fmt.Errorf("bucket: expected 1 or 2 arguments, got %d", len(args))
		}
	}
}

// Expand renders tmpl. Unknown fields expand to the empty string; unknown
// functions and unbalanced braces are errors.
func (t *Template) Expand(tmpl string, fields map[string]string) (string, error) {
	var sb strings.Builder
	i := 0
	for i < len(tmpl) {
		c := tmpl[i]
		switch {
		case c == '$' && i+1 < len(tmpl) && tmpl[i+1] == '$',
			c == '%' && i+1 < len(tmpl) && tmpl[i+1] == '%':
			sb.WriteByte(c)
			i += 2

		case c == '$':
			name, n, err := fieldName(tmpl[i+1:])
			if err != nil {
				return "", fmt.Errorf("at offset %d: %w", i, err)
			}
			if n == 0 {
				sb.WriteByte(c)
				i++
				continue
			}
			sb.WriteString(fields[name])
			i += 1 + n

		case c == '%':
			out, n, err := t.call(tmpl[i+1:], fields)
			if err != nil {
				return "", fmt.Errorf("at offset %d: %w", i, err)
			}
			if n == 0 {
				sb.WriteByte(c)
				i++
				continue
			}
			sb.WriteString(out)
			i += 1 + n

		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), nil
}

// fieldName reads the name after a '$'. n is the number of bytes consumed,
// zero when no name follows.
func fieldName(s string) (name string, n int, err error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", 0, fmt.Errorf("unterminated ${")
		}
		return s[1:end], end + 1, nil
	}
	for n < len(s) && isNameByte(s[n]) {
		n++
	}
	return s[:n], n, nil
}

// call evaluates "name{args}" at the start of s.
func (t *Template) call(s string, fields map[string]string) (string, int, error) {
	nameLen := 0
	for nameLen < len(s) && isNameByte(s[nameLen]) {
		nameLen++
	}
	if nameLen == 0 || nameLen >= len(s) || s[nameLen] != '{' {
		return "", 0, nil
	}
	name := s[:nameLen]

	depth := 0
	end := -1
	for j := nameLen; j < len(s); j++ {
		switch s[j] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			end = j
			break
		}
	}
	if end < 0 {
		return "", 0, fmt.Errorf("unterminated %%%s{", name)
	}

	fn, ok := t.funcs[name]
	if !ok {
		return "", 0, fmt.Errorf("unknown function %%%s", name)
	}

	// Split before substitution so commas inside field values stay put.
	raw := s[nameLen+1 : end]
	parts := []string{raw}
	if k := lastTopLevelComma(raw); k >= 0 {
		parts = []string{raw[:k], strings.TrimSpace(raw[k+1:])}
	}
	args := make([]string, len(parts))
	for j, part := range parts {
		arg, err := t.Expand(part, fields)
		if err != nil {
			return "", 0, err
		}
		args[j] = arg
	}

	out, err := fn(args...)
	if err != nil {
		return "", 0, fmt.Errorf("%%%s: %w", name, err)
	}
	return out, end + 1, nil
}

// lastTopLevelComma finds the last comma outside any nested {}, or -1.
func lastTopLevelComma(s string) int {
	depth := 0
	k := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				k = i
			}
		}
	}
	return k
}

func isNameByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

var yearRegex = regexp.MustCompile(`\b(\d{4})\b`)

// YearOf pulls a four digit year out of tag text such as "1983-05-12" or
// "(1983)". Text without one is returned trimmed.
func YearOf(s string) string {
	s = strings.TrimSpace(s)
	if m := yearRegex.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}
