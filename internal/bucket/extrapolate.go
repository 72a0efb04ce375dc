package bucket

import (
	"fmt"
	"sort"
	"strconv"
)

// extrapolation describes how new buckets are cut: the dominant style of the
// configuration, its most common width in years, and the first bucket of
// that style, which anchors the grid.
type extrapolation struct {
	kind   Kind
	width  int
	anchor Descriptor
}

// planExtrapolation infers the bucket grid from the configured buckets.
// It returns nil when no positive width can be inferred.
func planExtrapolation(buckets []Descriptor) *extrapolation {
	if len(buckets) == 0 {
		return nil
	}

	kinds := make([]Kind, len(buckets))
	for i, d := range buckets {
		kinds[i] = d.Kind
	}
	kind := mostFrequent(kinds)

	var styled []Descriptor
	anchorIdx := -1
	for i, d := range buckets {
		if d.Kind == kind {
			if anchorIdx < 0 {
				anchorIdx = i
			}
			styled = append(styled, d)
		}
	}

	var widths []int
	if kind.IsSingle() {
		for i := 1; i < len(styled); i++ {
			if w := styled[i].Start - styled[i-1].Start; w > 0 {
				widths = append(widths, w)
			}
		}
		if len(widths) == 0 {
			if w := neighbourSpacing(buckets, anchorIdx); w > 0 {
				widths = append(widths, w)
			}
		}
	} else {
		for _, d := range styled {
			widths = append(widths, *d.End-d.Start+1)
		}
	}
	if len(widths) == 0 {
		return nil
	}

	return &extrapolation{
		kind:   kind,
		width:  mostFrequent(widths),
		anchor: buckets[anchorIdx],
	}
}

// neighbourSpacing is the distance from bucket i to the next configured
// bucket, or to the previous one when i is last.
func neighbourSpacing(buckets []Descriptor, i int) int {
	switch {
	case i+1 < len(buckets):
		return buckets[i+1].Start - buckets[i].Start
	case i > 0:
		return buckets[i].Start - buckets[i-1].Start
	default:
		return 0
	}
}

type frequency[T comparable] struct {
	value T
	count int
	first int
}

// mostFrequent returns the most common value, breaking ties by earliest
// first occurrence.
func mostFrequent[T comparable](values []T) T {
	index := make(map[T]int)
	var candidates []frequency[T]
	for i, v := range values {
		if j, ok := index[v]; ok {
			candidates[j].count++
			continue
		}
		index[v] = len(candidates)
		candidates = append(candidates, frequency[T]{value: v, count: 1, first: i})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return candidates[i].first < candidates[j].first
	})
	return candidates[0].value
}

// bucketFor builds the grid bucket containing year.
func (e *extrapolation) bucketFor(year int) Descriptor {
	start := e.anchor.Start + floorDiv(year-e.anchor.Start, e.width)*e.width
	d := Descriptor{Kind: e.kind, Start: start}

	if e.kind.IsSingle() {
		d.Label = strconv.Itoa(start)
		return d
	}

	end := start + e.width - 1
	d.End = &end
	d.EndDigitWidth = e.anchor.EndDigitWidth
	d.Label = strconv.Itoa(start) + "-" + formatEnd(end, d.EndDigitWidth)
	return d
}

// formatEnd keeps the low-order digits of year, zero padded, for widths
// under four; otherwise the full year is used.
func formatEnd(year, digits int) string {
	if digits <= 0 || digits >= 4 {
		return strconv.Itoa(year)
	}
	return fmt.Sprintf("%0*d", digits, year%pow10(digits))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
