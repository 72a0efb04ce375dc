package main

import (
	_ "embed"
	"fmt"
	"strconv"

	"github.com/Nomadcxx/jellybucket/internal/bucket"
	"github.com/Nomadcxx/jellybucket/internal/ui"
)

//go:embed assets/header.txt
var asciiHeader string

// printHeader displays the ASCII header with version info
func printHeader(version string) {
	fmt.Println(asciiHeader)
	fmt.Printf("Version: %s\n\n", version)
}

// labelOrigin tells configured, generated and pass-through labels apart.
type labelOrigin int

const (
	originConfigured labelOrigin = iota
	originGenerated
	originFallback
)

func yearOrigin(c *bucket.YearClassifier, year int, label string) labelOrigin {
	for _, d := range c.Buckets() {
		if d.Label == label {
			return originConfigured
		}
	}
	for _, g := range c.Generated() {
		if g.Label == label {
			return originGenerated
		}
	}
	if label == strconv.Itoa(year) {
		return originFallback
	}
	return originGenerated
}

func alphaOrigin(c *bucket.AlphaClassifier, label string) labelOrigin {
	for _, d := range c.Buckets() {
		if d.Label == label {
			return originConfigured
		}
	}
	return originFallback
}

func styleLabel(label string, origin labelOrigin) string {
	switch origin {
	case originGenerated:
		return ui.Generated(label)
	case originFallback:
		return ui.Fallback(label)
	default:
		return ui.Label(label)
	}
}

// printLabel prints just the label, or "value → label (origin)" in verbose mode.
func printLabel(value, label string, origin labelOrigin) {
	if !verbose {
		fmt.Println(styleLabel(label, origin))
		return
	}
	names := map[labelOrigin]string{
		originConfigured: "configured",
		originGenerated:  "generated",
		originFallback:   "no bucket",
	}
	fmt.Printf("%s → %s %s\n", value, styleLabel(label, origin), ui.Dim("("+names[origin]+")"))
}
