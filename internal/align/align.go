// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package align splits documents into sentence-like segments and pairs
// them positionally between source and target.
package align

import (
	"regexp"
	"strings"
)

// boundaryRE matches a sentence terminator (including the CJK full stop
// and the Arabic question mark) followed by whitespace, or a newline run.
var boundaryRE = regexp.MustCompile(`[.!?。؟]\s+|\n+`)

// Split breaks text into ordered sentence-like units. Terminator
// punctuation stays attached to its sentence; empty units are dropped.
// If nothing splits, the whole trimmed text is returned as one unit.
func Split(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var units []string
	rest := trimmed
	for {
		loc := boundaryRE.FindStringIndex(rest)
		if loc == nil {
			break
		}
		// Keep the terminator rune, drop only the trailing whitespace.
		cut := loc[1]
		unit := strings.TrimSpace(rest[:cut])
		if unit != "" {
			units = append(units, unit)
		}
		rest = rest[cut:]
	}
	if u := strings.TrimSpace(rest); u != "" {
		units = append(units, u)
	}

	if len(units) == 0 {
		return []string{trimmed}
	}
	return units
}

// Pair splits both texts and pads the shorter side with empty strings so
// the two slices have equal length. Segment i of the source is assumed
// to correspond to segment i of the target. This positional scheme
// degrades when sentence counts diverge (one long source sentence
// rendered as two target sentences shifts every later pair); that is an
// accepted limitation of the contract, kept behind this function so a
// stronger aligner can replace it without touching the detectors.
func Pair(source, target string) ([]string, []string) {
	src := Split(source)
	tgt := Split(target)

	n := len(src)
	if len(tgt) > n {
		n = len(tgt)
	}
	for len(src) < n {
		src = append(src, "")
	}
	for len(tgt) < n {
		tgt = append(tgt, "")
	}
	return src, tgt
}
