// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textutil provides script-agnostic text helpers shared by the
// number and date extractors.
package textutil

import (
	"strings"
	"unicode"
)

// NormalizeDigits replaces every decimal-digit rune from any script
// (Arabic-Indic, Persian, Devanagari, ...) with its ASCII digit value.
// All other runes pass through unchanged. Idempotent: ASCII digits map
// to themselves. Must run before any number or date pattern matching so
// regional digit systems are handled uniformly.
func NormalizeDigits(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Nd, r) {
			b.WriteByte('0' + byte(digitValue(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// digitValue returns the numeric value 0-9 of a decimal-digit rune.
// Every Nd block in Unicode is a contiguous run of ten codepoints
// starting at its zero, so the value is the offset from the block start.
func digitValue(r rune) int {
	for _, r16 := range unicode.Nd.R16 {
		if r >= rune(r16.Lo) && r <= rune(r16.Hi) {
			return int(r-rune(r16.Lo)) % 10
		}
	}
	for _, r32 := range unicode.Nd.R32 {
		if r >= rune(r32.Lo) && r <= rune(r32.Hi) {
			return int(r-rune(r32.Lo)) % 10
		}
	}
	return 0
}

// Span is a half-open [Start, End) byte range within a normalized text.
type Span struct {
	Start int
	End   int
}

// Overlaps reports whether the two spans share any bytes.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Within reports whether s is fully nested inside o.
func (s Span) Within(o Span) bool {
	return s.Start >= o.Start && s.End <= o.End
}
