// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package numbers finds numeric substrings and rewrites them to a
// locale-independent canonical decimal form.
package numbers

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/transcheck/internal/textutil"
)

// numRE matches a signed or unsigned numeral, optionally grouped in
// 3-digit clusters separated by period, comma, or (non-breaking) space,
// optionally followed by a comma- or period-marked fraction. RE2 has no
// lookaround, so the "not adjacent to a word character" guard from the
// contract is enforced in code after matching.
var numRE = regexp.MustCompile(`[+-]?(?:[0-9]{1,3}(?:[.,\s\x{00A0}][0-9]{3})+(?:[.,][0-9]+)?|[0-9]+(?:[.,][0-9]+)?)`)

// currencyRE strips a leading currency code or symbol with any
// trailing space.
var currencyRE = regexp.MustCompile(`(?i)(?:USD|EUR|GBP|PKR|AUD|CAD|JPY|CNY|INR|SAR|AED|\$|€|£|¥|₹)\s*`)

var nonNumericRE = regexp.MustCompile(`[^0-9.,]`)

// Extract returns the canonical forms of all numerals in text whose
// spans do not overlap any claimed span (date spans, so day/month/year
// components are not double-counted as plain numbers). The text must
// already be digit-normalized. Duplicates are preserved; callers that
// compare across a segment pair do so by set equality, which collapses
// repeated values — a documented approximation.
func Extract(text string, claimed []textutil.Span) []string {
	var out []string
	for _, loc := range numRE.FindAllStringIndex(text, -1) {
		span := textutil.Span{Start: loc[0], End: loc[1]}
		if wordAdjacent(text, span) {
			continue
		}
		if overlapsAny(span, claimed) {
			continue
		}
		if c := Canonical(text[span.Start:span.End]); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Canonical rewrites a raw numeral to its canonical decimal string:
// currency markers stripped, thousands grouping removed, and the
// rightmost comma or period treated as the decimal point. Already
// canonical strings are fixed points. An input with no digits yields "".
func Canonical(raw string) string {
	s := textutil.NormalizeDigits(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", " ")
	s = currencyRE.ReplaceAllString(s, "")
	s = nonNumericRE.ReplaceAllString(s, "")
	if s == "" {
		return ""
	}

	dec := strings.LastIndexAny(s, ".,")
	if dec == -1 {
		return stripSeparators(s)
	}
	intPart := stripSeparators(s[:dec])
	fracPart := stripSeparators(s[dec+1:])
	return intPart + "." + fracPart
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', ' ':
			return -1
		}
		return r
	}, s)
}

// wordAdjacent reports whether the rune immediately before or after the
// span is a word character, which would mean the numeral is embedded in
// an identifier.
func wordAdjacent(text string, s textutil.Span) bool {
	if s.Start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:s.Start])
		if isWord(r) {
			return true
		}
	}
	if s.End < len(text) {
		r, _ := utf8.DecodeRuneInString(text[s.End:])
		if isWord(r) {
			return true
		}
	}
	return false
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func overlapsAny(s textutil.Span, claimed []textutil.Span) bool {
	for _, c := range claimed {
		if s.Overlaps(c) {
			return true
		}
	}
	return false
}
