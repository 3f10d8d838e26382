// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dates searches text for date-like substrings across locales
// and resolves each to an ISO YYYY-MM-DD string.
//
// The search is deliberately two-gated to balance recall against
// precision: a candidate is accepted only if a recognized month word
// appears within a fixed window around it, or the candidate itself has
// a strict numeric date shape. Bare numerals never qualify, so amounts
// and percentages are not misread as dates. Candidates without an
// explicit four-digit year are not emitted at all; resolving "12 March"
// against the current date would make runs nondeterministic. A month
// word with a year but no day ("March 2021") is complete enough and
// resolves to the first of the month.
package dates

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/transcheck/internal/textutil"
	"github.com/pdiddy/transcheck/pkg/types"
)

// contextRunes is the window, in runes on each side, searched for a
// month word around a candidate span.
const contextRunes = 15

var (
	// numericRE matches D/M/Y or M/D/Y shapes. Separator equality
	// (12/10-2025 is not a date) is verified in code since RE2 has no
	// backreferences.
	numericRE = regexp.MustCompile(`[0-9]{1,2}([/.-])[0-9]{1,2}([/.-])[0-9]{4}`)

	// numericYMDRE matches Y-M-D shapes.
	numericYMDRE = regexp.MustCompile(`[0-9]{4}([/.-])[0-9]{1,2}([/.-])[0-9]{1,2}`)

	// dayFirstWordRE matches "12 March 2025", "12 de marzo de 2025",
	// "3rd of June 2024", "12 mars 2025".
	dayFirstWordRE = regexp.MustCompile(`(?i)([0-9]{1,2})(?:st|nd|rd|th)?(?:\s+(?:de|of))?\s+(\p{L}+)\.?,?(?:\s+de)?\s+([0-9]{4})`)

	// monthFirstWordRE matches "March 12, 2025" and "March 12 2025".
	monthFirstWordRE = regexp.MustCompile(`(?i)(\p{L}+)\.?\s+([0-9]{1,2})(?:st|nd|rd|th)?,?\s+([0-9]{4})`)

	// monthYearRE matches dayless phrases like "March 2021" and
	// "marzo de 2021"; the day resolves to the first of the month. A
	// full date containing the same words produces an enclosing span,
	// so the dayless reading loses to it during nesting dedup.
	monthYearRE = regexp.MustCompile(`(?i)(\p{L}+)\.?,?(?:\s+(?:de|of))?\s+([0-9]{4})`)

	wordRE = regexp.MustCompile(`\p{L}+`)
)

// candidate is a date-like span awaiting the acceptance gates.
type candidate struct {
	span  textutil.Span
	raw   string
	year  int
	month int
	day   int
}

// Extract searches digit-normalized text for dates and returns the ISO
// form of each accepted candidate together with the spans they claim.
// Spans fully nested inside an already accepted span are dropped, and
// candidates that fail calendar validation (Feb 30) are skipped rather
// than aborting the scan.
func Extract(text string, cfg types.DatesConfig) ([]string, []textutil.Span) {
	locales := cfg.Locales
	if len(locales) == 0 {
		locales = types.DefaultDatesConfig().Locales
	}

	cands := collect(text, cfg.Order, locales)

	// Left-to-right, longer span first on ties so a nested shorter
	// reading of the same text loses to the enclosing one.
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].span.Start != cands[j].span.Start {
			return cands[i].span.Start < cands[j].span.Start
		}
		return cands[i].span.End > cands[j].span.End
	})

	var (
		isos  []string
		spans []textutil.Span
	)
	for _, c := range cands {
		if strings.ContainsRune(c.raw, '%') || followedByPercent(text, c.span) {
			continue
		}
		if !monthWordNear(text, c.span, locales) && !strictNumericShape(c.raw) {
			continue
		}
		if nestedInAny(c.span, spans) {
			continue
		}
		if !validDate(c.year, c.month, c.day) {
			continue
		}
		isos = append(isos, fmt.Sprintf("%04d-%02d-%02d", c.year, c.month, c.day))
		spans = append(spans, c.span)
	}
	return isos, spans
}

// collect gathers raw candidates from every pattern family.
func collect(text string, order types.DateOrder, locales []string) []candidate {
	var cands []candidate

	for _, m := range numericRE.FindAllStringSubmatchIndex(text, -1) {
		raw := text[m[0]:m[1]]
		if text[m[2]:m[3]] != text[m[4]:m[5]] {
			continue
		}
		parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '/' || r == '.' || r == '-' })
		a, b, y := atoi(parts[0]), atoi(parts[1]), atoi(parts[2])
		day, month := disambiguate(a, b, order)
		cands = append(cands, candidate{
			span: textutil.Span{Start: m[0], End: m[1]}, raw: raw,
			year: y, month: month, day: day,
		})
	}

	for _, m := range numericYMDRE.FindAllStringSubmatchIndex(text, -1) {
		raw := text[m[0]:m[1]]
		if text[m[2]:m[3]] != text[m[4]:m[5]] {
			continue
		}
		parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '/' || r == '.' || r == '-' })
		cands = append(cands, candidate{
			span: textutil.Span{Start: m[0], End: m[1]}, raw: raw,
			year: atoi(parts[0]), month: atoi(parts[1]), day: atoi(parts[2]),
		})
	}

	for _, m := range dayFirstWordRE.FindAllStringSubmatchIndex(text, -1) {
		month := monthNumber(strings.ToLower(text[m[4]:m[5]]), locales)
		if month == 0 {
			continue
		}
		cands = append(cands, candidate{
			span: textutil.Span{Start: m[0], End: m[1]}, raw: text[m[0]:m[1]],
			year: atoi(text[m[6]:m[7]]), month: month, day: atoi(text[m[2]:m[3]]),
		})
	}

	for _, m := range monthFirstWordRE.FindAllStringSubmatchIndex(text, -1) {
		month := monthNumber(strings.ToLower(text[m[2]:m[3]]), locales)
		if month == 0 {
			continue
		}
		cands = append(cands, candidate{
			span: textutil.Span{Start: m[0], End: m[1]}, raw: text[m[0]:m[1]],
			year: atoi(text[m[6]:m[7]]), month: month, day: atoi(text[m[4]:m[5]]),
		})
	}

	for _, m := range monthYearRE.FindAllStringSubmatchIndex(text, -1) {
		month := monthNumber(strings.ToLower(text[m[2]:m[3]]), locales)
		if month == 0 {
			continue
		}
		cands = append(cands, candidate{
			span: textutil.Span{Start: m[0], End: m[1]}, raw: text[m[0]:m[1]],
			year: atoi(text[m[4]:m[5]]), month: month, day: 1,
		})
	}

	return cands
}

// disambiguate resolves which of the two leading numeric components is
// the day. A component greater than 12 forces the reading regardless of
// the configured order.
func disambiguate(a, b int, order types.DateOrder) (day, month int) {
	switch {
	case a > 12 && b <= 12:
		return a, b
	case b > 12 && a <= 12:
		return b, a
	case order == types.OrderMonthFirst:
		return b, a
	default:
		return a, b
	}
}

// strictNumericShape reports whether raw on its own is a clean numeric
// date, the second acceptance gate for candidates with no month word in
// reach.
func strictNumericShape(raw string) bool {
	if m := numericRE.FindStringSubmatchIndex(raw); m != nil && m[0] == 0 && m[1] == len(raw) {
		return raw[m[2]:m[3]] == raw[m[4]:m[5]]
	}
	if m := numericYMDRE.FindStringSubmatchIndex(raw); m != nil && m[0] == 0 && m[1] == len(raw) {
		return raw[m[2]:m[3]] == raw[m[4]:m[5]]
	}
	return false
}

// monthWordNear scans a window of contextRunes runes on each side of the
// span for a word present in the enabled month tables.
func monthWordNear(text string, s textutil.Span, locales []string) bool {
	left := s.Start
	for i := 0; i < contextRunes && left > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:left])
		left -= size
	}
	right := s.End
	for i := 0; i < contextRunes && right < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[right:])
		right += size
	}
	for _, w := range wordRE.FindAllString(text[left:right], -1) {
		if monthNumber(strings.ToLower(w), locales) != 0 {
			return true
		}
	}
	return false
}

// followedByPercent guards against percentage artifacts: "19.6%" must
// not survive as a date even if a pattern ever matched into it.
func followedByPercent(text string, s textutil.Span) bool {
	return s.End < len(text) && text[s.End] == '%'
}

func nestedInAny(s textutil.Span, accepted []textutil.Span) bool {
	for _, a := range accepted {
		if s.Within(a) {
			return true
		}
	}
	return false
}

// validDate rejects calendar-impossible component combinations by
// round-tripping through time.Date, which normalizes overflow (Feb 30
// becomes Mar 1 or 2 and no longer matches its inputs).
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
