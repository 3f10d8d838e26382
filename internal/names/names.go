// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package names mines capitalization-pattern name spans from a segment
// pair and fuzzy-matches them to flag likely transliteration or typo
// drift. It is a surface heuristic, not a named-entity recognizer: on
// scripts without case distinction it finds nothing, and an ordinary
// Title-Case Phrase can qualify. Documented limitation.
package names

import (
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

var (
	tokenRE   = regexp.MustCompile(`\p{L}[\p{L}\-']*`)
	titleRE   = regexp.MustCompile(`^\p{Lu}\p{Ll}+$`)
	allCapsRE = regexp.MustCompile(`^\p{Lu}{2,}$`)
)

// Typo is one likely name drift: a source name with its closest target
// candidate and the 0-100 similarity score between them.
type Typo struct {
	SourceName string
	TargetNear string
	Score      int
}

// Candidates returns the name candidates in text: maximal runs of two
// or more consecutive title-case tokens, with all-caps tokens (acronyms)
// pruned, kept only if at least two tokens survive, joined by single
// spaces.
func Candidates(text string) []string {
	if text == "" {
		return nil
	}

	var (
		groups [][]string
		cur    []string
	)
	for _, tok := range tokenRE.FindAllString(text, -1) {
		// All-caps tokens extend a run (so "Juan PEREZ Garcia" stays one
		// span) but are pruned below before the span can qualify.
		if titleRE.MatchString(tok) || allCapsRE.MatchString(tok) {
			cur = append(cur, tok)
			continue
		}
		if len(cur) >= 2 {
			groups = append(groups, cur)
		}
		cur = nil
	}
	if len(cur) >= 2 {
		groups = append(groups, cur)
	}

	var out []string
	for _, grp := range groups {
		kept := grp[:0:0]
		for _, tok := range grp {
			if !allCapsRE.MatchString(tok) {
				kept = append(kept, tok)
			}
		}
		if len(kept) >= 2 {
			out = append(out, strings.Join(kept, " "))
		}
	}
	return out
}

// FindTypos compares source name candidates against the target. A source
// name present verbatim anywhere in the target text is fine; otherwise
// the best-scoring target candidate is found and reported when the score
// is at least minScore. Ties keep the first-encountered target
// candidate; results stay in source order.
func FindTypos(source, target string, minScore int) []Typo {
	srcNames := Candidates(source)
	if len(srcNames) == 0 {
		return nil
	}
	tgtNames := Candidates(target)

	var out []Typo
	for _, sn := range srcNames {
		if strings.Contains(target, sn) {
			continue
		}
		best, bestScore := "", 0
		for _, tn := range tgtNames {
			if sc := fuzzy.Ratio(sn, tn); sc > bestScore {
				best, bestScore = tn, sc
			}
		}
		if bestScore >= minScore {
			out = append(out, Typo{SourceName: sn, TargetNear: best, Score: bestScore})
		}
	}
	return out
}
