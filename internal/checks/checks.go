// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package checks runs the rule-based issue detectors over aligned
// segment pairs and produces the run report.
//
// Each run is a pure function of its two segment slices plus the
// optional glossary: detectors hold no cross-run state, read the same
// immutable pair, and append in a fixed evaluation order, so the issue
// list is stable for given inputs.
package checks

import (
	"math"
	"regexp"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/pdiddy/transcheck/internal/dates"
	"github.com/pdiddy/transcheck/internal/glossary"
	"github.com/pdiddy/transcheck/internal/names"
	"github.com/pdiddy/transcheck/internal/numbers"
	"github.com/pdiddy/transcheck/internal/textutil"
	"github.com/pdiddy/transcheck/pkg/types"
)

var (
	extraSpaceRE  = regexp.MustCompile(`[\s\x{00A0}]{2,}`)
	doublePunctRE = regexp.MustCompile(`!!|\?\?|\.\.|,,|::|;;`)
)

// Engine evaluates all detectors per aligned segment pair.
type Engine struct {
	cfg      types.AnalysisConfig
	glossary []types.GlossaryEntry
}

// NewEngine builds an engine with the given thresholds and an optional
// glossary (nil disables the glossary detector).
func NewEngine(cfg types.AnalysisConfig, entries []types.GlossaryEntry) *Engine {
	return &Engine{cfg: cfg, glossary: entries}
}

// Run evaluates every detector over each pair and returns the full
// report: issues ordered by segment index ascending, then detector
// order within the segment, plus the severity roll-up.
func (e *Engine) Run(srcSegments, tgtSegments []string) types.Report {
	var issues []types.Issue
	for i := range srcSegments {
		s, t := srcSegments[i], ""
		if i < len(tgtSegments) {
			t = tgtSegments[i]
		}
		issues = append(issues, e.checkPair(i+1, s, t)...)
	}

	report := types.Report{
		Summary: types.Summarize(issues, len(srcSegments)),
		Issues:  issues,
	}
	if report.Issues == nil {
		report.Issues = []types.Issue{}
	}
	return report
}

// checkPair runs the detectors for one pair in their fixed order.
func (e *Engine) checkPair(idx int, s, t string) []types.Issue {
	var issues []types.Issue
	add := func(typ types.IssueType, sev types.Severity, detail map[string]any) {
		issues = append(issues, types.Issue{
			Type: typ, Severity: sev, Segment: idx, Src: s, Tgt: t, Detail: detail,
		})
	}

	sNums, sDates := extractPair(s, e.cfg.Dates)
	tNums, tDates := extractPair(t, e.cfg.Dates)

	if !sameSet(sNums, tNums) {
		add(types.IssueNumberMismatch, types.SeverityHigh, map[string]any{
			"src": sNums, "tgt": tNums,
		})
	}

	if !sameSet(sDates, tDates) {
		add(types.IssueDateMismatch, types.SeverityHigh, map[string]any{
			"src": sDates, "tgt": tDates,
		})
	}

	if s != "" && t != "" && fuzzy.PartialRatio(s, t) >= e.cfg.Checks.UntranslatedScore {
		add(types.IssueUntranslated, types.SeverityMedium, nil)
	}

	if s != "" {
		ratio := float64(len([]rune(t))) / float64(len([]rune(s)))
		if ratio < e.cfg.Checks.MinLengthRatio || ratio > e.cfg.Checks.MaxLengthRatio {
			add(types.IssueLengthRatio, types.SeverityLow, map[string]any{
				"ratio": math.Round(ratio*100) / 100,
			})
		}
	}

	if t != "" && extraSpaceRE.MatchString(t) {
		add(types.IssueExtraSpaces, types.SeverityLow, nil)
	}
	if t != "" && doublePunctRE.MatchString(t) {
		add(types.IssueDoublePunctuation, types.SeverityLow, nil)
	}

	for _, v := range glossary.Violations(e.glossary, s, t) {
		add(types.IssueGlossaryMissing, types.SeverityMedium, map[string]any{
			"term": v.Term, "preferred": v.Preferred,
		})
	}

	for _, ty := range names.FindTypos(s, t, e.cfg.Checks.NameScore) {
		add(types.IssueNamePossibleTypo, types.SeverityMedium, map[string]any{
			"source_name": ty.SourceName, "target_near": ty.TargetNear, "score": ty.Score,
		})
	}

	return issues
}

// extractPair digit-normalizes one segment once and extracts dates then
// numbers, so numerals inside accepted date spans are claimed and never
// double-counted as plain numbers.
func extractPair(text string, cfg types.DatesConfig) (nums, isoDates []string) {
	norm := textutil.NormalizeDigits(text)
	isoDates, spans := dates.Extract(norm, cfg)
	nums = numbers.Extract(norm, spans)
	return nums, isoDates
}

// sameSet compares two value lists as sets: order and duplicate counts
// are not distinguished. A value whose occurrence count changes while
// the set stays equal is therefore not flagged; documented behavior.
func sameSet(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, v := range a {
		as[v] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, v := range b {
		bs[v] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for v := range as {
		if _, ok := bs[v]; !ok {
			return false
		}
	}
	return true
}
