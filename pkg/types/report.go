// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Severity is the ordinal priority of an issue.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// IssueType identifies the detector that produced an issue. Remote-model
// issue types carry an "llm_" prefix to distinguish provenance.
type IssueType string

const (
	IssueNumberMismatch    IssueType = "number_mismatch"
	IssueDateMismatch      IssueType = "date_mismatch"
	IssueUntranslated      IssueType = "possibly_untranslated"
	IssueLengthRatio       IssueType = "length_ratio"
	IssueExtraSpaces       IssueType = "orthography_extra_spaces"
	IssueDoublePunctuation IssueType = "orthography_double_punctuation"
	IssueGlossaryMissing   IssueType = "glossary_preferred_missing"
	IssueNamePossibleTypo  IssueType = "name_possible_typo"
)

// Issue is one detected problem on an aligned segment pair. Issues are
// immutable once produced and ordered by segment index, then by detector
// order within the segment.
type Issue struct {
	// Type names the detector that fired.
	Type IssueType `json:"type" yaml:"type"`

	// Severity is high, medium, or low.
	Severity Severity `json:"severity" yaml:"severity"`

	// Segment is the 1-based index of the segment pair.
	Segment int `json:"segment" yaml:"segment"`

	// Src is the source-side text of the pair.
	Src string `json:"src" yaml:"src"`

	// Tgt is the target-side text of the pair.
	Tgt string `json:"tgt" yaml:"tgt"`

	// Detail carries detector-specific evidence (e.g. the two number sets
	// for a number_mismatch). Nil when the detector has nothing to add.
	Detail map[string]any `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Summary tallies issues by severity plus the total segment count.
// Derived from the issue list, never independently mutated.
type Summary struct {
	High     int `json:"high" yaml:"high"`
	Medium   int `json:"medium" yaml:"medium"`
	Low      int `json:"low" yaml:"low"`
	Segments int `json:"segments" yaml:"segments"`
}

// Report is the output contract every checker backend honors, rule-based
// or remote-model.
type Report struct {
	Summary Summary `json:"summary" yaml:"summary"`
	Issues  []Issue `json:"issues" yaml:"issues"`
}

// Summarize recounts the severity tallies from the issue list.
// Each issue's severity is counted exactly once.
func Summarize(issues []Issue, segments int) Summary {
	s := Summary{Segments: segments}
	for _, is := range issues {
		switch is.Severity {
		case SeverityHigh:
			s.High++
		case SeverityMedium:
			s.Medium++
		case SeverityLow:
			s.Low++
		}
	}
	return s
}

// GlossaryEntry is one term with its required translation.
type GlossaryEntry struct {
	// Term is the source-language term to watch for.
	Term string `json:"term" yaml:"term"`

	// Preferred is the translation that must appear in the target when
	// Term appears in the source.
	Preferred string `json:"preferred_translation" yaml:"preferred_translation"`
}
