package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/transcheck/internal/align"
	"github.com/pdiddy/transcheck/pkg/types"
)

func runPair(src, tgt string, entries []types.GlossaryEntry) types.Report {
	e := NewEngine(types.DefaultAnalysisConfig(), entries)
	s, t := align.Pair(src, tgt)
	return e.Run(s, t)
}

func issueTypes(r types.Report) []types.IssueType {
	out := make([]types.IssueType, 0, len(r.Issues))
	for _, is := range r.Issues {
		out = append(out, is.Type)
	}
	return out
}

func TestNumberMismatchNotFiredAcrossLocales(t *testing.T) {
	r := runPair("The price is 1,250.50 USD.", "El precio es 1250,50 USD.", nil)
	assert.NotContains(t, issueTypes(r), types.IssueNumberMismatch)
}

func TestNumberMismatchFires(t *testing.T) {
	r := runPair("It costs 100 today.", "Cuesta 200 hoy.", nil)
	require.Contains(t, issueTypes(r), types.IssueNumberMismatch)

	var found types.Issue
	for _, is := range r.Issues {
		if is.Type == types.IssueNumberMismatch {
			found = is
		}
	}
	assert.Equal(t, types.SeverityHigh, found.Severity)
	assert.Equal(t, 1, found.Segment)
	assert.Equal(t, []string{"100"}, found.Detail["src"])
	assert.Equal(t, []string{"200"}, found.Detail["tgt"])
}

func TestNumberSetSymmetry(t *testing.T) {
	// Same surface forms in a different order must not fire.
	r := runPair("Take 3 boxes and 7 crates.", "Toma 7 cajas y 3 cajones.", nil)
	assert.NotContains(t, issueTypes(r), types.IssueNumberMismatch)
}

func TestDateMismatch(t *testing.T) {
	// Under day-first parsing both sides resolve to 2025-10-12.
	same := runPair("Meeting on 12/10/2025.", "Reunión el 12/10/2025.", nil)
	assert.NotContains(t, issueTypes(same), types.IssueDateMismatch)

	diff := runPair("Meeting on 12/10/2025.", "Reunión el 13/10/2025.", nil)
	require.Contains(t, issueTypes(diff), types.IssueDateMismatch)
	for _, is := range diff.Issues {
		if is.Type == types.IssueDateMismatch {
			assert.Equal(t, []string{"2025-10-12"}, is.Detail["src"])
			assert.Equal(t, []string{"2025-10-13"}, is.Detail["tgt"])
		}
	}
}

func TestDateComponentsNotCountedAsNumbers(t *testing.T) {
	// The target drops the date, so its components 12, 10, 2025 exist on
	// the source side only as the date span, never as plain numbers.
	r := runPair("Meeting on 12/10/2025.", "Reunión mañana.", nil)
	typesSeen := issueTypes(r)
	assert.Contains(t, typesSeen, types.IssueDateMismatch)
	assert.NotContains(t, typesSeen, types.IssueNumberMismatch)
}

func TestPossiblyUntranslated(t *testing.T) {
	r := runPair("Hello world.", "Hello world.", nil)
	assert.Contains(t, issueTypes(r), types.IssueUntranslated)

	r = runPair("Hello world.", "Hola mundo.", nil)
	assert.NotContains(t, issueTypes(r), types.IssueUntranslated)
}

func TestLengthRatio(t *testing.T) {
	r := runPair("Short.", "This is a very much longer sentence than the original one was.", nil)
	require.Contains(t, issueTypes(r), types.IssueLengthRatio)
	for _, is := range r.Issues {
		if is.Type == types.IssueLengthRatio {
			assert.Greater(t, is.Detail["ratio"].(float64), 2.0)
		}
	}
}

func TestOrthographyBothFire(t *testing.T) {
	r := runPair("A clean sentence.", "word,,  extra junk here.", nil)
	typesSeen := issueTypes(r)
	assert.Contains(t, typesSeen, types.IssueDoublePunctuation)
	assert.Contains(t, typesSeen, types.IssueExtraSpaces)
}

func TestOrthographyNBSPCountsAsSpace(t *testing.T) {
	r := runPair("Fine here.", "mot  suite.", nil)
	assert.Contains(t, issueTypes(r), types.IssueExtraSpaces)
}

func TestGlossaryPreferredMissing(t *testing.T) {
	entries := []types.GlossaryEntry{{Term: "invoice", Preferred: "factura"}}

	r := runPair("Send the invoice now.", "Envía el documento ahora.", entries)
	require.Contains(t, issueTypes(r), types.IssueGlossaryMissing)
	for _, is := range r.Issues {
		if is.Type == types.IssueGlossaryMissing {
			assert.Equal(t, "invoice", is.Detail["term"])
			assert.Equal(t, "factura", is.Detail["preferred"])
		}
	}

	ok := runPair("Send the invoice now.", "Envía la factura ahora.", entries)
	assert.NotContains(t, issueTypes(ok), types.IssueGlossaryMissing)
}

func TestNamePossibleTypo(t *testing.T) {
	r := runPair("Signed by Maria Garcia today.", "Firmado por Maria Garzia hoy.", nil)
	require.Contains(t, issueTypes(r), types.IssueNamePossibleTypo)
	for _, is := range r.Issues {
		if is.Type == types.IssueNamePossibleTypo {
			assert.Equal(t, types.SeverityMedium, is.Severity)
			assert.Equal(t, "Maria Garcia", is.Detail["source_name"])
			assert.Equal(t, "Maria Garzia", is.Detail["target_near"])
		}
	}
}

func TestSummaryCountsPerSeverity(t *testing.T) {
	// One segment raising several severities at once.
	r := runPair(
		"It costs 100. Short.",
		"Cuesta 200,,  mismo. This became a wildly long unrelated target sentence for the ratio check.",
		nil,
	)
	high, medium, low := 0, 0, 0
	for _, is := range r.Issues {
		switch is.Severity {
		case types.SeverityHigh:
			high++
		case types.SeverityMedium:
			medium++
		case types.SeverityLow:
			low++
		}
	}
	assert.Equal(t, high, r.Summary.High)
	assert.Equal(t, medium, r.Summary.Medium)
	assert.Equal(t, low, r.Summary.Low)
	assert.Equal(t, 2, r.Summary.Segments)
}

func TestIssuesOrderedBySegmentThenDetector(t *testing.T) {
	r := runPair(
		"It costs 100. Hello world.",
		"Cuesta 200. Hello world.",
		nil,
	)
	lastSegment := 0
	for _, is := range r.Issues {
		assert.GreaterOrEqual(t, is.Segment, lastSegment)
		lastSegment = is.Segment
	}
}

func TestPaddedEmptySegments(t *testing.T) {
	// Target has fewer sentences; padded pairs must not panic and the
	// empty target side skips the target-only detectors.
	r := runPair("One 5. Two 6. Three 7.", "Uno 5.", nil)
	assert.Equal(t, 3, r.Summary.Segments)
	assert.Contains(t, issueTypes(r), types.IssueNumberMismatch)
}

func TestEmptyRunHasEmptyIssueList(t *testing.T) {
	e := NewEngine(types.DefaultAnalysisConfig(), nil)
	r := e.Run(nil, nil)
	assert.NotNil(t, r.Issues)
	assert.Zero(t, r.Summary.Segments)
}

func TestSameSet(t *testing.T) {
	assert.True(t, sameSet([]string{"2", "2", "3"}, []string{"3", "2"}))
	assert.False(t, sameSet([]string{"2"}, []string{"2", "4"}))
	assert.True(t, sameSet(nil, nil))
}
