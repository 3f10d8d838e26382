// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package annotate renders a reviewed copy of the translation: each
// target segment marked by the highest severity issue touching it, with
// itemized notes per issue. Pure presentation over the report contract.
package annotate

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	"github.com/pdiddy/transcheck/pkg/types"
)

var reviewTmpl = template.Must(template.New("review").Parse(`# Translation review

{{range .Segments}}{{if .Marker}}> **{{.Marker}}** {{.Text}}  [ISSUES: {{.TypeList}}]
{{range .Notes}}> - {{.}}
{{end}}{{else}}{{.Text}}
{{end}}
{{end}}`))

type segmentView struct {
	Text     string
	Marker   string
	TypeList string
	Notes    []string
}

// WriteReview renders the annotated Markdown document for the target
// segments and their issues to w.
func WriteReview(w io.Writer, tgtSegments []string, issues []types.Issue) error {
	bySegment := make(map[int][]types.Issue)
	for _, is := range issues {
		bySegment[is.Segment] = append(bySegment[is.Segment], is)
	}

	views := make([]segmentView, 0, len(tgtSegments))
	for i, text := range tgtSegments {
		v := segmentView{Text: text}
		if text == "" {
			v.Text = "(no corresponding segment)"
		}
		if segIssues, ok := bySegment[i+1]; ok {
			v.Marker = marker(topSeverity(segIssues))
			v.TypeList = typeList(segIssues)
			for _, is := range segIssues {
				v.Notes = append(v.Notes, note(is))
			}
		}
		views = append(views, v)
	}

	return reviewTmpl.Execute(w, struct{ Segments []segmentView }{Segments: views})
}

// WritePlain renders just the target segments, one paragraph each, with
// no markers. Used for exporting an edited translation.
func WritePlain(w io.Writer, tgtSegments []string) error {
	for _, s := range tgtSegments {
		if _, err := fmt.Fprintf(w, "%s\n\n", s); err != nil {
			return err
		}
	}
	return nil
}

// topSeverity returns the highest severity among the issues.
func topSeverity(issues []types.Issue) types.Severity {
	top := types.SeverityLow
	for _, is := range issues {
		switch is.Severity {
		case types.SeverityHigh:
			return types.SeverityHigh
		case types.SeverityMedium:
			top = types.SeverityMedium
		}
	}
	return top
}

func marker(sev types.Severity) string {
	switch sev {
	case types.SeverityHigh:
		return "HIGH"
	case types.SeverityMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func typeList(issues []types.Issue) string {
	seen := make(map[types.IssueType]bool)
	var out []string
	for _, is := range issues {
		if !seen[is.Type] {
			seen[is.Type] = true
			out = append(out, string(is.Type))
		}
	}
	return strings.Join(out, ", ")
}

// note formats one issue as a review bullet: type, severity, and the
// detail payload flattened into readable evidence.
func note(is types.Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Segment %d — %s (%s)", is.Segment, is.Type, is.Severity)
	if len(is.Detail) > 0 {
		keys := make([]string, 0, len(is.Detail))
		for k := range is.Detail {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, is.Detail[k]))
		}
		fmt.Fprintf(&b, ": %s", strings.Join(parts, ", "))
	}
	return b.String()
}
