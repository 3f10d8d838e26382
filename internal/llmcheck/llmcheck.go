// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llmcheck is the remote-model checker: an alternate issue
// backend with the same output contract as the rule engine. Issue types
// are namespaced with an "llm_" prefix so provenance stays visible in
// merged reports. This checker makes no promises about model behavior;
// the deterministic engine remains the reference implementation.
package llmcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/transcheck/pkg/types"
)

// Error categories for the remote backend. Each maps a distinct
// operational failure so operators can tell configuration problems from
// transient ones from quota exhaustion.
var (
	ErrAPIKey     = errors.New("model API key missing or malformed")
	ErrAuth       = errors.New("model API authentication failed")
	ErrRateLimit  = errors.New("model API rate limit reached")
	ErrNetwork    = errors.New("model API network error")
	ErrBadRequest = errors.New("model API rejected the request")
	// ErrMalformed marks an unusable structured response; the affected
	// batch degrades to no issues instead of failing the run.
	ErrMalformed = errors.New("model returned a malformed response")
)

// SegmentPair is one aligned pair sent to the model, keyed by its
// 1-based segment index.
type SegmentPair struct {
	Segment int    `json:"segment"`
	Src     string `json:"src"`
	Tgt     string `json:"tgt"`
}

// RawIssue is one issue as the model reports it, before normalization
// into the output contract.
type RawIssue struct {
	Segment    int    `json:"segment"`
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Evidence   string `json:"evidence"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Backend abstracts the remote model API so tests can supply a mock.
type Backend interface {
	// Check evaluates one batch of pairs and returns the model's issues.
	Check(ctx context.Context, batch []SegmentPair) ([]RawIssue, error)
}

// ValidateKey applies the API-key sanity checks before any network
// traffic: non-empty, single line, no spaces, recognized prefix.
func ValidateKey(key string) error {
	k := strings.TrimSpace(key)
	if k == "" {
		return fmt.Errorf("%w: key is empty", ErrAPIKey)
	}
	if strings.ContainsAny(k, " \n\r\t") {
		return fmt.Errorf("%w: key must be a single token with no spaces or newlines", ErrAPIKey)
	}
	if !strings.HasPrefix(k, "sk-") {
		return fmt.Errorf("%w: key should start with \"sk-\"", ErrAPIKey)
	}
	return nil
}

// Run sends the aligned segments through the backend in batches and
// normalizes the results into the standard report. A batch whose
// response is malformed contributes no issues; any other backend error
// aborts the run with its category intact.
func Run(ctx context.Context, b Backend, srcSegments, tgtSegments []string, batchSize int) (types.Report, error) {
	if batchSize <= 0 {
		batchSize = types.DefaultLLMConfig().BatchSize
	}

	var raw []RawIssue
	var batch []SegmentPair
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		issues, err := b.Check(ctx, batch)
		batch = nil
		if errors.Is(err, ErrMalformed) {
			return nil
		}
		if err != nil {
			return err
		}
		raw = append(raw, issues...)
		return nil
	}

	for i := range srcSegments {
		tgt := ""
		if i < len(tgtSegments) {
			tgt = tgtSegments[i]
		}
		batch = append(batch, SegmentPair{Segment: i + 1, Src: srcSegments[i], Tgt: tgt})
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return types.Report{}, err
			}
		}
	}
	if err := flush(); err != nil {
		return types.Report{}, err
	}

	issues := normalize(raw, srcSegments, tgtSegments)
	return types.Report{
		Summary: types.Summarize(issues, len(srcSegments)),
		Issues:  issues,
	}, nil
}

// normalize maps raw model issues onto the output contract: namespaced
// type, defaulted severity, segment texts resolved from the run's own
// slices (never trusted from the model), out-of-range segments kept
// with empty texts.
func normalize(raw []RawIssue, srcSegments, tgtSegments []string) []types.Issue {
	issues := make([]types.Issue, 0, len(raw))
	for _, r := range raw {
		typ := r.Type
		if typ == "" {
			typ = "other"
		}
		sev := types.Severity(r.Severity)
		switch sev {
		case types.SeverityHigh, types.SeverityMedium, types.SeverityLow:
		default:
			sev = types.SeverityLow
		}

		src, tgt := "", ""
		if r.Segment >= 1 && r.Segment <= len(srcSegments) {
			src = srcSegments[r.Segment-1]
		}
		if r.Segment >= 1 && r.Segment <= len(tgtSegments) {
			tgt = tgtSegments[r.Segment-1]
		}

		detail := map[string]any{"evidence": r.Evidence}
		if r.Suggestion != "" {
			detail["suggestion"] = r.Suggestion
		}

		issues = append(issues, types.Issue{
			Type:     types.IssueType("llm_" + typ),
			Severity: sev,
			Segment:  r.Segment,
			Src:      src,
			Tgt:      tgt,
			Detail:   detail,
		})
	}
	return issues
}
