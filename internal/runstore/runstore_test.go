package runstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/transcheck/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{RunsDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id string, created time.Time) Run {
	report := types.Report{
		Summary: types.Summary{High: 1, Segments: 2},
		Issues: []types.Issue{
			{
				Type:     types.IssueNumberMismatch,
				Severity: types.SeverityHigh,
				Segment:  1,
				Src:      "100", Tgt: "200",
				Detail: map[string]any{"src": []any{"100"}, "tgt": []any{"200"}},
			},
		},
	}
	return Run{
		ID:         id,
		CreatedAt:  created,
		SourcePath: "original.docx",
		TargetPath: "translation.docx",
		Mode:       "rules",
		Summary:    report.Summary,
		Report:     report,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	run := sampleRun("run-1", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, s.Save(context.Background(), run))

	got, err := s.Get(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.CreatedAt, got.CreatedAt)
	assert.Equal(t, run.Mode, got.Mode)
	assert.Equal(t, run.Summary, got.Summary)
	require.Len(t, got.Report.Issues, 1)
	assert.Equal(t, types.IssueNumberMismatch, got.Report.Issues[0].Type)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorContains(t, err, "not found")
}

func TestDuplicateIDRejected(t *testing.T) {
	s := openTestStore(t)
	run := sampleRun("run-1", time.Now())
	require.NoError(t, s.Save(context.Background(), run))
	assert.Error(t, s.Save(context.Background(), run))
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, s.Save(context.Background(), sampleRun(id, base.Add(time.Duration(i)*time.Hour))))
	}

	runs, err := s.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "old", runs[2].ID)
	// Listing omits report payloads.
	assert.Empty(t, runs[0].Report.Issues)

	limited, err := s.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(types.StoreConfig{RunsDir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), sampleRun("keep", time.Now())))
	require.NoError(t, s.Close())

	s2, err := Open(types.StoreConfig{RunsDir: dir})
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get(context.Background(), "keep")
	require.NoError(t, err)
	assert.Equal(t, "keep", got.ID)
}
