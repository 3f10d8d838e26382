// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package glossary loads term/preferred-translation pairs from a CSV
// file for enforcement during checks.
package glossary

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/transcheck/pkg/types"
)

// Load reads glossary entries from a CSV file with a header row. The
// term column must be named "term"; the translation column may be named
// "preferred_translation" or "translation". Parsing is deliberately
// lenient: rows missing either field are skipped, and any read or parse
// failure returns no entries so the run proceeds without glossary
// checks instead of aborting.
func Load(path string) []types.GlossaryEntry {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil
	}
	termCol, prefCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "term":
			termCol = i
		case "preferred_translation", "translation":
			if prefCol == -1 {
				prefCol = i
			}
		}
	}
	if termCol == -1 || prefCol == -1 {
		return nil
	}

	var entries []types.GlossaryEntry
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row; skip it and keep reading.
			continue
		}
		if termCol >= len(row) || prefCol >= len(row) {
			continue
		}
		term := strings.TrimSpace(row[termCol])
		pref := strings.TrimSpace(row[prefCol])
		if term == "" || pref == "" {
			continue
		}
		entries = append(entries, types.GlossaryEntry{Term: term, Preferred: pref})
	}
	return entries
}

// Violations returns the entries whose term appears as a literal
// substring of the source while the preferred translation is absent
// from the target.
func Violations(entries []types.GlossaryEntry, source, target string) []types.GlossaryEntry {
	var out []types.GlossaryEntry
	for _, e := range entries {
		if strings.Contains(source, e.Term) && !strings.Contains(target, e.Preferred) {
			out = append(out, e)
		}
	}
	return out
}
