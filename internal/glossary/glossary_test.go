package glossary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/transcheck/pkg/types"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glossary.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, "term,preferred_translation\ninvoice,factura\ncontract,contrato\n")
	got := Load(path)
	assert.Equal(t, []types.GlossaryEntry{
		{Term: "invoice", Preferred: "factura"},
		{Term: "contract", Preferred: "contrato"},
	}, got)
}

func TestLoadTranslationColumnAlias(t *testing.T) {
	path := writeCSV(t, "term,translation\ninvoice,factura\n")
	got := Load(path)
	require.Len(t, got, 1)
	assert.Equal(t, "factura", got[0].Preferred)
}

func TestLoadSkipsIncompleteRows(t *testing.T) {
	path := writeCSV(t, "term,preferred_translation\ninvoice,factura\norphan,\n,lonely\nok,bien\n")
	got := Load(path)
	assert.Equal(t, []types.GlossaryEntry{
		{Term: "invoice", Preferred: "factura"},
		{Term: "ok", Preferred: "bien"},
	}, got)
}

func TestLoadMissingFileYieldsNoGlossary(t *testing.T) {
	assert.Nil(t, Load("/nonexistent/glossary.csv"))
	assert.Nil(t, Load(""))
}

func TestLoadHeaderWithoutColumns(t *testing.T) {
	path := writeCSV(t, "word,meaning\ninvoice,factura\n")
	assert.Nil(t, Load(path))
}

func TestViolations(t *testing.T) {
	entries := []types.GlossaryEntry{
		{Term: "invoice", Preferred: "factura"},
		{Term: "contract", Preferred: "contrato"},
	}

	got := Violations(entries, "the invoice and the contract", "el contrato solamente")
	require.Len(t, got, 1)
	assert.Equal(t, "invoice", got[0].Term)

	assert.Empty(t, Violations(entries, "no glossary terms here", "nada"))
	assert.Empty(t, Violations(entries, "the invoice", "aquí está la factura"))
}
