package docext

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeDocx(t *testing.T, documentXML string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestToTextPlain(t *testing.T) {
	path := writeFile(t, "doc.txt", []byte("Hello world.\nSecond line."))
	assert.Equal(t, "Hello world.\nSecond line.", ToText(path))
}

func TestToTextUnknownExtensionFallsBackToPlain(t *testing.T) {
	path := writeFile(t, "doc", []byte("raw bytes"))
	assert.Equal(t, "raw bytes", ToText(path))
}

func TestToTextInvalidUTF8Replaced(t *testing.T) {
	path := writeFile(t, "doc.txt", []byte{'o', 'k', 0xff, 0xfe, '!'})
	got := ToText(path)
	assert.Contains(t, got, "ok")
	assert.Contains(t, got, "�")
}

func TestToTextDocx(t *testing.T) {
	xml := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`
	path := writeDocx(t, xml)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", ToText(path))
}

func TestToTextCorruptDocxYieldsEmpty(t *testing.T) {
	path := writeFile(t, "broken.docx", []byte("this is not a zip archive"))
	assert.Equal(t, "", ToText(path))
}

func TestToTextDocxWithoutDocumentXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("unrelated.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	assert.Equal(t, "", ToText(path))
}

func TestToTextCorruptPDFYieldsEmpty(t *testing.T) {
	path := writeFile(t, "broken.pdf", []byte("%PDF-nope"))
	assert.Equal(t, "", ToText(path))
}

func TestToTextMissingFileYieldsEmpty(t *testing.T) {
	assert.Equal(t, "", ToText("/nonexistent/thing.txt"))
}
