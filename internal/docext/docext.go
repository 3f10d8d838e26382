// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docext turns uploaded documents into a single text blob,
// regardless of source format. Different formats (plain text, DOCX,
// PDF) implement the Extractor interface; ToText dispatches on the
// file extension.
//
// Extraction is tolerant by contract: unreadable or corrupt input
// yields empty text rather than an error, so callers report a clear
// "no text extracted" condition instead of crashing mid-run. Format
// fidelity beyond plain text is out of scope.
package docext

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extractor produces the plain text of one document format.
type Extractor interface {
	// Extract reads the file at path and returns its text content.
	Extract(path string) (string, error)
}

// ToText extracts text from the file at path, choosing the extractor by
// extension: .docx and .pdf get format-aware readers, everything else
// is read as plain text. Any failure yields "".
func ToText(path string) string {
	var e Extractor
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		e = DocxExtractor{}
	case ".pdf":
		e = PDFExtractor{}
	default:
		e = TextExtractor{}
	}
	text, err := e.Extract(path)
	if err != nil {
		return ""
	}
	return text
}

// TextExtractor reads a file as-is. Byte sequences that are not valid
// UTF-8 are replaced rather than failing the read.
type TextExtractor struct{}

func (TextExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// DocxExtractor pulls paragraph text out of the word/document.xml entry
// of a DOCX archive. Paragraphs become newline-separated lines.
type DocxExtractor struct{}

func (DocxExtractor) Extract(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return docxText(rc)
	}
	return "", os.ErrNotExist
}

// docxText walks the document XML collecting the character data of w:t
// runs and emitting a newline at each paragraph end.
func docxText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
