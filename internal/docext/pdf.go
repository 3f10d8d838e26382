// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docext

import (
	"bytes"
	"os"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor reads the plain text stream of a PDF document.
type PDFExtractor struct{}

func (PDFExtractor) Extract(path string) (text string, err error) {
	// The pdf reader panics on some malformed files; fold that into the
	// tolerant error contract instead of taking down the run.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", os.ErrInvalid
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
