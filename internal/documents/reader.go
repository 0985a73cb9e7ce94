package documents

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader extracts plain text from one file.
type Reader interface {
	Extract(name string, data []byte) (string, error)
}

// ReaderFunc adapts a function to Reader.
type ReaderFunc func(name string, data []byte) (string, error)

func (f ReaderFunc) Extract(name string, data []byte) (string, error) { return f(name, data) }

// PDFReader extracts the text layer of a PDF.
type PDFReader struct{}

// Extract concatenates the plain text of every page. Malformed input is
// reported as an error, never a panic.
func (PDFReader) Extract(name string, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf %s: %v", name, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", name, err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text from %s: %w", name, err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read text from %s: %w", name, err)
	}
	return string(b), nil
}

// AutoReader picks a reader by extension: plain-text notes (.txt, .md) are
// read as-is, everything else as PDF.
type AutoReader struct {
	PDF Reader
}

func (a AutoReader) Extract(name string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".markdown":
		return string(data), nil
	}
	if a.PDF == nil {
		return PDFReader{}.Extract(name, data)
	}
	return a.PDF.Extract(name, data)
}
