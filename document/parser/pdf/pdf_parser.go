// Package pdf provides a PDF document parser.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/docuchat/ragengine/document/parser"
)

var _ parser.Parser = (*Parser)(nil)

// Parser parses PDF documents by extracting the plain text of each page.
type Parser struct{}

// New creates a new PDF parser.
func New() *Parser {
	return &Parser{}
}

// Parse implements the parser.Parser interface.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (string, error) {
	readerAt, size, err := toReaderAt(r)
	if err != nil {
		return "", fmt.Errorf("buffer pdf content: %w", err)
	}
	pdfReader, err := pdf.NewReader(readerAt, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var allText strings.Builder
	totalPage := pdfReader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := pdfReader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages that fail text extraction are skipped rather than
			// failing the whole document.
			continue
		}
		allText.WriteString(text)
		allText.WriteString("\n")
	}
	return allText.String(), nil
}

// Name returns the name of this parser.
func (p *Parser) Name() string {
	return "PDFParser"
}

// toReaderAt adapts an io.Reader to the io.ReaderAt the pdf library
// needs. Seekable readers such as *os.File are used directly; anything
// else is buffered into memory.
func toReaderAt(r io.Reader) (io.ReaderAt, int64, error) {
	if ra, ok := r.(io.ReaderAt); ok {
		if rs, ok := r.(io.ReadSeeker); ok {
			size, err := readerSize(rs)
			if err != nil {
				return nil, 0, err
			}
			return ra, size, nil
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	return bytes.NewReader(data), int64(len(data)), nil
}

// readerSize determines the total size of a seekable reader and restores
// the original offset.
func readerSize(rs io.ReadSeeker) (int64, error) {
	current, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := rs.Seek(current, io.SeekStart); err != nil {
		return 0, err
	}
	return size, nil
}
