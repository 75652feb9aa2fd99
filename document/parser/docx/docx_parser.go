// Package docx provides a DOCX document parser.
package docx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gonfva/docxlib"

	"github.com/docuchat/ragengine/document/parser"
)

var _ parser.Parser = (*Parser)(nil)

// Parser parses DOCX documents by extracting text from paragraph runs
// and hyperlinks.
type Parser struct{}

// New creates a new DOCX parser.
func New() *Parser {
	return &Parser{}
}

// Parse implements the parser.Parser interface.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read docx content: %w", err)
	}

	doc, err := docxlib.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	return extractText(doc), nil
}

// Name returns the name of this parser.
func (p *Parser) Name() string {
	return "DOCXParser"
}

// extractText collects the text of every paragraph in document order.
func extractText(doc *docxlib.DocxLib) string {
	var sb strings.Builder

	for _, paragraph := range doc.Paragraphs() {
		for _, child := range paragraph.Children() {
			if child.Run != nil && child.Run.Text != nil {
				if text := strings.TrimSpace(child.Run.Text.Text); text != "" {
					sb.WriteString(text)
					sb.WriteString(" ")
				}
			}
			if child.Link != nil && child.Link.Run.Text != nil {
				if text := strings.TrimSpace(child.Link.Run.Text.Text); text != "" {
					sb.WriteString(text)
					sb.WriteString(" ")
				}
			}
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
	}
	return strings.TrimSpace(sb.String())
}
