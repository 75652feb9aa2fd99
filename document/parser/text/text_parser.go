// Package text provides a plain-text document parser.
package text

import (
	"context"
	"fmt"
	"io"

	"github.com/docuchat/ragengine/document/parser"
	"github.com/docuchat/ragengine/internal/encoding"
)

var _ parser.Parser = (*Parser)(nil)

// Parser parses plain-text documents.
type Parser struct{}

// New creates a new plain-text parser.
func New() *Parser {
	return &Parser{}
}

// Parse implements the parser.Parser interface.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text content: %w", err)
	}
	return encoding.ToUTF8(string(data)), nil
}

// Name returns the name of this parser.
func (p *Parser) Name() string {
	return "TextParser"
}
