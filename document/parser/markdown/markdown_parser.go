// Package markdown provides a markdown document parser that extracts
// plain text from the rendered document structure.
package markdown

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/docuchat/ragengine/document/parser"
	"github.com/docuchat/ragengine/internal/encoding"
)

var _ parser.Parser = (*Parser)(nil)

// Parser parses markdown documents into plain text. Formatting markers
// are dropped; headings, paragraphs, list items and code blocks each end
// up on their own lines.
type Parser struct {
	md goldmark.Markdown
}

// New creates a new markdown parser.
func New() *Parser {
	return &Parser{md: goldmark.New()}
}

// Parse implements the parser.Parser interface.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read markdown content: %w", err)
	}
	source := []byte(encoding.ToUTF8(string(data)))

	root := p.md.Parser().Parse(text.NewReader(source))

	var sb strings.Builder
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.HardLineBreak() || node.SoftLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				sb.Write(seg.Value(source))
			}
		case *ast.AutoLink:
			sb.Write(node.URL(source))
		default:
			// Block boundaries become line breaks.
			if n.Type() == ast.TypeBlock && sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", fmt.Errorf("walk markdown tree: %w", err)
	}
	return sb.String(), nil
}

// Name returns the name of this parser.
func (p *Parser) Name() string {
	return "MarkdownParser"
}
