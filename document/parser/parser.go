// Package parser defines the interface for extracting plain text from
// raw document content prior to chunking and indexing.
package parser

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrUnsupportedKind indicates no parser is registered for the
	// document's file kind.
	ErrUnsupportedKind = errors.New("unsupported document kind")

	// ErrEmptyContent indicates the parsed document yielded no text.
	ErrEmptyContent = errors.New("document content is empty")
)

// Parser extracts text from one document format.
type Parser interface {
	// Parse reads raw content and returns the extracted plain text.
	// It returns an error for corrupt or unreadable input.
	Parse(ctx context.Context, r io.Reader) (string, error)

	// Name returns the name of this parser.
	Name() string
}
