// Package chunking provides text chunking strategies and utilities.
package chunking

import (
	"strings"

	"github.com/google/uuid"

	"github.com/docuchat/ragengine/document"
)

// Strategy defines the interface for text chunking strategies.
type Strategy interface {
	// Chunk splits text into an ordered sequence of chunk strings.
	Chunk(text string) ([]string, error)
}

var (
	defaultChunkSize = 1024
	defaultOverlap   = 128
)

// CreateChunks materialises chunk entities for the given texts, owned by
// the document identified by documentID. Indices are assigned
// contiguously starting at zero, in input order.
func CreateChunks(documentID string, texts []string) []*document.Chunk {
	chunks := make([]*document.Chunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, &document.Chunk{
			ID:         uuid.NewString(),
			DocumentID: documentID,
			Text:       text,
			Index:      i,
		})
	}
	return chunks
}

// cleanText normalizes whitespace in text content.
func cleanText(content string) string {
	processed := strings.TrimSpace(content)

	// Normalize line breaks.
	processed = strings.ReplaceAll(processed, "\r\n", "\n")
	processed = strings.ReplaceAll(processed, "\r", "\n")

	// Remove excessive whitespace while preserving line breaks.
	lines := strings.Split(processed, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
