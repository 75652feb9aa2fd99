// Package vectorstore provides interfaces for vector storage and
// similarity search over document chunks.
package vectorstore

import (
	"context"
)

// VectorStore defines the interface for storing chunk embeddings and
// answering top-N nearest-neighbor queries.
type VectorStore interface {
	// Store saves a chunk embedding together with its identity tuple.
	// The text is kept alongside the vector so search hits can carry a
	// snippet without a store lookup.
	Store(ctx context.Context, chunkID, documentID, text string, embedding []float64) error

	// Search returns the topN most similar chunks for the query vector,
	// ordered by descending similarity.
	Search(ctx context.Context, vector []float64, topN int) ([]*SimilarityHit, error)

	// DeleteByDocument removes all vectors owned by the given document.
	DeleteByDocument(ctx context.Context, documentID string) error

	// Count returns the number of stored vectors.
	Count(ctx context.Context) (int, error)

	// Close closes the vector store connection.
	Close() error
}

// SimilarityHit is a transient search result. Score starts as the raw
// similarity returned by the index and is mutated during re-ranking.
type SimilarityHit struct {
	// ChunkID identifies the matched chunk.
	ChunkID string

	// DocumentID identifies the chunk's owning document.
	DocumentID string

	// Text is the raw chunk text snippet.
	Text string

	// Score is the similarity score; higher is more relevant.
	Score float64
}
