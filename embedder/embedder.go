// Package embedder provides interfaces and implementations for text embedding.
package embedder

import (
	"context"
)

// Embedder is the interface that all embedders must implement.
//
// Errors returned by these methods are system-level failures (nil input,
// network issues, invalid parameters). API-level failures such as rate
// limits or content filtering are delivered as empty embeddings with a
// logged warning, so callers should check both:
//
//	embedding, err := embedder.GetEmbedding(ctx, "text to embed")
//	if err != nil {
//	    return fmt.Errorf("failed to get embedding: %w", err)
//	}
//	if len(embedding) == 0 {
//	    return fmt.Errorf("received empty embedding from API")
//	}
type Embedder interface {
	// GetEmbedding generates an embedding vector for the given text.
	GetEmbedding(ctx context.Context, text string) ([]float64, error)

	// GetEmbeddings generates embedding vectors for a batch of texts in a
	// single request. The returned slice is index-aligned with the input.
	GetEmbeddings(ctx context.Context, texts []string) ([][]float64, error)

	// GetDimensions returns the dimensionality of the embeddings produced
	// by this embedder. Returns 0 if dimensions are not known.
	GetDimensions() int
}
