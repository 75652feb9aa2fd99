// Package retriever implements conversation-scoped retrieval: query
// expansion, multi-query similarity search, re-ranking and
// diversity-aware selection.
package retriever

import (
	"context"

	"github.com/docuchat/ragengine/document"
)

// DefaultTopK is the number of chunks returned when no option overrides it.
const DefaultTopK = 5

// RetrievedChunk is a chunk selected for prompt augmentation, together
// with its owning document and its adjusted relevance score.
type RetrievedChunk struct {
	// Chunk is the selected chunk.
	Chunk *document.Chunk

	// Document is the chunk's owning document.
	Document *document.Document

	// Score is the adjusted relevance score after re-ranking.
	Score float64
}

// Retriever finds the chunks most relevant to a query within a
// conversation's document scope.
type Retriever interface {
	// RetrieveContext returns up to topK chunks relevant to the query,
	// restricted to the documents associated with the conversation. An
	// empty scope yields an empty result without touching the embedder
	// or the vector store.
	RetrieveContext(ctx context.Context, query, conversationID string, opts ...RetrieveOption) ([]*RetrievedChunk, error)

	// Close releases resources held by the retriever.
	Close() error
}

// retrieveOptions holds per-call settings.
type retrieveOptions struct {
	topK int
}

// RetrieveOption configures a single RetrieveContext call.
type RetrieveOption func(*retrieveOptions)

// WithTopK sets the number of chunks to return. Values below one are
// ignored.
func WithTopK(k int) RetrieveOption {
	return func(o *retrieveOptions) {
		if k > 0 {
			o.topK = k
		}
	}
}
