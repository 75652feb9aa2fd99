// Package reranker provides score re-ranking for retrieval candidates.
package reranker

import (
	"context"

	"github.com/docuchat/ragengine/vectorstore"
)

// Reranker re-orders similarity hits based on ranking criteria relative
// to the original query.
type Reranker interface {
	// Rerank returns the hits re-ordered by adjusted relevance. Scores on
	// the returned hits reflect the adjustment.
	Rerank(ctx context.Context, query string, hits []*vectorstore.SimilarityHit) ([]*vectorstore.SimilarityHit, error)
}
