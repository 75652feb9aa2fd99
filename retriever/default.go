package retriever

import (
	"context"
	"errors"

	"github.com/docuchat/ragengine/embedder"
	"github.com/docuchat/ragengine/log"
	"github.com/docuchat/ragengine/query"
	"github.com/docuchat/ragengine/reranker"
	"github.com/docuchat/ragengine/store"
	"github.com/docuchat/ragengine/vectorstore"
)

const (
	// overfetchFactor widens each similarity search to leave room for
	// deduplication and diversity losses.
	overfetchFactor = 3

	// diversityThreshold lets a second chunk from an already-used
	// document through the diversity pass when its adjusted score is
	// high enough.
	diversityThreshold = 0.7
)

var _ Retriever = (*DefaultRetriever)(nil)

// DefaultRetriever executes the retrieval pipeline: conversation scope
// lookup, query expansion, one similarity search per expanded query,
// order-preserving deduplication, scope filtering, re-ranking and
// diversity-aware selection.
type DefaultRetriever struct {
	store       store.Store
	embedder    embedder.Embedder
	vectorStore vectorstore.VectorStore
	expander    query.Expander
	reranker    reranker.Reranker
}

// Option configures a DefaultRetriever.
type Option func(*DefaultRetriever)

// WithStore sets the entity store used for scope lookup and resolution.
func WithStore(s store.Store) Option {
	return func(dr *DefaultRetriever) {
		dr.store = s
	}
}

// WithEmbedder sets the embedder used for query embeddings.
func WithEmbedder(e embedder.Embedder) Option {
	return func(dr *DefaultRetriever) {
		dr.embedder = e
	}
}

// WithVectorStore sets the similarity index to search.
func WithVectorStore(vs vectorstore.VectorStore) Option {
	return func(dr *DefaultRetriever) {
		dr.vectorStore = vs
	}
}

// WithExpander sets the query expander. Nil skips expansion and
// searches the original query only.
func WithExpander(e query.Expander) Option {
	return func(dr *DefaultRetriever) {
		dr.expander = e
	}
}

// WithReranker sets the reranker applied to surviving candidates.
func WithReranker(r reranker.Reranker) Option {
	return func(dr *DefaultRetriever) {
		dr.reranker = r
	}
}

// New creates a retriever from the given options.
func New(opts ...Option) *DefaultRetriever {
	dr := &DefaultRetriever{
		expander: query.NewHeuristicExpander(),
		reranker: reranker.NewKeywordReranker(),
	}
	for _, opt := range opts {
		opt(dr)
	}
	return dr
}

// RetrieveContext implements the Retriever interface.
func (dr *DefaultRetriever) RetrieveContext(ctx context.Context, q, conversationID string, opts ...RetrieveOption) ([]*RetrievedChunk, error) {
	options := retrieveOptions{topK: DefaultTopK}
	for _, opt := range opts {
		opt(&options)
	}

	scope, err := dr.conversationScope(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if len(scope) == 0 {
		log.Debugf("retrieve: conversation %s has no documents, skipping search", conversationID)
		return nil, nil
	}

	variants := []string{q}
	if dr.expander != nil {
		variants, err = dr.expander.Expand(ctx, q)
		if err != nil {
			return nil, err
		}
	}

	candidates, err := dr.searchAll(ctx, variants, options.topK*overfetchFactor)
	if err != nil {
		return nil, err
	}

	candidates = dedupeHits(candidates)
	candidates = filterScope(candidates, scope)

	if dr.reranker != nil {
		candidates, err = dr.reranker.Rerank(ctx, q, candidates)
		if err != nil {
			return nil, err
		}
	}

	selected := selectDiverse(candidates, options.topK)
	return dr.resolve(ctx, selected)
}

// Close implements the Retriever interface.
func (dr *DefaultRetriever) Close() error {
	return nil
}

// conversationScope returns the set of document IDs associated with the
// conversation.
func (dr *DefaultRetriever) conversationScope(ctx context.Context, conversationID string) (map[string]struct{}, error) {
	assocs, err := dr.store.ListConversationDocuments(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	scope := make(map[string]struct{}, len(assocs))
	for _, assoc := range assocs {
		scope[assoc.DocumentID] = struct{}{}
	}
	return scope, nil
}

// searchAll runs one embedding and one similarity search per query
// variant, sequentially, accumulating hits in encounter order.
func (dr *DefaultRetriever) searchAll(ctx context.Context, variants []string, limit int) ([]*vectorstore.SimilarityHit, error) {
	var hits []*vectorstore.SimilarityHit
	for _, variant := range variants {
		vector, err := dr.embedder.GetEmbedding(ctx, variant)
		if err != nil {
			return nil, err
		}
		results, err := dr.vectorStore.Search(ctx, vector, limit)
		if err != nil {
			return nil, err
		}
		hits = append(hits, results...)
	}
	return hits, nil
}

// dedupeHits keeps the first occurrence of each (chunk, document) pair,
// preserving encounter order.
func dedupeHits(hits []*vectorstore.SimilarityHit) []*vectorstore.SimilarityHit {
	type key struct {
		chunkID    string
		documentID string
	}
	seen := make(map[key]struct{}, len(hits))
	deduped := make([]*vectorstore.SimilarityHit, 0, len(hits))
	for _, hit := range hits {
		k := key{chunkID: hit.ChunkID, documentID: hit.DocumentID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		deduped = append(deduped, hit)
	}
	return deduped
}

// filterScope drops hits whose document is outside the conversation's
// associated set. The index may span more documents than the
// conversation can see.
func filterScope(hits []*vectorstore.SimilarityHit, scope map[string]struct{}) []*vectorstore.SimilarityHit {
	filtered := hits[:0]
	for _, hit := range hits {
		if _, ok := scope[hit.DocumentID]; ok {
			filtered = append(filtered, hit)
		}
	}
	return filtered
}

// selectDiverse picks up to topK hits from the score-sorted candidates,
// preferring one chunk per document. The best hit is always taken; a
// further hit from an already-used document is taken only when its
// score exceeds diversityThreshold. Remaining slots are filled by score
// regardless of document.
func selectDiverse(candidates []*vectorstore.SimilarityHit, topK int) []*vectorstore.SimilarityHit {
	if len(candidates) == 0 || topK <= 0 {
		return nil
	}

	selected := make([]*vectorstore.SimilarityHit, 0, topK)
	chosen := make(map[int]struct{}, topK)
	usedDocs := make(map[string]struct{}, topK)

	selected = append(selected, candidates[0])
	chosen[0] = struct{}{}
	usedDocs[candidates[0].DocumentID] = struct{}{}

	for i := 1; i < len(candidates) && len(selected) < topK; i++ {
		hit := candidates[i]
		if _, used := usedDocs[hit.DocumentID]; used && hit.Score <= diversityThreshold {
			continue
		}
		selected = append(selected, hit)
		chosen[i] = struct{}{}
		usedDocs[hit.DocumentID] = struct{}{}
	}

	for i := 1; i < len(candidates) && len(selected) < topK; i++ {
		if _, ok := chosen[i]; ok {
			continue
		}
		selected = append(selected, candidates[i])
		chosen[i] = struct{}{}
	}
	return selected
}

// resolve fetches the chunk and document entities for each selected
// hit. Hits whose entities have disappeared are skipped, tolerating
// concurrent deletion.
func (dr *DefaultRetriever) resolve(ctx context.Context, hits []*vectorstore.SimilarityHit) ([]*RetrievedChunk, error) {
	resolved := make([]*RetrievedChunk, 0, len(hits))
	for _, hit := range hits {
		chunk, err := dr.store.GetChunk(ctx, hit.ChunkID)
		if errors.Is(err, store.ErrNotFound) {
			log.Debugf("retrieve: chunk %s vanished, skipping", hit.ChunkID)
			continue
		}
		if err != nil {
			return nil, err
		}
		doc, err := dr.store.GetDocument(ctx, hit.DocumentID)
		if errors.Is(err, store.ErrNotFound) {
			log.Debugf("retrieve: document %s vanished, skipping", hit.DocumentID)
			continue
		}
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, &RetrievedChunk{
			Chunk:    chunk,
			Document: doc,
			Score:    hit.Score,
		})
	}
	return resolved, nil
}
