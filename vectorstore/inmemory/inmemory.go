// Package inmemory provides an in-memory vector store implementation.
package inmemory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/docuchat/ragengine/vectorstore"
)

var (
	// errChunkIDCannotBeEmpty is the error when the chunk ID is empty.
	errChunkIDCannotBeEmpty = errors.New("chunk ID cannot be empty")
	// errDocumentIDCannotBeEmpty is the error when the document ID is empty.
	errDocumentIDCannotBeEmpty = errors.New("document ID cannot be empty")
	// errEmbeddingCannotBeEmpty is the error when the embedding is empty.
	errEmbeddingCannotBeEmpty = errors.New("embedding cannot be empty")
	// errQueryVectorCannotBeEmpty is the error when the query vector is empty.
	errQueryVectorCannotBeEmpty = errors.New("query vector cannot be empty")
)

// defaultMaxResults is the default maximum number of search results.
const defaultMaxResults = 100

var _ vectorstore.VectorStore = (*VectorStore)(nil)

// entry holds one stored chunk embedding.
type entry struct {
	chunkID    string
	documentID string
	text       string
	embedding  []float64
}

// VectorStore implements vectorstore.VectorStore using in-memory storage
// with exact cosine-similarity search.
type VectorStore struct {
	mutex   sync.RWMutex
	entries map[string]*entry // keyed by chunk ID

	// maxResults caps topN regardless of what the caller asks for.
	maxResults int
}

// Option represents a functional option for configuring VectorStore.
type Option func(*VectorStore)

// WithMaxResults sets the maximum number of search results.
func WithMaxResults(maxResults int) Option {
	return func(vs *VectorStore) {
		if maxResults <= 0 {
			maxResults = defaultMaxResults
		}
		vs.maxResults = maxResults
	}
}

// New creates a new in-memory vector store instance with options.
func New(opts ...Option) *VectorStore {
	vs := &VectorStore{
		entries:    make(map[string]*entry),
		maxResults: defaultMaxResults,
	}
	for _, opt := range opts {
		opt(vs)
	}
	return vs
}

// Store implements vectorstore.VectorStore interface.
func (vs *VectorStore) Store(ctx context.Context, chunkID, documentID, text string, embedding []float64) error {
	if chunkID == "" {
		return errChunkIDCannotBeEmpty
	}
	if documentID == "" {
		return errDocumentIDCannotBeEmpty
	}
	if len(embedding) == 0 {
		return errEmbeddingCannotBeEmpty
	}

	vs.mutex.Lock()
	defer vs.mutex.Unlock()

	stored := make([]float64, len(embedding))
	copy(stored, embedding)
	vs.entries[chunkID] = &entry{
		chunkID:    chunkID,
		documentID: documentID,
		text:       text,
		embedding:  stored,
	}
	return nil
}

// Search implements vectorstore.VectorStore interface.
func (vs *VectorStore) Search(ctx context.Context, vector []float64, topN int) ([]*vectorstore.SimilarityHit, error) {
	if len(vector) == 0 {
		return nil, errQueryVectorCannotBeEmpty
	}

	vs.mutex.RLock()
	defer vs.mutex.RUnlock()

	hits := make([]*vectorstore.SimilarityHit, 0, len(vs.entries))
	for _, e := range vs.entries {
		// Skip entries whose embedding dimensions don't match.
		if len(e.embedding) != len(vector) {
			continue
		}
		hits = append(hits, &vectorstore.SimilarityHit{
			ChunkID:    e.chunkID,
			DocumentID: e.documentID,
			Text:       e.text,
			Score:      cosineSimilarity(vector, e.embedding),
		})
	}

	// Sort by score descending with a deterministic tie order on chunk ID,
	// since map iteration order would otherwise leak into results.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})

	limit := vs.cap(topN)
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// DeleteByDocument implements vectorstore.VectorStore interface.
func (vs *VectorStore) DeleteByDocument(ctx context.Context, documentID string) error {
	if documentID == "" {
		return errDocumentIDCannotBeEmpty
	}

	vs.mutex.Lock()
	defer vs.mutex.Unlock()

	for id, e := range vs.entries {
		if e.documentID == documentID {
			delete(vs.entries, id)
		}
	}
	return nil
}

// Count implements vectorstore.VectorStore interface.
func (vs *VectorStore) Count(ctx context.Context) (int, error) {
	vs.mutex.RLock()
	defer vs.mutex.RUnlock()
	return len(vs.entries), nil
}

// Close implements vectorstore.VectorStore interface.
func (vs *VectorStore) Close() error {
	vs.mutex.Lock()
	defer vs.mutex.Unlock()
	vs.entries = make(map[string]*entry)
	return nil
}

// cap clamps the requested result count to the configured maximum.
func (vs *VectorStore) cap(topN int) int {
	if topN <= 0 || topN > vs.maxResults {
		return vs.maxResults
	}
	return topN
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := 0; i < len(a); i++ {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
