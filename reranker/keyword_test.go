package reranker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat/ragengine/vectorstore"
)

func hit(chunkID string, score float64, text string) *vectorstore.SimilarityHit {
	return &vectorstore.SimilarityHit{
		ChunkID:    chunkID,
		DocumentID: "d1",
		Text:       text,
		Score:      score,
	}
}

func TestKeywordReranker_SubstringBonus(t *testing.T) {
	ctx := context.Background()
	r := NewKeywordReranker()

	// Two candidates identical except one contains the query verbatim.
	// Their word overlap with the query is the same, so the difference
	// must be exactly the substring bonus.
	with := hit("a", 0.5, "the cat mat story continues")
	without := hit("b", 0.5, "the cat and the mat story")

	reranked, err := r.Rerank(ctx, "cat mat", []*vectorstore.SimilarityHit{without, with})
	require.NoError(t, err)
	require.Len(t, reranked, 2)

	byID := map[string]float64{}
	for _, h := range reranked {
		byID[h.ChunkID] = h.Score
	}
	assert.InDelta(t, 0.2, byID["a"]-byID["b"], 1e-9)
	assert.Equal(t, "a", reranked[0].ChunkID)
}

func TestKeywordReranker_OverlapRatio(t *testing.T) {
	ctx := context.Background()
	r := NewKeywordReranker()

	// Query words longer than two characters: "database", "sharding".
	full := hit("full", 0.0, "database sharding explained")
	half := hit("half", 0.0, "database replication explained")
	none := hit("none", 0.0, "cooking with garlic")

	reranked, err := r.Rerank(ctx, "database sharding",
		[]*vectorstore.SimilarityHit{none, half, full})
	require.NoError(t, err)

	byID := map[string]float64{}
	for _, h := range reranked {
		byID[h.ChunkID] = h.Score
	}
	// full also contains the query verbatim: 0.3*1.0 + 0.2.
	assert.InDelta(t, 0.5, byID["full"], 1e-9)
	assert.InDelta(t, 0.15, byID["half"], 1e-9)
	assert.InDelta(t, 0.0, byID["none"], 1e-9)
}

func TestKeywordReranker_NoQualifyingQueryWords(t *testing.T) {
	ctx := context.Background()
	r := NewKeywordReranker()

	// Every query token is two characters or fewer, so the overlap term
	// is zero rather than dividing by zero.
	h := hit("a", 0.4, "it is on tv")
	reranked, err := r.Rerank(ctx, "it on", []*vectorstore.SimilarityHit{h})
	require.NoError(t, err)
	require.Len(t, reranked, 1)
	// Text contains "it on"? It does not contain the exact phrase.
	assert.InDelta(t, 0.4, reranked[0].Score, 1e-9)
}

func TestKeywordReranker_TiesKeepOrder(t *testing.T) {
	ctx := context.Background()
	r := NewKeywordReranker()

	hits := []*vectorstore.SimilarityHit{
		hit("first", 0.3, "unrelated text"),
		hit("second", 0.3, "equally unrelated"),
		hit("third", 0.3, "still unrelated"),
	}
	reranked, err := r.Rerank(ctx, "quantum chromodynamics", hits)
	require.NoError(t, err)
	require.Len(t, reranked, 3)
	assert.Equal(t, "first", reranked[0].ChunkID)
	assert.Equal(t, "second", reranked[1].ChunkID)
	assert.Equal(t, "third", reranked[2].ChunkID)
}

func TestKeywordReranker_DoesNotMutateInput(t *testing.T) {
	ctx := context.Background()
	r := NewKeywordReranker()

	original := hit("a", 0.1, "database sharding")
	_, err := r.Rerank(ctx, "database sharding", []*vectorstore.SimilarityHit{original})
	require.NoError(t, err)
	assert.InDelta(t, 0.1, original.Score, 1e-9)
}

func TestKeywordReranker_Empty(t *testing.T) {
	reranked, err := NewKeywordReranker().Rerank(context.Background(), "anything", nil)
	require.NoError(t, err)
	assert.Empty(t, reranked)
}
