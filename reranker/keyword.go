package reranker

import (
	"context"
	"sort"
	"strings"

	"github.com/docuchat/ragengine/vectorstore"
)

const (
	// overlapWeight scales the query-word overlap ratio.
	overlapWeight = 0.3
	// substringBonus is added when the candidate contains the whole query.
	substringBonus = 0.2
	// minWordLength is the exclusive lower bound on query word length for
	// the overlap computation.
	minWordLength = 2
)

var _ Reranker = (*KeywordReranker)(nil)

// KeywordReranker adjusts raw similarity scores with lexical signals
// from the original query: the fraction of query words present in the
// candidate text, and a bonus for containing the query verbatim.
type KeywordReranker struct{}

// NewKeywordReranker creates a new keyword reranker.
func NewKeywordReranker() *KeywordReranker {
	return &KeywordReranker{}
}

// Rerank implements the Reranker interface. Hits are sorted descending
// by adjusted score; ties keep their incoming relative order.
func (k *KeywordReranker) Rerank(ctx context.Context, query string, hits []*vectorstore.SimilarityHit) ([]*vectorstore.SimilarityHit, error) {
	queryWords := wordSet(query)
	loweredQuery := strings.ToLower(query)

	reranked := make([]*vectorstore.SimilarityHit, len(hits))
	for i, hit := range hits {
		adjusted := *hit
		adjusted.Score = hit.Score + adjustment(loweredQuery, queryWords, hit.Text)
		reranked[i] = &adjusted
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].Score > reranked[j].Score
	})
	return reranked, nil
}

// adjustment computes the lexical score delta for one candidate.
func adjustment(loweredQuery string, queryWords map[string]struct{}, text string) float64 {
	var delta float64

	if len(queryWords) > 0 {
		candidateWords := wordSet(text)
		matched := 0
		for word := range queryWords {
			if _, ok := candidateWords[word]; ok {
				matched++
			}
		}
		delta += overlapWeight * float64(matched) / float64(len(queryWords))
	}

	if loweredQuery != "" && strings.Contains(strings.ToLower(text), loweredQuery) {
		delta += substringBonus
	}
	return delta
}

// wordSet returns the lowercase whitespace-delimited words of text that
// are longer than minWordLength characters.
func wordSet(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(text)) {
		if len(token) > minWordLength {
			words[token] = struct{}{}
		}
	}
	return words
}
