package query

import (
	"context"
	"strings"
)

const (
	// maxKeyTerms is how many qualifying tokens feed the key-term variant.
	maxKeyTerms = 3
	// minTermLength is the exclusive lower bound on token length for a
	// token to count as a key term.
	minTermLength = 3
	// minKeyQueryLength is the exclusive lower bound on the joined
	// key-term variant's length for it to be included.
	minKeyQueryLength = 5
)

var _ Expander = (*HeuristicExpander)(nil)

// HeuristicExpander derives variants from the query text alone, without
// calling a model: a lowercase form, a key-term form, and a broadened
// OR-of-quoted-terms form.
type HeuristicExpander struct{}

// NewHeuristicExpander creates a new heuristic query expander.
func NewHeuristicExpander() *HeuristicExpander {
	return &HeuristicExpander{}
}

// Expand implements the Expander interface.
func (h *HeuristicExpander) Expand(ctx context.Context, query string) ([]string, error) {
	variants := []string{query}

	if lowered := strings.ToLower(query); lowered != query {
		variants = append(variants, lowered)
	}

	terms := keyTerms(query)
	if len(terms) > 0 {
		keyQuery := strings.Join(terms, " ")
		if keyQuery != query && len(keyQuery) > minKeyQueryLength {
			variants = append(variants, keyQuery)
		}

		quoted := make([]string, len(terms))
		for i, term := range terms {
			quoted[i] = `"` + term + `"`
		}
		variants = append(variants, strings.Join(quoted, " OR "))
	}

	return dedupe(variants), nil
}

// keyTerms returns up to maxKeyTerms whitespace-delimited tokens longer
// than minTermLength characters, in query order.
func keyTerms(query string) []string {
	var terms []string
	for _, token := range strings.Fields(query) {
		if len(token) > minTermLength {
			terms = append(terms, token)
			if len(terms) == maxKeyTerms {
				break
			}
		}
	}
	return terms
}

// dedupe removes duplicates while preserving first-seen order.
func dedupe(variants []string) []string {
	seen := make(map[string]struct{}, len(variants))
	result := make([]string, 0, len(variants))
	for _, v := range variants {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
