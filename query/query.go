// Package query provides query expansion for retrieval.
package query

import "context"

// Expander derives a set of query variants from one user query to
// broaden recall.
type Expander interface {
	// Expand returns a deduplicated, order-preserving list of query
	// variants. The original query is always the first element.
	Expand(ctx context.Context, query string) ([]string, error)
}
