package query

import "context"

var _ Expander = (*PassthroughExpander)(nil)

// PassthroughExpander returns the original query as the only variant.
type PassthroughExpander struct{}

// NewPassthroughExpander creates a new passthrough query expander.
func NewPassthroughExpander() *PassthroughExpander {
	return &PassthroughExpander{}
}

// Expand implements the Expander interface.
func (p *PassthroughExpander) Expand(ctx context.Context, query string) ([]string, error) {
	return []string{query}, nil
}
