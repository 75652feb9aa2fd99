package parser

import (
	"sync"

	"github.com/docuchat/ragengine/document"
)

// Registry maps document kinds to parsers.
type Registry struct {
	mu      sync.RWMutex
	parsers map[document.Kind]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[document.Kind]Parser)}
}

// Register registers a parser for the given document kind, replacing any
// previous registration.
func (r *Registry) Register(kind document.Kind, p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[kind] = p
}

// Get returns the parser registered for the given kind.
func (r *Registry) Get(kind document.Kind) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[kind]
	return p, ok
}

// Kinds returns all registered document kinds.
func (r *Registry) Kinds() []document.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]document.Kind, 0, len(r.parsers))
	for k := range r.parsers {
		kinds = append(kinds, k)
	}
	return kinds
}
