// Package prompt assembles retrieved chunks and the user's message into
// a single augmented prompt string.
package prompt

import (
	"fmt"
	"strings"

	"github.com/docuchat/ragengine/retriever"
)

// defaultTemplate wraps the document context and the user's message.
// The first %s receives the rendered chunks, the second the message.
const defaultTemplate = `You have access to the following documents. Use them to answer the question when relevant.

%s

Question: %s`

// Augmenter folds retrieved chunks into the user's message.
type Augmenter struct {
	template string
}

// Option configures an Augmenter.
type Option func(*Augmenter)

// WithTemplate overrides the instructional template. It must contain
// two %s verbs: document context first, user message second.
func WithTemplate(template string) Option {
	return func(a *Augmenter) {
		a.template = template
	}
}

// New creates an augmenter from the given options.
func New(opts ...Option) *Augmenter {
	a := &Augmenter{template: defaultTemplate}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Augment returns the user message combined with the retrieved chunks.
// With no chunks the message is returned unchanged.
func (a *Augmenter) Augment(userMessage string, chunks []*retriever.RetrievedChunk) string {
	if len(chunks) == 0 {
		return userMessage
	}

	rendered := make([]string, len(chunks))
	for i, chunk := range chunks {
		rendered[i] = fmt.Sprintf("From document '%s':\n%s", chunk.Document.Name, chunk.Chunk.Text)
	}
	context := strings.Join(rendered, "\n\n")

	return fmt.Sprintf(a.template, context, userMessage)
}
