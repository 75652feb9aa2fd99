// Package ragengine grounds a conversational assistant in user-supplied
// documents: it ingests and indexes documents, retrieves the chunks
// most relevant to a query within a conversation's scope, and folds
// them into an augmented prompt.
package ragengine

import (
	"context"
	"errors"

	"github.com/docuchat/ragengine/chunking"
	"github.com/docuchat/ragengine/document"
	"github.com/docuchat/ragengine/document/parser"
	docxparser "github.com/docuchat/ragengine/document/parser/docx"
	mdparser "github.com/docuchat/ragengine/document/parser/markdown"
	pdfparser "github.com/docuchat/ragengine/document/parser/pdf"
	textparser "github.com/docuchat/ragengine/document/parser/text"
	"github.com/docuchat/ragengine/embedder"
	"github.com/docuchat/ragengine/ingest"
	"github.com/docuchat/ragengine/prompt"
	"github.com/docuchat/ragengine/query"
	"github.com/docuchat/ragengine/reranker"
	"github.com/docuchat/ragengine/retriever"
	"github.com/docuchat/ragengine/store"
	storeinmem "github.com/docuchat/ragengine/store/inmemory"
	"github.com/docuchat/ragengine/vectorstore"
	vecinmem "github.com/docuchat/ragengine/vectorstore/inmemory"
)

// ErrNoEmbedder indicates the engine was built without an embedder.
var ErrNoEmbedder = errors.New("no embedder configured")

// Engine wires the ingestion pipeline, the retriever and the prompt
// augmenter over shared storage. The zero configuration uses in-memory
// storage and the default parsers; an embedder must always be supplied.
type Engine struct {
	store       store.Store
	embedder    embedder.Embedder
	vectorStore vectorstore.VectorStore
	parsers     *parser.Registry
	chunking    chunking.Strategy
	expander    query.Expander
	reranker    reranker.Reranker
	retriever   retriever.Retriever
	augmenter   *prompt.Augmenter
	pipeline    *ingest.Pipeline
	ingestOpts  []ingest.Option
}

// Option represents a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore sets the entity store.
func WithStore(s store.Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithEmbedder sets the embedder used for both chunks and queries.
func WithEmbedder(em embedder.Embedder) Option {
	return func(e *Engine) {
		e.embedder = em
	}
}

// WithVectorStore sets the similarity index.
func WithVectorStore(vs vectorstore.VectorStore) Option {
	return func(e *Engine) {
		e.vectorStore = vs
	}
}

// WithParserRegistry replaces the default parser registry.
func WithParserRegistry(r *parser.Registry) Option {
	return func(e *Engine) {
		e.parsers = r
	}
}

// WithChunking sets the chunking strategy.
func WithChunking(s chunking.Strategy) Option {
	return func(e *Engine) {
		e.chunking = s
	}
}

// WithQueryExpander sets a custom query expander (optional).
func WithQueryExpander(ex query.Expander) Option {
	return func(e *Engine) {
		e.expander = ex
	}
}

// WithReranker sets a custom reranker (optional).
func WithReranker(r reranker.Reranker) Option {
	return func(e *Engine) {
		e.reranker = r
	}
}

// WithRetriever sets a custom retriever, bypassing the default
// pipeline assembly (optional).
func WithRetriever(r retriever.Retriever) Option {
	return func(e *Engine) {
		e.retriever = r
	}
}

// WithAugmenter sets a custom prompt augmenter (optional).
func WithAugmenter(a *prompt.Augmenter) Option {
	return func(e *Engine) {
		e.augmenter = a
	}
}

// WithIngestOptions forwards extra options to the ingestion pipeline,
// such as a custom content opener or embedding batch size.
func WithIngestOptions(opts ...ingest.Option) Option {
	return func(e *Engine) {
		e.ingestOpts = append(e.ingestOpts, opts...)
	}
}

// New creates an engine from the given options. An embedder is
// required; everything else has a working default.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.embedder == nil {
		return nil, ErrNoEmbedder
	}
	if e.store == nil {
		e.store = storeinmem.New()
	}
	if e.vectorStore == nil {
		e.vectorStore = vecinmem.New()
	}
	if e.parsers == nil {
		e.parsers = DefaultParserRegistry()
	}
	if e.chunking == nil {
		e.chunking = chunking.NewFixedSizeChunking()
	}
	if e.expander == nil {
		e.expander = query.NewHeuristicExpander()
	}
	if e.reranker == nil {
		e.reranker = reranker.NewKeywordReranker()
	}
	if e.augmenter == nil {
		e.augmenter = prompt.New()
	}
	if e.retriever == nil {
		e.retriever = retriever.New(
			retriever.WithStore(e.store),
			retriever.WithEmbedder(e.embedder),
			retriever.WithVectorStore(e.vectorStore),
			retriever.WithExpander(e.expander),
			retriever.WithReranker(e.reranker),
		)
	}

	pipelineOpts := append([]ingest.Option{
		ingest.WithStore(e.store),
		ingest.WithParserRegistry(e.parsers),
		ingest.WithChunking(e.chunking),
		ingest.WithEmbedder(e.embedder),
		ingest.WithVectorStore(e.vectorStore),
	}, e.ingestOpts...)
	e.pipeline = ingest.New(pipelineOpts...)

	return e, nil
}

// DefaultParserRegistry returns a registry with the built-in parsers
// for plain text, markdown, PDF and DOCX.
func DefaultParserRegistry() *parser.Registry {
	reg := parser.NewRegistry()
	reg.Register(document.KindText, textparser.New())
	reg.Register(document.KindMarkdown, mdparser.New())
	reg.Register(document.KindPDF, pdfparser.New())
	reg.Register(document.KindDOCX, docxparser.New())
	return reg
}

// ProcessDocument parses, chunks, embeds and indexes one document.
func (e *Engine) ProcessDocument(ctx context.Context, doc *document.Document) error {
	return e.pipeline.ProcessDocument(ctx, doc)
}

// ProcessDocuments processes documents strictly in order, stopping at
// the first failure.
func (e *Engine) ProcessDocuments(ctx context.Context, docs []*document.Document) error {
	return e.pipeline.ProcessDocuments(ctx, docs)
}

// RetrieveContext returns the chunks most relevant to the query within
// the conversation's document scope.
func (e *Engine) RetrieveContext(ctx context.Context, q, conversationID string, opts ...retriever.RetrieveOption) ([]*retriever.RetrievedChunk, error) {
	return e.retriever.RetrieveContext(ctx, q, conversationID, opts...)
}

// AugmentPrompt retrieves context for the user message and folds it
// into an augmented prompt. With an empty scope or no relevant chunks
// the message is returned unchanged.
func (e *Engine) AugmentPrompt(ctx context.Context, userMessage, conversationID string, opts ...retriever.RetrieveOption) (string, error) {
	chunks, err := e.RetrieveContext(ctx, userMessage, conversationID, opts...)
	if err != nil {
		return "", err
	}
	return e.augmenter.Augment(userMessage, chunks), nil
}

// AddDocumentToConversation brings a document into the conversation's
// retrieval scope. Duplicate associations are not rejected.
func (e *Engine) AddDocumentToConversation(ctx context.Context, documentID, conversationID string) error {
	assoc := &document.ConversationDocument{
		ConversationID: conversationID,
		DocumentID:     documentID,
	}
	if err := e.store.InsertConversationDocument(ctx, assoc); err != nil {
		return err
	}
	return e.store.Save(ctx)
}

// RemoveDocumentFromConversation removes the first association matching
// the pair. Removing an absent association is not an error.
func (e *Engine) RemoveDocumentFromConversation(ctx context.Context, documentID, conversationID string) error {
	if err := e.store.DeleteConversationDocument(ctx, conversationID, documentID); err != nil {
		return err
	}
	return e.store.Save(ctx)
}

// GetConversationDocuments returns the association rows for the
// conversation in insertion order.
func (e *Engine) GetConversationDocuments(ctx context.Context, conversationID string) ([]*document.ConversationDocument, error) {
	return e.store.ListConversationDocuments(ctx, conversationID)
}

// DeleteDocument removes a document everywhere: store rows (cascading
// to chunks and associations) and indexed vectors.
func (e *Engine) DeleteDocument(ctx context.Context, documentID string) error {
	if err := e.store.DeleteDocument(ctx, documentID); err != nil {
		return err
	}
	if err := e.vectorStore.DeleteByDocument(ctx, documentID); err != nil {
		return err
	}
	return e.store.Save(ctx)
}

// GetDocument returns the document with the given ID.
func (e *Engine) GetDocument(ctx context.Context, documentID string) (*document.Document, error) {
	return e.store.GetDocument(ctx, documentID)
}

// ListDocuments returns all registered documents.
func (e *Engine) ListDocuments(ctx context.Context) ([]*document.Document, error) {
	return e.store.ListDocuments(ctx)
}

// Close releases the engine's resources.
func (e *Engine) Close() error {
	var errs []error
	if err := e.retriever.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := e.vectorStore.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := e.store.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
