// Package ingest implements the document processing pipeline: parse,
// chunk, embed and index.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/docuchat/ragengine/chunking"
	"github.com/docuchat/ragengine/document"
	"github.com/docuchat/ragengine/document/parser"
	"github.com/docuchat/ragengine/embedder"
	"github.com/docuchat/ragengine/log"
	"github.com/docuchat/ragengine/store"
	"github.com/docuchat/ragengine/vectorstore"
)

// DefaultEmbedBatchSize is the number of chunk texts sent per embedding
// request.
const DefaultEmbedBatchSize = 10

// Opener supplies the raw content of a document. The default opener
// reads the document's locator as a filesystem path.
type Opener func(ctx context.Context, doc *document.Document) (io.ReadCloser, error)

// Pipeline turns an imported document into indexed chunks.
type Pipeline struct {
	store       store.Store
	parsers     *parser.Registry
	chunking    chunking.Strategy
	embedder    embedder.Embedder
	vectorStore vectorstore.VectorStore
	opener      Opener
	batchSize   int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStore sets the entity store.
func WithStore(s store.Store) Option {
	return func(p *Pipeline) {
		p.store = s
	}
}

// WithParserRegistry sets the parser registry used to pick a parser by
// document kind.
func WithParserRegistry(r *parser.Registry) Option {
	return func(p *Pipeline) {
		p.parsers = r
	}
}

// WithChunking sets the chunking strategy.
func WithChunking(s chunking.Strategy) Option {
	return func(p *Pipeline) {
		p.chunking = s
	}
}

// WithEmbedder sets the embedder used for chunk embeddings.
func WithEmbedder(e embedder.Embedder) Option {
	return func(p *Pipeline) {
		p.embedder = e
	}
}

// WithVectorStore sets the similarity index to write to.
func WithVectorStore(vs vectorstore.VectorStore) Option {
	return func(p *Pipeline) {
		p.vectorStore = vs
	}
}

// WithOpener overrides how document content is opened.
func WithOpener(o Opener) Option {
	return func(p *Pipeline) {
		p.opener = o
	}
}

// WithEmbedBatchSize sets the embedding batch size. Values below one
// are ignored.
func WithEmbedBatchSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// New creates a pipeline from the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		chunking:  chunking.NewFixedSizeChunking(),
		opener:    fileOpener,
		batchSize: DefaultEmbedBatchSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// fileOpener treats the document locator as a filesystem path.
func fileOpener(ctx context.Context, doc *document.Document) (io.ReadCloser, error) {
	return os.Open(doc.Locator)
}

// ProcessDocument runs the full pipeline for one document: parse,
// chunk, embed in batches and index. The document's status is updated
// before and after, and set to failed on any error. Chunks created
// before a failure are not rolled back; a later successful run clears
// them first.
func (p *Pipeline) ProcessDocument(ctx context.Context, doc *document.Document) error {
	if err := p.markProcessing(ctx, doc); err != nil {
		return err
	}

	if err := p.process(ctx, doc); err != nil {
		doc.Status = document.StatusFailed
		if updateErr := p.store.UpdateDocument(ctx, doc); updateErr != nil {
			log.Errorf("ingest: failed to record failure for document %s: %v", doc.ID, updateErr)
		}
		if saveErr := p.store.Save(ctx); saveErr != nil {
			log.Errorf("ingest: failed to save after failure for document %s: %v", doc.ID, saveErr)
		}
		return fmt.Errorf("process document %s: %w", doc.ID, err)
	}

	now := time.Now()
	doc.Status = document.StatusProcessed
	doc.ProcessedAt = &now
	if err := p.store.UpdateDocument(ctx, doc); err != nil {
		return err
	}
	return p.store.Save(ctx)
}

// ProcessDocuments processes documents strictly in order. The first
// failure stops the run; remaining documents are left untouched.
func (p *Pipeline) ProcessDocuments(ctx context.Context, docs []*document.Document) error {
	for _, doc := range docs {
		if err := p.ProcessDocument(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// markProcessing transitions the document into the processing state,
// inserting the row when it does not exist yet.
func (p *Pipeline) markProcessing(ctx context.Context, doc *document.Document) error {
	doc.Status = document.StatusProcessing
	err := p.store.UpdateDocument(ctx, doc)
	if errors.Is(err, store.ErrNotFound) {
		err = p.store.InsertDocument(ctx, doc)
	}
	if err != nil {
		return err
	}
	return p.store.Save(ctx)
}

// process performs the fallible middle of the pipeline.
func (p *Pipeline) process(ctx context.Context, doc *document.Document) error {
	// A previous failed run may have left chunks behind.
	if err := p.store.DeleteChunksByDocument(ctx, doc.ID); err != nil {
		return err
	}
	if err := p.vectorStore.DeleteByDocument(ctx, doc.ID); err != nil {
		return err
	}

	text, err := p.parse(ctx, doc)
	if err != nil {
		return err
	}

	texts, err := p.chunking.Chunk(text)
	if err != nil {
		return err
	}

	chunks := chunking.CreateChunks(doc.ID, texts)
	if err := p.store.InsertChunks(ctx, chunks); err != nil {
		return err
	}

	if err := p.index(ctx, chunks); err != nil {
		return err
	}

	doc.ChunkCount = len(chunks)
	log.Infof("ingest: document %s processed into %d chunks", doc.ID, len(chunks))
	return nil
}

// parse opens the document content and extracts its plain text.
func (p *Pipeline) parse(ctx context.Context, doc *document.Document) (string, error) {
	psr, ok := p.parsers.Get(doc.Kind)
	if !ok {
		return "", fmt.Errorf("%w: %s", parser.ErrUnsupportedKind, doc.Kind)
	}

	content, err := p.opener(ctx, doc)
	if err != nil {
		return "", err
	}
	defer content.Close()

	text, err := psr.Parse(ctx, content)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", parser.ErrEmptyContent, doc.Name)
	}
	return text, nil
}

// index embeds chunk texts in fixed-size batches and stores each
// (chunk, vector) pair sequentially within its batch.
func (p *Pipeline) index(ctx context.Context, chunks []*document.Chunk) error {
	for start := 0; start < len(chunks); start += p.batchSize {
		end := start + p.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Text
		}

		embeddings, err := p.embedder.GetEmbeddings(ctx, texts)
		if err != nil {
			return err
		}

		for i, chunk := range batch {
			if err := p.vectorStore.Store(ctx, chunk.ID, chunk.DocumentID, chunk.Text, embeddings[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
