// Package store provides interfaces for persisting documents, chunks and
// conversation-document associations.
package store

import (
	"context"
	"errors"

	"github.com/docuchat/ragengine/document"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("entity not found")

// Store defines the persistence contract the engine relies on. All
// back-references between entities are identifier lookups resolved
// through this interface, never object pointers.
//
// Implementations are expected to be used from a single serialized
// writer; concurrent reads are safe.
type Store interface {
	// GetDocument returns the document with the given ID, or ErrNotFound.
	GetDocument(ctx context.Context, id string) (*document.Document, error)

	// ListDocuments returns all documents.
	ListDocuments(ctx context.Context) ([]*document.Document, error)

	// InsertDocument adds a new document.
	InsertDocument(ctx context.Context, doc *document.Document) error

	// UpdateDocument replaces the stored document with the same ID.
	UpdateDocument(ctx context.Context, doc *document.Document) error

	// DeleteDocument removes a document, cascading to its chunks and
	// conversation associations.
	DeleteDocument(ctx context.Context, id string) error

	// GetChunk returns the chunk with the given ID, or ErrNotFound.
	GetChunk(ctx context.Context, id string) (*document.Chunk, error)

	// ListChunksByDocument returns a document's chunks ordered by index.
	ListChunksByDocument(ctx context.Context, documentID string) ([]*document.Chunk, error)

	// InsertChunks adds chunk rows.
	InsertChunks(ctx context.Context, chunks []*document.Chunk) error

	// DeleteChunksByDocument removes all chunks owned by a document.
	DeleteChunksByDocument(ctx context.Context, documentID string) error

	// ListConversationDocuments returns the association rows for a
	// conversation, in insertion order.
	ListConversationDocuments(ctx context.Context, conversationID string) ([]*document.ConversationDocument, error)

	// InsertConversationDocument adds an association row. Duplicate pairs
	// are not rejected.
	InsertConversationDocument(ctx context.Context, assoc *document.ConversationDocument) error

	// DeleteConversationDocument removes the first association row
	// matching the pair. Removing an absent pair is not an error.
	DeleteConversationDocument(ctx context.Context, conversationID, documentID string) error

	// Save commits pending writes. Implementations with immediate writes
	// may treat this as a flush.
	Save(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}
