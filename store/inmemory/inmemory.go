// Package inmemory provides an in-memory document store implementation.
package inmemory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/docuchat/ragengine/document"
	"github.com/docuchat/ragengine/store"
)

var (
	// errDocumentCannotBeNil is the error when the document is nil.
	errDocumentCannotBeNil = errors.New("document cannot be nil")
	// errDocumentIDCannotBeEmpty is the error when the document ID is empty.
	errDocumentIDCannotBeEmpty = errors.New("document ID cannot be empty")
	// errChunkIDCannotBeEmpty is the error when a chunk ID is empty.
	errChunkIDCannotBeEmpty = errors.New("chunk ID cannot be empty")
	// errAssociationCannotBeNil is the error when the association is nil.
	errAssociationCannotBeNil = errors.New("association cannot be nil")
)

var _ store.Store = (*Store)(nil)

// Store implements store.Store using in-memory maps.
type Store struct {
	mutex        sync.RWMutex
	documents    map[string]*document.Document
	chunks       map[string]*document.Chunk
	associations []*document.ConversationDocument
}

// New creates a new in-memory document store.
func New() *Store {
	return &Store{
		documents: make(map[string]*document.Document),
		chunks:    make(map[string]*document.Chunk),
	}
}

// GetDocument implements store.Store interface.
func (s *Store) GetDocument(ctx context.Context, id string) (*document.Document, error) {
	if id == "" {
		return nil, errDocumentIDCannotBeEmpty
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return doc.Clone(), nil
}

// ListDocuments implements store.Store interface.
func (s *Store) ListDocuments(ctx context.Context) ([]*document.Document, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	docs := make([]*document.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc.Clone())
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs, nil
}

// InsertDocument implements store.Store interface.
func (s *Store) InsertDocument(ctx context.Context, doc *document.Document) error {
	if doc == nil {
		return errDocumentCannotBeNil
	}
	if doc.ID == "" {
		return errDocumentIDCannotBeEmpty
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.documents[doc.ID] = doc.Clone()
	return nil
}

// UpdateDocument implements store.Store interface.
func (s *Store) UpdateDocument(ctx context.Context, doc *document.Document) error {
	if doc == nil {
		return errDocumentCannotBeNil
	}
	if doc.ID == "" {
		return errDocumentIDCannotBeEmpty
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.documents[doc.ID]; !ok {
		return store.ErrNotFound
	}
	s.documents[doc.ID] = doc.Clone()
	return nil
}

// DeleteDocument implements store.Store interface. Chunks and
// associations owned by the document are removed as well.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	if id == "" {
		return errDocumentIDCannotBeEmpty
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.documents[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.documents, id)
	s.deleteChunksLocked(id)

	kept := s.associations[:0]
	for _, assoc := range s.associations {
		if assoc.DocumentID != id {
			kept = append(kept, assoc)
		}
	}
	s.associations = kept
	return nil
}

// GetChunk implements store.Store interface.
func (s *Store) GetChunk(ctx context.Context, id string) (*document.Chunk, error) {
	if id == "" {
		return nil, errChunkIDCannotBeEmpty
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	chunk, ok := s.chunks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return chunk.Clone(), nil
}

// ListChunksByDocument implements store.Store interface.
func (s *Store) ListChunksByDocument(ctx context.Context, documentID string) ([]*document.Chunk, error) {
	if documentID == "" {
		return nil, errDocumentIDCannotBeEmpty
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var chunks []*document.Chunk
	for _, chunk := range s.chunks {
		if chunk.DocumentID == documentID {
			chunks = append(chunks, chunk.Clone())
		}
	}
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Index < chunks[j].Index
	})
	return chunks, nil
}

// InsertChunks implements store.Store interface.
func (s *Store) InsertChunks(ctx context.Context, chunks []*document.Chunk) error {
	for _, chunk := range chunks {
		if chunk == nil || chunk.ID == "" {
			return errChunkIDCannotBeEmpty
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, chunk := range chunks {
		s.chunks[chunk.ID] = chunk.Clone()
	}
	return nil
}

// DeleteChunksByDocument implements store.Store interface.
func (s *Store) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	if documentID == "" {
		return errDocumentIDCannotBeEmpty
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.deleteChunksLocked(documentID)
	return nil
}

func (s *Store) deleteChunksLocked(documentID string) {
	for id, chunk := range s.chunks {
		if chunk.DocumentID == documentID {
			delete(s.chunks, id)
		}
	}
}

// ListConversationDocuments implements store.Store interface.
func (s *Store) ListConversationDocuments(ctx context.Context, conversationID string) ([]*document.ConversationDocument, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var result []*document.ConversationDocument
	for _, assoc := range s.associations {
		if assoc.ConversationID == conversationID {
			copied := *assoc
			result = append(result, &copied)
		}
	}
	return result, nil
}

// InsertConversationDocument implements store.Store interface.
func (s *Store) InsertConversationDocument(ctx context.Context, assoc *document.ConversationDocument) error {
	if assoc == nil {
		return errAssociationCannotBeNil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	copied := *assoc
	s.associations = append(s.associations, &copied)
	return nil
}

// DeleteConversationDocument implements store.Store interface.
func (s *Store) DeleteConversationDocument(ctx context.Context, conversationID, documentID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, assoc := range s.associations {
		if assoc.ConversationID == conversationID && assoc.DocumentID == documentID {
			s.associations = append(s.associations[:i], s.associations[i+1:]...)
			return nil
		}
	}
	return nil
}

// Save implements store.Store interface. Writes are applied immediately,
// so there is nothing to flush.
func (s *Store) Save(ctx context.Context) error {
	return nil
}

// Close implements store.Store interface.
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.documents = make(map[string]*document.Document)
	s.chunks = make(map[string]*document.Chunk)
	s.associations = nil
	return nil
}
