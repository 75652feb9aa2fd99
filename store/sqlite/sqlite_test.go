package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat/ragengine/document"
	"github.com/docuchat/ragengine/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "ragengine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newDoc(id, name string) *document.Document {
	return &document.Document{
		ID:        id,
		Name:      name,
		Locator:   "/tmp/" + name,
		Kind:      document.KindMarkdown,
		SizeBytes: 42,
		Status:    document.StatusImported,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestStore_DocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	doc := newDoc("d1", "notes.md")
	require.NoError(t, s.InsertDocument(ctx, doc))

	got, err := s.GetDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, doc.Name, got.Name)
	assert.Equal(t, doc.Kind, got.Kind)
	assert.Equal(t, doc.Status, got.Status)
	assert.Equal(t, doc.SizeBytes, got.SizeBytes)
	assert.Nil(t, got.ProcessedAt)

	at := time.Now().UTC().Truncate(time.Millisecond)
	doc.Status = document.StatusProcessed
	doc.ProcessedAt = &at
	doc.ChunkCount = 7
	require.NoError(t, s.UpdateDocument(ctx, doc))

	got, err = s.GetDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, document.StatusProcessed, got.Status)
	require.NotNil(t, got.ProcessedAt)
	assert.True(t, got.ProcessedAt.Equal(at))
	assert.Equal(t, 7, got.ChunkCount)

	_, err = s.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.UpdateDocument(ctx, newDoc("missing", "x")), store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteDocument(ctx, "missing"), store.ErrNotFound)
}

func TestStore_ListDocuments(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first := newDoc("d1", "a.md")
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	second := newDoc("d2", "b.md")
	require.NoError(t, s.InsertDocument(ctx, second))
	require.NoError(t, s.InsertDocument(ctx, first))

	docs, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "d1", docs[0].ID)
	assert.Equal(t, "d2", docs[1].ID)
}

func TestStore_Chunks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.InsertDocument(ctx, newDoc("d1", "a.md")))
	require.NoError(t, s.InsertChunks(ctx, []*document.Chunk{
		{ID: "c2", DocumentID: "d1", Text: "second", Index: 1},
		{ID: "c1", DocumentID: "d1", Text: "first", Index: 0},
	}))

	chunk, err := s.GetChunk(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, "second", chunk.Text)
	assert.Equal(t, 1, chunk.Index)

	chunks, err := s.ListChunksByDocument(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "c1", chunks[0].ID)
	assert.Equal(t, "c2", chunks[1].ID)

	require.NoError(t, s.DeleteChunksByDocument(ctx, "d1"))
	chunks, err = s.ListChunksByDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	_, err = s.GetChunk(ctx, "c1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Empty insert is a no-op.
	require.NoError(t, s.InsertChunks(ctx, nil))
}

func TestStore_DeleteDocumentCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.InsertDocument(ctx, newDoc("d1", "a.md")))
	require.NoError(t, s.InsertChunks(ctx, []*document.Chunk{
		{ID: "c1", DocumentID: "d1", Text: "x", Index: 0},
	}))
	require.NoError(t, s.InsertConversationDocument(ctx, &document.ConversationDocument{
		ConversationID: "conv", DocumentID: "d1",
	}))

	require.NoError(t, s.DeleteDocument(ctx, "d1"))

	_, err := s.GetChunk(ctx, "c1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assocs, err := s.ListConversationDocuments(ctx, "conv")
	require.NoError(t, err)
	assert.Empty(t, assocs)
}

func TestStore_AssociationsDuplicatesAndOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.InsertDocument(ctx, newDoc("d1", "a.md")))
	require.NoError(t, s.InsertDocument(ctx, newDoc("d2", "b.md")))

	add := func(conv, doc string) {
		require.NoError(t, s.InsertConversationDocument(ctx, &document.ConversationDocument{
			ConversationID: conv, DocumentID: doc,
		}))
	}
	add("conv1", "d1")
	add("conv1", "d2")
	add("conv1", "d1")

	assocs, err := s.ListConversationDocuments(ctx, "conv1")
	require.NoError(t, err)
	require.Len(t, assocs, 3)
	assert.Equal(t, "d1", assocs[0].DocumentID)
	assert.Equal(t, "d2", assocs[1].DocumentID)
	assert.Equal(t, "d1", assocs[2].DocumentID)

	// One row removed per delete, earliest first.
	require.NoError(t, s.DeleteConversationDocument(ctx, "conv1", "d1"))
	assocs, err = s.ListConversationDocuments(ctx, "conv1")
	require.NoError(t, err)
	require.Len(t, assocs, 2)
	assert.Equal(t, "d2", assocs[0].DocumentID)
	assert.Equal(t, "d1", assocs[1].DocumentID)

	// Absent pair is a no-op.
	require.NoError(t, s.DeleteConversationDocument(ctx, "conv1", "absent"))

	require.NoError(t, s.Save(ctx))
}

func TestStore_Path(t *testing.T) {
	s := newTestStore(t)
	assert.NotEmpty(t, s.Path())
}
