package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"notes.txt", KindText},
		{"NOTES.TXT", KindText},
		{"journal.log", KindText},
		{"readme.md", KindMarkdown},
		{"readme.markdown", KindMarkdown},
		{"paper.pdf", KindPDF},
		{"contract.docx", KindDOCX},
		{"archive.zip", KindUnknown},
		{"noext", KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindFromPath(tt.path), "path %q", tt.path)
	}
}

func TestNewDocument(t *testing.T) {
	doc := New("report", "/data/report.pdf", KindPDF, 2048)

	require.NotEmpty(t, doc.ID)
	assert.Equal(t, "report", doc.Name)
	assert.Equal(t, "/data/report.pdf", doc.Locator)
	assert.Equal(t, KindPDF, doc.Kind)
	assert.Equal(t, int64(2048), doc.SizeBytes)
	assert.Equal(t, StatusImported, doc.Status)
	assert.False(t, doc.CreatedAt.IsZero())
	assert.Nil(t, doc.ProcessedAt)
	assert.Zero(t, doc.ChunkCount)

	other := New("report", "/data/report.pdf", KindPDF, 2048)
	assert.NotEqual(t, doc.ID, other.ID)
}

func TestDocumentClone(t *testing.T) {
	at := time.Now().UTC()
	doc := &Document{
		ID:          "d1",
		Name:        "report",
		Status:      StatusProcessed,
		ProcessedAt: &at,
		ChunkCount:  3,
	}

	clone := doc.Clone()
	require.NotSame(t, doc, clone)
	assert.Equal(t, doc, clone)

	// Mutating the clone's ProcessedAt must not affect the original.
	*clone.ProcessedAt = clone.ProcessedAt.Add(time.Hour)
	assert.Equal(t, at, *doc.ProcessedAt)

	var nilDoc *Document
	assert.Nil(t, nilDoc.Clone())
}

func TestChunk(t *testing.T) {
	c := &Chunk{ID: "c1", DocumentID: "d1", Text: "hello", Index: 0}
	assert.False(t, c.IsEmpty())

	clone := c.Clone()
	require.NotSame(t, c, clone)
	assert.Equal(t, c, clone)

	assert.True(t, (&Chunk{}).IsEmpty())
	var nilChunk *Chunk
	assert.True(t, nilChunk.IsEmpty())
	assert.Nil(t, nilChunk.Clone())
}
