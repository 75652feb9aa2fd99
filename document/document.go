// Package document defines the entities managed by the retrieval engine:
// documents, their chunks, and conversation-document associations.
package document

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status describes where a document is in the processing lifecycle.
type Status string

// Document lifecycle statuses.
const (
	// StatusImported means the document has been registered but not processed.
	StatusImported Status = "imported"
	// StatusProcessing means the document is currently being parsed,
	// chunked and indexed.
	StatusProcessing Status = "processing"
	// StatusProcessed means the document was chunked and indexed successfully.
	StatusProcessed Status = "processed"
	// StatusFailed means processing terminated with an error. The document
	// must be resubmitted wholesale; there is no partial resume.
	StatusFailed Status = "failed"
)

// Kind identifies the file format of a document.
type Kind string

// Supported document kinds.
const (
	KindText     Kind = "text"
	KindMarkdown Kind = "markdown"
	KindPDF      Kind = "pdf"
	KindDOCX     Kind = "docx"
	KindUnknown  Kind = "unknown"
)

// KindFromPath derives the document kind from a file path extension.
func KindFromPath(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", ".log":
		return KindText
	case ".md", ".markdown":
		return KindMarkdown
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	default:
		return KindUnknown
	}
}

// Document represents a user-supplied document registered with the engine.
type Document struct {
	// ID is the unique identifier of the document.
	ID string `json:"id"`

	// Name is the display name of the document.
	Name string `json:"name"`

	// Locator points at the stored raw content (usually a file path).
	Locator string `json:"locator"`

	// Kind is the file format of the document.
	Kind Kind `json:"kind"`

	// SizeBytes is the raw content size in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// Status is the processing lifecycle status.
	Status Status `json:"status"`

	// CreatedAt is when the document was registered.
	CreatedAt time.Time `json:"created_at"`

	// ProcessedAt is when processing last succeeded, nil otherwise.
	ProcessedAt *time.Time `json:"processed_at,omitempty"`

	// ChunkCount is the number of chunks created by the last successful
	// processing run. It is authoritative only while Status is processed.
	ChunkCount int `json:"chunk_count"`
}

// New creates a document in the imported state with a generated ID.
func New(name, locator string, kind Kind, sizeBytes int64) *Document {
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		Locator:   locator,
		Kind:      kind,
		SizeBytes: sizeBytes,
		Status:    StatusImported,
		CreatedAt: time.Now().UTC(),
	}
}

// Clone creates a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	clone := *d
	if d.ProcessedAt != nil {
		at := *d.ProcessedAt
		clone.ProcessedAt = &at
	}
	return &clone
}

// Chunk is a contiguous slice of a document's text, the unit of embedding
// and retrieval. Text is immutable once the chunk is created.
type Chunk struct {
	// ID is the unique identifier of the chunk.
	ID string `json:"id"`

	// DocumentID references the owning document. This is a lookup key,
	// not an object reference; the document may be deleted independently.
	DocumentID string `json:"document_id"`

	// Text is the chunk content.
	Text string `json:"text"`

	// Index is the zero-based position of the chunk within its document.
	// Indices are contiguous and unique per document.
	Index int `json:"index"`
}

// Clone creates a copy of the chunk.
func (c *Chunk) Clone() *Chunk {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// IsEmpty reports whether the chunk has no content.
func (c *Chunk) IsEmpty() bool {
	return c == nil || c.Text == ""
}

// ConversationDocument associates a document with a conversation,
// defining the conversation's retrieval scope. The relation is
// many-to-many and this layer does not enforce pair uniqueness.
type ConversationDocument struct {
	// ConversationID identifies the conversation.
	ConversationID string `json:"conversation_id"`

	// DocumentID identifies the associated document.
	DocumentID string `json:"document_id"`
}
