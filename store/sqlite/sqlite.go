// Package sqlite provides a SQLite-backed document store implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docuchat/ragengine/document"
	"github.com/docuchat/ragengine/store"
)

var _ store.Store = (*Store)(nil)

// schema creates the tables the store relies on. Associations carry a
// rowid so duplicate (conversation, document) pairs can coexist and be
// deleted one at a time.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	locator      TEXT NOT NULL,
	kind         TEXT NOT NULL,
	size_bytes   INTEGER NOT NULL,
	status       TEXT NOT NULL,
	created_at   TIMESTAMP NOT NULL,
	processed_at TIMESTAMP,
	chunk_count  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS chunks (
	id          TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	content     TEXT NOT NULL,
	position    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks(document_id, position);

CREATE TABLE IF NOT EXISTS conversation_documents (
	conversation_id TEXT NOT NULL,
	document_id     TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_conv_docs ON conversation_documents(conversation_id);
`

// Store implements store.Store backed by a SQLite database file.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) a SQLite store at dbPath.
func NewStore(dbPath string) (*Store, error) {
	// WAL mode for better read concurrency; busy timeout to ride out
	// writer contention.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// GetDocument implements store.Store interface.
func (s *Store) GetDocument(ctx context.Context, id string) (*document.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, locator, kind, size_bytes, status, created_at, processed_at, chunk_count
		FROM documents WHERE id = ?
	`, id)
	return scanDocument(row)
}

// ListDocuments implements store.Store interface.
func (s *Store) ListDocuments(ctx context.Context) ([]*document.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, locator, kind, size_bytes, status, created_at, processed_at, chunk_count
		FROM documents ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []*document.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// InsertDocument implements store.Store interface.
func (s *Store) InsertDocument(ctx context.Context, doc *document.Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, name, locator, kind, size_bytes, status, created_at, processed_at, chunk_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Name, doc.Locator, string(doc.Kind), doc.SizeBytes,
		string(doc.Status), doc.CreatedAt, processedAt(doc), doc.ChunkCount)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// UpdateDocument implements store.Store interface.
func (s *Store) UpdateDocument(ctx context.Context, doc *document.Document) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET name = ?, locator = ?, kind = ?, size_bytes = ?, status = ?,
			created_at = ?, processed_at = ?, chunk_count = ?
		WHERE id = ?
	`, doc.Name, doc.Locator, string(doc.Kind), doc.SizeBytes,
		string(doc.Status), doc.CreatedAt, processedAt(doc), doc.ChunkCount, doc.ID)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteDocument implements store.Store interface. Chunks and
// associations cascade via foreign keys.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// GetChunk implements store.Store interface.
func (s *Store) GetChunk(ctx context.Context, id string) (*document.Chunk, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, content, position FROM chunks WHERE id = ?
	`, id)

	chunk := &document.Chunk{}
	err := row.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Text, &chunk.Index)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}
	return chunk, nil
}

// ListChunksByDocument implements store.Store interface.
func (s *Store) ListChunksByDocument(ctx context.Context, documentID string) ([]*document.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, content, position
		FROM chunks WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []*document.Chunk
	for rows.Next() {
		chunk := &document.Chunk{}
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Text, &chunk.Index); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return chunks, nil
}

// InsertChunks implements store.Store interface.
func (s *Store) InsertChunks(ctx context.Context, chunks []*document.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, content, position) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.Text, chunk.Index); err != nil {
			return fmt.Errorf("inserting chunk: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteChunksByDocument implements store.Store interface.
func (s *Store) DeleteChunksByDocument(ctx context.Context, documentID string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

// ListConversationDocuments implements store.Store interface.
func (s *Store) ListConversationDocuments(ctx context.Context, conversationID string) ([]*document.ConversationDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT conversation_id, document_id
		FROM conversation_documents WHERE conversation_id = ?
		ORDER BY rowid
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("querying associations: %w", err)
	}
	defer rows.Close()

	var assocs []*document.ConversationDocument
	for rows.Next() {
		assoc := &document.ConversationDocument{}
		if err := rows.Scan(&assoc.ConversationID, &assoc.DocumentID); err != nil {
			return nil, fmt.Errorf("scanning association: %w", err)
		}
		assocs = append(assocs, assoc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating associations: %w", err)
	}
	return assocs, nil
}

// InsertConversationDocument implements store.Store interface.
func (s *Store) InsertConversationDocument(ctx context.Context, assoc *document.ConversationDocument) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversation_documents (conversation_id, document_id) VALUES (?, ?)
	`, assoc.ConversationID, assoc.DocumentID)
	if err != nil {
		return fmt.Errorf("inserting association: %w", err)
	}
	return nil
}

// DeleteConversationDocument implements store.Store interface. Only the
// first matching row is removed so duplicate pairs are peeled off one at
// a time.
func (s *Store) DeleteConversationDocument(ctx context.Context, conversationID, documentID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM conversation_documents
		WHERE rowid = (
			SELECT rowid FROM conversation_documents
			WHERE conversation_id = ? AND document_id = ?
			ORDER BY rowid LIMIT 1
		)
	`, conversationID, documentID)
	if err != nil {
		return fmt.Errorf("deleting association: %w", err)
	}
	return nil
}

// Save implements store.Store interface. Writes are autocommitted, so a
// WAL checkpoint is the only remaining flush.
func (s *Store) Save(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(PASSIVE)"); err != nil {
		return fmt.Errorf("checkpointing: %w", err)
	}
	return nil
}

// Close implements store.Store interface.
func (s *Store) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*document.Document, error) {
	doc := &document.Document{}
	var kind, status string
	var processed sql.NullTime

	err := row.Scan(&doc.ID, &doc.Name, &doc.Locator, &kind, &doc.SizeBytes,
		&status, &doc.CreatedAt, &processed, &doc.ChunkCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Kind = document.Kind(kind)
	doc.Status = document.Status(status)
	if processed.Valid {
		at := processed.Time
		doc.ProcessedAt = &at
	}
	return doc, nil
}

func processedAt(doc *document.Document) any {
	if doc.ProcessedAt == nil {
		return nil
	}
	return doc.ProcessedAt.UTC()
}
