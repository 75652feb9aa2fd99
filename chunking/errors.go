package chunking

import "errors"

var (
	// ErrInvalidChunkSize indicates that the chunk size is invalid.
	ErrInvalidChunkSize = errors.New("chunk size must be greater than 0")

	// ErrEmptyText indicates that there is no content to chunk.
	ErrEmptyText = errors.New("text is empty")
)
