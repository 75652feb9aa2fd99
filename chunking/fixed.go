package chunking

// FixedSizeChunking implements a chunking strategy that splits text into
// fixed-size chunks with optional overlap.
type FixedSizeChunking struct {
	chunkSize int
	overlap   int
}

// Option represents a functional option for configuring FixedSizeChunking.
type Option func(*FixedSizeChunking)

// WithChunkSize sets the maximum size of each chunk in bytes.
func WithChunkSize(size int) Option {
	return func(fsc *FixedSizeChunking) {
		fsc.chunkSize = size
	}
}

// WithOverlap sets the number of bytes to overlap between chunks.
func WithOverlap(overlap int) Option {
	return func(fsc *FixedSizeChunking) {
		fsc.overlap = overlap
	}
}

// NewFixedSizeChunking creates a new fixed-size chunking strategy with options.
func NewFixedSizeChunking(opts ...Option) *FixedSizeChunking {
	fsc := &FixedSizeChunking{
		chunkSize: defaultChunkSize,
		overlap:   defaultOverlap,
	}
	for _, opt := range opts {
		opt(fsc)
	}
	if fsc.chunkSize <= 0 {
		fsc.chunkSize = defaultChunkSize
	}
	if fsc.overlap < 0 {
		fsc.overlap = 0
	}
	if fsc.overlap >= fsc.chunkSize {
		fsc.overlap = min(defaultOverlap, fsc.chunkSize-1)
	}
	return fsc
}

// Chunk splits the text into fixed-size chunks with optional overlap.
func (f *FixedSizeChunking) Chunk(text string) ([]string, error) {
	content := cleanText(text)
	if content == "" {
		return nil, ErrEmptyText
	}

	contentLength := len(content)

	// If content is smaller than chunk size, return as single chunk.
	if contentLength <= f.chunkSize {
		return []string{content}, nil
	}

	var chunks []string
	start := 0

	for start+f.overlap < contentLength {
		end := min(start+f.chunkSize, contentLength)

		// Try to find a good break point (whitespace) to avoid splitting words.
		if end < contentLength {
			breakPoint := f.findBreakPoint(content, start, end)
			// Ensure the break point actually advances beyond the current
			// overlap window; otherwise keep the original end to guarantee
			// forward progress.
			if breakPoint != -1 && breakPoint-start > f.overlap {
				end = breakPoint
			}
		}

		// Guard against a break point so close to start that the cursor
		// would not advance, which would loop forever.
		if end-start <= f.overlap {
			end = min(start+f.chunkSize, contentLength)
		}

		chunks = append(chunks, content[start:end])

		if end == contentLength {
			break
		}
		start = end - f.overlap
	}
	return chunks, nil
}

// findBreakPoint looks for a suitable break point near the target position.
func (f *FixedSizeChunking) findBreakPoint(content string, start, targetEnd int) int {
	// Search backwards from target end to find whitespace.
	for i := targetEnd - 1; i > start; i-- {
		if isWhitespace(rune(content[i])) {
			return i + 1 // Position after the whitespace.
		}
	}
	return -1
}

// isWhitespace checks if a character is considered whitespace.
func isWhitespace(char rune) bool {
	return char == ' ' || char == '\n' || char == '\r' || char == '\t'
}
