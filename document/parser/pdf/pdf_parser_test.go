package pdf

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPDF programmatically generates a small PDF containing the given
// text. Generating ensures the file is well-formed and parsable by
// ledongthuc/pdf, avoiding brittle handcrafted bytes.
func newTestPDF(t *testing.T, text string) []byte {
	t.Helper()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	doc.AddPage()
	doc.Cell(40, 10, text)

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf), "failed to generate test PDF")
	return buf.Bytes()
}

func TestParser_Parse(t *testing.T) {
	data := newTestPDF(t, "Hello World")

	p := New()
	text, err := p.Parse(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Contains(t, text, "Hello World")
}

func TestParser_ParseNonSeekableReader(t *testing.T) {
	data := newTestPDF(t, "Streamed content")

	// Wrap in a reader that is neither an io.ReaderAt nor seekable, to
	// force the buffering path.
	p := New()
	text, err := p.Parse(context.Background(), io.NopCloser(bytes.NewReader(data)))
	require.NoError(t, err)
	assert.Contains(t, text, "Streamed content")
}

func TestParser_ParseCorrupt(t *testing.T) {
	p := New()
	_, err := p.Parse(context.Background(), strings.NewReader("not a pdf at all"))
	require.Error(t, err)
}

func TestParser_Name(t *testing.T) {
	assert.Equal(t, "PDFParser", New().Name())
}
