package docx

import (
	"bytes"
	"context"
	"strings"
	"testing"

	godocx "github.com/gomutex/godocx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDocx builds a DOCX document with one paragraph per string.
func newTestDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	doc, err := godocx.NewDocument()
	require.NoError(t, err)
	for _, text := range paragraphs {
		doc.AddParagraph(text)
	}

	var buf bytes.Buffer
	_, err = doc.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParse_SingleParagraph(t *testing.T) {
	data := newTestDocx(t, "Hello from the word processor")

	text, err := New().Parse(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Contains(t, text, "Hello from the word processor")
}

func TestParse_MultipleParagraphs(t *testing.T) {
	data := newTestDocx(t, "First section", "Second section")

	text, err := New().Parse(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Contains(t, text, "First section")
	assert.Contains(t, text, "Second section")
	assert.Less(t, strings.Index(text, "First section"), strings.Index(text, "Second section"))
}

func TestParse_InvalidContent(t *testing.T) {
	_, err := New().Parse(context.Background(), strings.NewReader("not a zip archive"))
	assert.Error(t, err)
}

func TestName(t *testing.T) {
	assert.Equal(t, "DOCXParser", New().Name())
}
