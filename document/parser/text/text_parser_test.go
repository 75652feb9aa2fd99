package text

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	p := New()
	text, err := p.Parse(context.Background(), strings.NewReader("plain content\nsecond line"))
	require.NoError(t, err)
	assert.Equal(t, "plain content\nsecond line", text)
}

func TestParser_ParseInvalidUTF8(t *testing.T) {
	p := New()
	// Latin-1 encoded "café".
	text, err := p.Parse(context.Background(), strings.NewReader("caf\xe9"))
	require.NoError(t, err)
	assert.Equal(t, "café", text)
}

func TestParser_ParseReadError(t *testing.T) {
	p := New()
	_, err := p.Parse(context.Background(), failingReader{})
	require.Error(t, err)
}

func TestParser_Name(t *testing.T) {
	assert.Equal(t, "TextParser", New().Name())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}
