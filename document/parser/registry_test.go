package parser

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat/ragengine/document"
)

type stubParser struct{ name string }

func (s *stubParser) Parse(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	return string(data), err
}

func (s *stubParser) Name() string { return s.name }

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	_, ok := reg.Get(document.KindText)
	assert.False(t, ok)
	assert.Empty(t, reg.Kinds())

	reg.Register(document.KindText, &stubParser{name: "first"})
	reg.Register(document.KindPDF, &stubParser{name: "pdf"})

	p, ok := reg.Get(document.KindText)
	require.True(t, ok)
	assert.Equal(t, "first", p.Name())

	// Re-registering replaces the previous parser.
	reg.Register(document.KindText, &stubParser{name: "second"})
	p, ok = reg.Get(document.KindText)
	require.True(t, ok)
	assert.Equal(t, "second", p.Name())

	assert.Len(t, reg.Kinds(), 2)
}
