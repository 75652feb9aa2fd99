package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat/ragengine/embedder"
)

// TestEmbedderInterface verifies that our Embedder implements the interface.
func TestEmbedderInterface(t *testing.T) {
	var _ embedder.Embedder = (*Embedder)(nil)
}

func TestNewEmbedder(t *testing.T) {
	e := New()
	assert.Equal(t, DefaultModel, e.model)
	assert.Equal(t, DefaultDimensions, e.dimensions)
	assert.Equal(t, DefaultEncodingFormat, e.encodingFormat)
	assert.Equal(t, DefaultDimensions, e.GetDimensions())

	e = New(
		WithModel("text-embedding-3-large"),
		WithDimensions(3072),
		WithUser("test-user"),
		WithAPIKey("test-key"),
		WithBaseURL("http://localhost:1234"),
	)
	assert.Equal(t, "text-embedding-3-large", e.model)
	assert.Equal(t, 3072, e.GetDimensions())
	assert.Equal(t, "test-user", e.user)
}

func TestGetEmbedding_EmptyText(t *testing.T) {
	e := New(WithAPIKey("dummy"))
	_, err := e.GetEmbedding(context.Background(), "")
	require.Error(t, err)
}

func TestGetEmbeddings_EmptyBatch(t *testing.T) {
	e := New(WithAPIKey("dummy"))
	vecs, err := e.GetEmbeddings(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vecs)

	_, err = e.GetEmbeddings(context.Background(), []string{"ok", ""})
	require.Error(t, err)
}

// newEmbeddingServer serves canned embedding responses, one vector per
// input, index-aligned.
func newEmbeddingServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/embeddings") {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		var req struct {
			Input any `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		count := 1
		if arr, ok := req.Input.([]any); ok {
			count = len(arr)
		}

		data := make([]map[string]any, count)
		for i := 0; i < count; i++ {
			data[i] = map[string]any{
				"object":    "embedding",
				"index":     i,
				"embedding": []float64{float64(i), 0.2, 0.3},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		rsp := map[string]any{
			"object": "list",
			"data":   data,
			"model":  "text-embedding-3-small",
			"usage":  map[string]any{"prompt_tokens": 1, "total_tokens": 1},
		}
		_ = json.NewEncoder(w).Encode(rsp)
	}))
}

func TestGetEmbedding(t *testing.T) {
	srv := newEmbeddingServer(t)
	defer srv.Close()

	emb := New(
		WithBaseURL(srv.URL),
		WithAPIKey("dummy"),
		WithDimensions(3),
	)

	vec, err := emb.GetEmbedding(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.2, 0.3}, vec)
}

func TestGetEmbeddings_Batch(t *testing.T) {
	srv := newEmbeddingServer(t)
	defer srv.Close()

	emb := New(
		WithBaseURL(srv.URL),
		WithAPIKey("dummy"),
		WithDimensions(3),
	)

	vecs, err := emb.GetEmbeddings(context.Background(), []string{"one", "two", "three"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	// Index alignment: vector i starts with float64(i).
	for i, v := range vecs {
		assert.Equal(t, float64(i), v[0])
	}
}
