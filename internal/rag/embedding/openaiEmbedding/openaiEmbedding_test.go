package openaiEmbedding_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatknowledge/internal/rag/embedding/openaiEmbedding"
)

func TestNewClient_RequiresKey(t *testing.T) {
	if _, err := openaiEmbedding.NewClient("", "text-embedding-3-small", 4); err == nil {
		t.Fatal("expected error without an API key")
	}
}

// The API tags each vector with the index of the input it belongs to;
// pairing must follow that tag, not the order of the response slice.
func TestBatchEmbedding_PlacesVectorsByReportedIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"object": "list",
			"model": "text-embedding-3-small",
			"data": [
				{"object": "embedding", "index": 1, "embedding": [0.4, 0.5]},
				{"object": "embedding", "index": 0, "embedding": [0.1, 0.2]}
			],
			"usage": {"prompt_tokens": 2, "total_tokens": 2}
		}`))
	}))
	defer srv.Close()
	t.Setenv("OPENAI_BASE_URL", srv.URL)

	c, err := openaiEmbedding.NewClient("test-key", "text-embedding-3-small", 2)
	if err != nil {
		t.Fatal(err)
	}

	vectors, err := c.BatchEmbedding(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("BatchEmbedding failed: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("got %d vectors", len(vectors))
	}
	if vectors[0][0] != 0.1 || vectors[1][0] != 0.4 {
		t.Errorf("vectors not matched to inputs: %v", vectors)
	}
}

func TestBatchEmbedding_RejectsBadResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "count mismatch",
			body: `{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.1]}],"usage":{"prompt_tokens":1,"total_tokens":1}}`,
		},
		{
			name: "index out of range",
			body: `{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.1]},{"object":"embedding","index":7,"embedding":[0.2]}],"usage":{"prompt_tokens":2,"total_tokens":2}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()
			t.Setenv("OPENAI_BASE_URL", srv.URL)

			c, err := openaiEmbedding.NewClient("test-key", "text-embedding-3-small", 1)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := c.BatchEmbedding(context.Background(), []string{"first", "second"}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
