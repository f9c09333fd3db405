package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	if cfg.ListenAddr != ":3000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.ChunkWindowWords != 800 || cfg.ChunkOverlapWords != 100 {
		t.Errorf("chunk geometry = %d/%d", cfg.ChunkWindowWords, cfg.ChunkOverlapWords)
	}
	if cfg.RetrievalTopK != 3 {
		t.Errorf("RetrievalTopK = %d", cfg.RetrievalTopK)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if len(cfg.AllowedMediaTypes) != 4 {
		t.Errorf("AllowedMediaTypes = %v", cfg.AllowedMediaTypes)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("CHUNK_WINDOW_WORDS", "200")
	t.Setenv("CHUNK_OVERLAP_WORDS", "50")
	t.Setenv("ALLOWED_MEDIA_TYPES", "text/plain, text/csv")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.ChunkWindowWords != 200 || cfg.ChunkOverlapWords != 50 {
		t.Errorf("chunk geometry = %d/%d", cfg.ChunkWindowWords, cfg.ChunkOverlapWords)
	}
	if len(cfg.AllowedMediaTypes) != 2 || cfg.AllowedMediaTypes[1] != "text/csv" {
		t.Errorf("AllowedMediaTypes = %v", cfg.AllowedMediaTypes)
	}
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown embedding provider", map[string]string{"EMBEDDING_PROVIDER": "mystery"}},
		{"unknown llm provider", map[string]string{"LLM_PROVIDER": "mystery"}},
		{"custom llm without endpoint", map[string]string{"LLM_PROVIDER": "custom"}},
		{"overlap not smaller than window", map[string]string{"CHUNK_WINDOW_WORDS": "100", "CHUNK_OVERLAP_WORDS": "100"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestLoad_CustomProviderWithEndpoint(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "custom")
	t.Setenv("LLM_ENDPOINT", "http://localhost:8080/v1/chat")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLMEndpoint == "" {
		t.Error("endpoint lost")
	}
}
