package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Providers are picked once at startup. Handlers and services receive the
// already-constructed clients, never the provider names.
const (
	EmbeddingProviderGemini = "gemini"
	EmbeddingProviderOpenAI = "openai"

	LLMProviderOpenAI = "openai"
	LLMProviderOllama = "ollama"
	LLMProviderCustom = "custom"
)

type Config struct {
	ListenAddr string

	UploadDir         string
	MaxUploadBytes    int64
	AllowedMediaTypes []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	QdrantHost   string
	QdrantPort   int
	QdrantUseTLS bool
	Collection   string

	EmbeddingProvider  string
	EmbeddingModel     string
	EmbeddingAPIKey    string
	EmbeddingDimension int32

	LLMProvider    string
	LLMModel       string
	LLMAPIKey      string
	LLMEndpoint    string
	LLMToken       string
	LLMTimeout     time.Duration
	AnswerLanguage string

	ChunkWindowWords  int
	ChunkOverlapWords int
	RetrievalTopK     int

	Prod bool
}

// Load reads the environment once at process start. The resulting value is
// handed to every constructor; nothing else reads the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // absent .env is fine

	cfg := &Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":3000"),
		UploadDir:          getEnv("UPLOAD_DIR", "uploaded_data"),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_MB", 32)) << 20,
		AllowedMediaTypes:  splitList(getEnv("ALLOWED_MEDIA_TYPES", defaultMediaTypes)),
		RedisAddr:          getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		QdrantHost:         getEnv("QDRANT_HOST", "127.0.0.1"),
		QdrantPort:         getEnvInt("QDRANT_PORT", 6334),
		QdrantUseTLS:       getEnv("QDRANT_USE_TLS", "false") == "true",
		Collection:         getEnv("VECTOR_COLLECTION", "documents"),
		EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", EmbeddingProviderGemini),
		EmbeddingModel:     getEnv("EMBEDDING_MODEL", "gemini-embedding-001"),
		EmbeddingAPIKey:    os.Getenv("EMBEDDING_API_KEY"),
		EmbeddingDimension: int32(getEnvInt("EMBEDDING_DIMENSION", 1536)),
		LLMProvider:        getEnv("LLM_PROVIDER", LLMProviderOpenAI),
		LLMModel:           getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:          os.Getenv("LLM_API_KEY"),
		LLMEndpoint:        os.Getenv("LLM_ENDPOINT"),
		LLMToken:           os.Getenv("LLM_TOKEN"),
		LLMTimeout:         time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		AnswerLanguage:     getEnv("ANSWER_LANGUAGE", "Indonesian"),
		ChunkWindowWords:   getEnvInt("CHUNK_WINDOW_WORDS", 800),
		ChunkOverlapWords:  getEnvInt("CHUNK_OVERLAP_WORDS", 100),
		RetrievalTopK:      getEnvInt("RETRIEVAL_TOP_K", 3),
		Prod:               getEnv("APP_ENV", "development") == "production",
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.EmbeddingProvider {
	case EmbeddingProviderGemini, EmbeddingProviderOpenAI:
	default:
		return fmt.Errorf("unknown embedding provider %q", c.EmbeddingProvider)
	}
	switch c.LLMProvider {
	case LLMProviderOpenAI, LLMProviderOllama, LLMProviderCustom:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLMProvider)
	}
	if c.LLMProvider == LLMProviderCustom && c.LLMEndpoint == "" {
		return fmt.Errorf("LLM_ENDPOINT is required for the custom provider")
	}
	if c.ChunkOverlapWords >= c.ChunkWindowWords {
		return fmt.Errorf("chunk overlap %d must be smaller than window %d",
			c.ChunkOverlapWords, c.ChunkWindowWords)
	}
	return nil
}

const defaultMediaTypes = "application/pdf," +
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document," +
	"text/csv,text/plain"

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
