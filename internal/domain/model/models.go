package model

import "time"

type DocumentStatus string

const (
	StatusUploaded  DocumentStatus = "uploaded"
	StatusExtracted DocumentStatus = "extracted"
	StatusEmbedded  DocumentStatus = "embedded"
)

// Rank gives the lifecycle order. Status only ever moves to a higher rank.
func (s DocumentStatus) Rank() int {
	switch s {
	case StatusUploaded:
		return 0
	case StatusExtracted:
		return 1
	case StatusEmbedded:
		return 2
	}
	return -1
}

type Document struct {
	Id            string         `json:"id"`
	Filename      string         `json:"filename"`
	MediaType     string         `json:"media_type"`
	Status        DocumentStatus `json:"status"`
	ExtractedText string         `json:"extracted_text,omitempty"`
	StoragePath   string         `json:"storage_path"`
	CreatedAt     time.Time      `json:"created_at"`
}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type ChatSession struct {
	Id        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatMessage struct {
	Id        string      `json:"id"`
	SessionId string      `json:"session_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// RetrievedChunk is one nearest-neighbor hit, annotated with where it came
// from. Score is the index's similarity ranking.
type RetrievedChunk struct {
	DocumentId string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	Text       string  `json:"text"`
	Score      float32 `json:"score"`
}
