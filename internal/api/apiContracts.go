package api

import "time"

type DocumentResponse struct {
	Id          string    `json:"id" example:"2f0c8f1e-41cd-4f3a-9c59-8f6c1f1f8e10"`
	Filename    string    `json:"filename" example:"handbook.pdf"`
	MediaType   string    `json:"media_type" example:"application/pdf"`
	Status      string    `json:"status" example:"embedded"`
	CreatedAt   time.Time `json:"created_at"`
	ChunkCount  int       `json:"chunk_count,omitempty"`
	TextPreview string    `json:"text_preview,omitempty"`
}

type DocumentStorageResponse struct {
	Id          string `json:"id"`
	Filename    string `json:"filename"`
	Status      string `json:"status"`
	StoragePath string `json:"storage_path"`
	VectorCount uint64 `json:"vector_count"`
}

type ProcessResponse struct {
	Document   DocumentResponse `json:"document"`
	ChunkCount int              `json:"chunk_count"`
}

type RetrievedChunkResponse struct {
	DocumentId string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	Content    string  `json:"content"`
	Score      float32 `json:"score"`
}

type AskResponse struct {
	Question    string                   `json:"question"`
	Answer      string                   `json:"answer"`
	ContextUsed []RetrievedChunkResponse `json:"context_used"`
}

type SessionResponse struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MessageResponse struct {
	Id        string    `json:"id"`
	Role      string    `json:"role" example:"assistant"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatSendResponse struct {
	SessionId   string   `json:"session_id"`
	Answer      string   `json:"answer"`
	ContextUsed []string `json:"context_used"`
	MemoryCount int      `json:"memory_count"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"404"`
	Message string `json:"message" example:"document not found"`
}

// requests---------------------

type ChatSendRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

type AskRequest struct {
	Question   string `json:"question" validate:"required"`
	TopK       int    `json:"top_k,omitempty"`
	DocumentId string `json:"document_id,omitempty"`
}
