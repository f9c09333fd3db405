package adapter

import (
	"chatknowledge/internal/api"
	"chatknowledge/internal/domain/model"
)

const previewLen = 200

// clampRunes cuts on character boundaries so multibyte text stays valid
// UTF-8 after truncation.
func clampRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func ToDocumentResponse(doc model.Document) api.DocumentResponse {
	preview := clampRunes(doc.ExtractedText, previewLen)
	return api.DocumentResponse{
		Id:          doc.Id,
		Filename:    doc.Filename,
		MediaType:   doc.MediaType,
		Status:      string(doc.Status),
		CreatedAt:   doc.CreatedAt,
		TextPreview: preview,
	}
}

func ToDocumentListResponse(docs []model.Document) []api.DocumentResponse {
	out := make([]api.DocumentResponse, len(docs))
	for i, doc := range docs {
		out[i] = ToDocumentResponse(doc)
	}
	return out
}

func ToStorageResponse(doc model.Document, vectorCount uint64) api.DocumentStorageResponse {
	return api.DocumentStorageResponse{
		Id:          doc.Id,
		Filename:    doc.Filename,
		Status:      string(doc.Status),
		StoragePath: doc.StoragePath,
		VectorCount: vectorCount,
	}
}

func ToChunkResponses(hits []model.RetrievedChunk) []api.RetrievedChunkResponse {
	out := make([]api.RetrievedChunkResponse, len(hits))
	for i, hit := range hits {
		out[i] = api.RetrievedChunkResponse{
			DocumentId: hit.DocumentId,
			ChunkIndex: hit.ChunkIndex,
			Content:    hit.Text,
			Score:      hit.Score,
		}
	}
	return out
}

func ToSessionResponse(session model.ChatSession) api.SessionResponse {
	return api.SessionResponse{
		Id:        session.Id,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}

func ToSessionListResponse(sessions []model.ChatSession) []api.SessionResponse {
	out := make([]api.SessionResponse, len(sessions))
	for i, session := range sessions {
		out[i] = ToSessionResponse(session)
	}
	return out
}

func ToMessageListResponse(messages []model.ChatMessage) []api.MessageResponse {
	out := make([]api.MessageResponse, len(messages))
	for i, msg := range messages {
		out[i] = api.MessageResponse{
			Id:        msg.Id,
			Role:      string(msg.Role),
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		}
	}
	return out
}
