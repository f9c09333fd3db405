package store

import (
	"context"
	"sort"
	"sync"

	"chatknowledge/internal/domain/model"
)

// InMemoryChatStore is the fallback when Redis is offline.
type InMemoryChatStore struct {
	mu       sync.RWMutex
	sessions map[string]model.ChatSession
	messages map[string][]model.ChatMessage
}

func InitInMemoryChatStore() *InMemoryChatStore {
	return &InMemoryChatStore{
		sessions: make(map[string]model.ChatSession),
		messages: make(map[string][]model.ChatMessage),
	}
}

func (s *InMemoryChatStore) SaveSession(ctx context.Context, session model.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Id] = session
	return nil
}

func (s *InMemoryChatStore) GetSession(ctx context.Context, id string) (model.ChatSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, found := s.sessions[id]
	return session, found
}

func (s *InMemoryChatStore) ListSessions(ctx context.Context) ([]model.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]model.ChatSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

func (s *InMemoryChatStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.messages, id)
	return nil
}

func (s *InMemoryChatStore) AppendMessage(ctx context.Context, msg model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[msg.SessionId] = append(s.messages[msg.SessionId], msg)
	return nil
}

func (s *InMemoryChatStore) ListMessages(ctx context.Context, sessionId string) ([]model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[sessionId]
	out := make([]model.ChatMessage, len(msgs))
	copy(out, msgs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
