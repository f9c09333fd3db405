package store

import (
	"context"
	"encoding/json"

	"chatknowledge/internal/data/redisStore"
	"chatknowledge/internal/domain/model"
	"chatknowledge/pkg/logger_i"
)

const sessionIndexKey = "sessions"

func sessionKey(id string) string  { return "session:" + id }
func messagesKey(id string) string { return "messages:" + id }

type RedisChatStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func NewRedisChatStore(store *redisStore.Store) *RedisChatStore {
	return &RedisChatStore{
		store:  store,
		logger: logger_i.NewLogger("ChatStore"),
	}
}

func (s *RedisChatStore) SaveSession(ctx context.Context, session model.ChatSession) error {
	log := s.logger.With("traceId", ctx.Value("traceId"), "session Id", session.Id)
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, sessionKey(session.Id), data); err != nil {
		log.Error("error saving session", "error:", err)
		return err
	}
	// re-scoring on every save keeps the listing ordered by last activity
	err = s.store.SortedAdd(ctx, sessionIndexKey, float64(session.UpdatedAt.UnixNano()), session.Id)
	if err != nil {
		log.Error("error indexing session", "error:", err)
	}
	return err
}

func (s *RedisChatStore) GetSession(ctx context.Context, id string) (model.ChatSession, bool) {
	var session model.ChatSession
	val, err := s.store.Get(ctx, sessionKey(id))
	if s.store.IsNil(err) {
		return session, false
	} else if err != nil {
		s.logger.Error("error reading session", "session Id", id, "error:", err)
		return session, false
	}
	if err = json.Unmarshal([]byte(val), &session); err != nil {
		s.logger.Error("corrupt session record", "session Id", id, "error:", err)
		return session, false
	}
	return session, true
}

func (s *RedisChatStore) ListSessions(ctx context.Context) ([]model.ChatSession, error) {
	ids, err := s.store.SortedRangeDesc(ctx, sessionIndexKey)
	if err != nil {
		return nil, err
	}
	sessions := make([]model.ChatSession, 0, len(ids))
	for _, id := range ids {
		if session, found := s.GetSession(ctx, id); found {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func (s *RedisChatStore) DeleteSession(ctx context.Context, id string) error {
	log := s.logger.With("traceId", ctx.Value("traceId"), "session Id", id)
	// messages are owned by the session and go with it
	if err := s.store.Del(ctx, sessionKey(id), messagesKey(id)); err != nil {
		log.Error("error deleting session", "error:", err)
		return err
	}
	return s.store.SortedRemove(ctx, sessionIndexKey, id)
}

func (s *RedisChatStore) AppendMessage(ctx context.Context, msg model.ChatMessage) error {
	log := s.logger.With("traceId", ctx.Value("traceId"), "session Id", msg.SessionId)
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	err = s.store.SortedAdd(ctx, messagesKey(msg.SessionId), float64(msg.CreatedAt.UnixNano()), data)
	if err != nil {
		log.Error("error appending message", "error:", err)
	}
	return err
}

func (s *RedisChatStore) ListMessages(ctx context.Context, sessionId string) ([]model.ChatMessage, error) {
	raw, err := s.store.SortedRangeAsc(ctx, messagesKey(sessionId))
	if err != nil {
		return nil, err
	}
	messages := make([]model.ChatMessage, 0, len(raw))
	for _, entry := range raw {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			s.logger.Error("corrupt message record", "session Id", sessionId, "error:", err)
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
