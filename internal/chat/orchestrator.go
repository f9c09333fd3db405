// Package chat owns session state, message history, title derivation and
// prompt assembly for the conversational surface.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chatknowledge/internal/config"
	"chatknowledge/internal/domain/model"
	"chatknowledge/internal/rag"
	"chatknowledge/internal/rag/ragerr"
	"chatknowledge/internal/syncutil"
	"chatknowledge/pkg/logger_i"

	"github.com/google/uuid"
)

type SendResult struct {
	SessionId   string
	Answer      string
	ContextUsed []string
	// MemoryCount is the history length loaded before the answer was
	// generated (the new user message included).
	MemoryCount int
}

type Orchestrator struct {
	store        model.ChatStore
	ragService   rag.Service
	topK         int
	language     string
	sessionLocks *syncutil.KeyedMutex
	logger       *logger_i.Logger
}

func NewOrchestrator(store model.ChatStore, ragService rag.Service, cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		store:        store,
		ragService:   ragService,
		topK:         cfg.RetrievalTopK,
		language:     cfg.AnswerLanguage,
		sessionLocks: syncutil.NewKeyedMutex(),
		logger:       logger_i.NewLogger("Chat"),
	}
}

func (o *Orchestrator) StartSession(ctx context.Context) (model.ChatSession, error) {
	now := time.Now()
	session := model.ChatSession{
		Id:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := o.store.SaveSession(ctx, session); err != nil {
		return model.ChatSession{}, err
	}
	return session, nil
}

func (o *Orchestrator) SendMessage(ctx context.Context, sessionId string, text string) (SendResult, error) {
	if text == "" {
		return SendResult{}, fmt.Errorf("message is required")
	}

	// one send per session at a time; interleaved read-modify-writes of the
	// title and history are not worth debugging
	unlock := o.sessionLocks.Lock(sessionId)
	defer unlock()

	log := o.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "session Id", sessionId)

	session, found := o.store.GetSession(ctx, sessionId)
	if !found {
		return SendResult{}, fmt.Errorf("%w: session %s", ragerr.ErrNotFound, sessionId)
	}

	userMsg := model.ChatMessage{
		Id:        uuid.New().String(),
		SessionId: sessionId,
		Role:      model.RoleUser,
		Content:   text,
		CreatedAt: time.Now(),
	}
	if err := o.store.AppendMessage(ctx, userMsg); err != nil {
		return SendResult{}, err
	}

	if session.Title == "" {
		session.Title = truncateTitle(text)
	}

	history, err := o.store.ListMessages(ctx, sessionId)
	if err != nil {
		return SendResult{}, err
	}

	// recomputed on every send once a conversation exists; a failed model
	// call falls back to the first message, never to an error
	if len(history) >= 2 {
		session.Title = truncateTitle(o.deriveTitle(ctx, history))
	}

	session.UpdatedAt = time.Now()
	if err := o.store.SaveSession(ctx, session); err != nil {
		return SendResult{}, err
	}

	hits, err := o.ragService.Search(ctx, text, o.topK, "")
	if err != nil {
		return SendResult{}, err
	}
	contexts := make([]string, len(hits))
	for i, hit := range hits {
		contexts[i] = hit.Text
	}

	prompt := buildAnswerPrompt(renderTranscript(history), contexts, text, o.language)
	answer, err := o.ragService.Generate(ctx, prompt)
	if err != nil {
		log.Error("Answer generation failed", "error", err)
		return SendResult{}, err
	}

	assistantMsg := model.ChatMessage{
		Id:        uuid.New().String(),
		SessionId: sessionId,
		Role:      model.RoleAssistant,
		Content:   answer,
		CreatedAt: time.Now(),
	}
	if err := o.store.AppendMessage(ctx, assistantMsg); err != nil {
		return SendResult{}, err
	}
	session.UpdatedAt = assistantMsg.CreatedAt
	if err := o.store.SaveSession(ctx, session); err != nil {
		log.Error("Failed to bump session activity", "error", err)
	}

	return SendResult{
		SessionId:   sessionId,
		Answer:      answer,
		ContextUsed: contexts,
		MemoryCount: len(history),
	}, nil
}

// Ask is the sessionless question path: retrieve, answer, forget. Nothing
// is persisted.
func (o *Orchestrator) Ask(ctx context.Context, question string, topK int, documentScope string) (string, []model.RetrievedChunk, error) {
	if topK <= 0 {
		topK = o.topK
	}
	hits, err := o.ragService.Search(ctx, question, topK, documentScope)
	if err != nil {
		return "", nil, err
	}
	contexts := make([]string, len(hits))
	for i, hit := range hits {
		contexts[i] = hit.Text
	}

	answer, err := o.ragService.Generate(ctx, buildAnswerPrompt("", contexts, question, o.language))
	if err != nil {
		return "", nil, err
	}
	return answer, hits, nil
}

func (o *Orchestrator) ListSessions(ctx context.Context) ([]model.ChatSession, error) {
	return o.store.ListSessions(ctx)
}

func (o *Orchestrator) SessionMessages(ctx context.Context, sessionId string) ([]model.ChatMessage, error) {
	if _, found := o.store.GetSession(ctx, sessionId); !found {
		return nil, fmt.Errorf("%w: session %s", ragerr.ErrNotFound, sessionId)
	}
	return o.store.ListMessages(ctx, sessionId)
}

func (o *Orchestrator) DeleteSession(ctx context.Context, sessionId string) error {
	unlock := o.sessionLocks.Lock(sessionId)
	defer unlock()

	if _, found := o.store.GetSession(ctx, sessionId); !found {
		return fmt.Errorf("%w: session %s", ragerr.ErrNotFound, sessionId)
	}
	return o.store.DeleteSession(ctx, sessionId)
}

func renderTranscript(history []model.ChatMessage) string {
	var b strings.Builder
	for _, msg := range history {
		b.WriteString(strings.ToUpper(string(msg.Role)))
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return b.String()
}

func buildAnswerPrompt(transcript string, contexts []string, question string, language string) string {
	var b strings.Builder
	if transcript != "" {
		b.WriteString("This is the prior conversation:\n\n")
		b.WriteString(transcript)
		b.WriteString("\n")
	}
	b.WriteString("Use this context to answer the user:\n\n")
	b.WriteString(strings.Join(contexts, "\n\n"))
	b.WriteString("\n\nUser question:\n")
	b.WriteString(question)
	b.WriteString(fmt.Sprintf("\n\nAnswer concisely and clearly in %s.", language))
	return b.String()
}
