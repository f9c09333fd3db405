package model

import "context"

type DocumentStore interface {
	SaveDocument(ctx context.Context, doc Document) error
	GetDocument(ctx context.Context, id string) (Document, bool)
	ListDocuments(ctx context.Context) ([]Document, error)
	DeleteDocument(ctx context.Context, id string) error
}

type ChatStore interface {
	SaveSession(ctx context.Context, session ChatSession) error
	GetSession(ctx context.Context, id string) (ChatSession, bool)
	// ListSessions returns sessions ordered by most recent activity first.
	ListSessions(ctx context.Context) ([]ChatSession, error)
	// DeleteSession removes the session and every message it owns.
	DeleteSession(ctx context.Context, id string) error

	AppendMessage(ctx context.Context, msg ChatMessage) error
	// ListMessages returns a session's messages in creation order.
	ListMessages(ctx context.Context, sessionId string) ([]ChatMessage, error)
}
