package handlers

import (
	"net/http"

	"chatknowledge/internal/adapter"
	"chatknowledge/internal/adapter/utils"
	"chatknowledge/internal/api"
	"chatknowledge/internal/chat"
	"chatknowledge/pkg/logger_i"
)

type ChatHandler struct {
	orchestrator *chat.Orchestrator
	logger       *logger_i.Logger
}

func NewChatHandler(orchestrator *chat.Orchestrator) *ChatHandler {
	return &ChatHandler{
		orchestrator: orchestrator,
		logger:       logger_i.NewLogger("ChatHandler"),
	}
}

// StartHandler godoc
// @Summary      Start a chat session
// @Description  Creates an empty session. The title is derived from the first message later.
// @Tags         Chat
// @Produce      json
// @Success      201  {object}  api.SessionResponse
// @Router       /chat/start [post]
func (h *ChatHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		h.logger.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	session, err := h.orchestrator.StartSession(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusCreated, adapter.ToSessionResponse(session))
}

// SendHandler godoc
// @Summary      Send a message
// @Description  Appends the message to the session history, retrieves context and answers grounded in the indexed documents.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatSendRequest  true  "Session ID and message"
// @Success      200  {object}  api.ChatSendResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse "Session not found"
// @Failure      502  {object}  api.ErrorResponse "Generation failed"
// @Router       /chat/send [post]
func (h *ChatHandler) SendHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		h.logger.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.ChatSendRequest
	if !decodeJsonBody(w, r, &requestData) {
		return
	}
	if requestData.SessionId == "" || requestData.Message == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "session_id and message are required")
		return
	}

	result, err := h.orchestrator.SendMessage(r.Context(), requestData.SessionId, requestData.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, api.ChatSendResponse{
		SessionId:   result.SessionId,
		Answer:      result.Answer,
		ContextUsed: result.ContextUsed,
		MemoryCount: result.MemoryCount,
	})
}

// SessionsHandler godoc
// @Summary      List chat sessions
// @Description  Sessions come back newest activity first.
// @Tags         Chat
// @Produce      json
// @Success      200  {array}  api.SessionResponse
// @Router       /chat/sessions [get]
func (h *ChatHandler) SessionsHandler(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.orchestrator.ListSessions(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSessionListResponse(sessions))
}

// MessagesHandler godoc
// @Summary      Get session history
// @Description  Messages come back oldest first.
// @Tags         Chat
// @Produce      json
// @Param        sessionId  path  string  true  "Session ID"
// @Success      200  {array}   api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /chat/{sessionId}/messages [get]
func (h *ChatHandler) MessagesHandler(w http.ResponseWriter, r *http.Request) {
	messages, err := h.orchestrator.SessionMessages(r.Context(), utils.GetChiURLParam(r, "sessionId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToMessageListResponse(messages))
}

// DeleteHandler godoc
// @Summary      Delete a chat session
// @Description  Removes the session and its whole message history.
// @Tags         Chat
// @Param        sessionId  path  string  true  "Session ID"
// @Success      204  "Deleted"
// @Failure      404  {object}  api.ErrorResponse
// @Router       /chat/{sessionId} [delete]
func (h *ChatHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.orchestrator.DeleteSession(r.Context(), utils.GetChiURLParam(r, "sessionId")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
