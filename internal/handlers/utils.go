package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"chatknowledge/internal/api"
	"chatknowledge/internal/config"
	"chatknowledge/internal/rag/ragerr"
	"chatknowledge/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, api.ErrorResponse{Code: httpCode, Message: message})
}

// writeServiceError maps the ingestion and retrieval error taxonomy onto
// HTTP statuses. Anything unrecognized is an internal error.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ragerr.ErrNotFound):
		WriteErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ragerr.ErrUnsupportedFormat):
		WriteErrorResponse(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, ragerr.ErrSizeLimitExceeded):
		WriteErrorResponse(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, ragerr.ErrExtractionFailure):
		WriteErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ragerr.ErrIndexingFailure), errors.Is(err, ragerr.ErrGenerationFailure):
		WriteErrorResponse(w, http.StatusBadGateway, err.Error())
	default:
		WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

// HealthHandler godoc
// @Summary      Liveness probe
// @Tags         Health
// @Success      200  "OK"
// @Router       /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func decodeJsonBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer func() {
		if err := r.Body.Close(); err != nil {
			logRH.Error("Couldn't close the request body reader :", err)
		}
	}()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logRH.Warn("Bad request body: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return false
	}
	return true
}

func validateContext(ctx context.Context) bool {
	log := logRH.With("traceId:", ctx.Value(config.TRACE_ID_KEY))
	if ctx.Err() != nil {
		log.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		log.Warn("context cancelled")
		return false
	default:
		return true

	}
}
