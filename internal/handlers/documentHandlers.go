package handlers

import (
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"chatknowledge/internal/adapter"
	"chatknowledge/internal/adapter/utils"
	"chatknowledge/internal/api"
	"chatknowledge/internal/chat"
	"chatknowledge/internal/config"
	"chatknowledge/internal/domain/model"
	"chatknowledge/internal/rag"
	"chatknowledge/pkg/logger_i"
)

type DocumentHandler struct {
	service        rag.Service
	orchestrator   *chat.Orchestrator
	maxUploadBytes int64
	logger         *logger_i.Logger
}

func NewDocumentHandler(service rag.Service, orchestrator *chat.Orchestrator, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{
		service:        service,
		orchestrator:   orchestrator,
		maxUploadBytes: cfg.MaxUploadBytes,
		logger:         logger_i.NewLogger("DocumentHandler"),
	}
}

// UploadHandler godoc
// @Summary      Upload a document
// @Description  Receives a file via multipart/form-data and registers it in the uploaded state.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        document  formData  file  true  "The PDF, DOCX, CSV or plain-text file to upload"
// @Success      201  {object}  api.DocumentResponse
// @Failure      400  {object}  api.ErrorResponse "Missing file or malformed form"
// @Failure      413  {object}  api.ErrorResponse "File exceeds the upload limit"
// @Failure      415  {object}  api.ErrorResponse "Media type is not accepted"
// @Router       /docs/upload [post]
func (h *DocumentHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		h.logger.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	doc, ok := h.receiveUpload(w, r)
	if !ok {
		return
	}
	writeJsonResponse(w, http.StatusCreated, adapter.ToDocumentResponse(doc))
}

// ExtractHandler godoc
// @Summary      Extract document text
// @Description  Pulls plain text out of an uploaded document and advances it to the extracted state. Re-running on an extracted document is a no-op.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      422  {object}  api.ErrorResponse "Extraction failed"
// @Router       /docs/{id}/extract [post]
func (h *DocumentHandler) ExtractHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		h.logger.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	doc, err := h.service.ExtractDocument(r.Context(), utils.GetChiURLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(doc))
}

// EmbedHandler godoc
// @Summary      Embed document chunks
// @Description  Chunks the extracted text, embeds every chunk and indexes the vectors. Prior vectors for the document are cleared first.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.ProcessResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      502  {object}  api.ErrorResponse "Embedding or indexing failed"
// @Router       /docs/{id}/embed [post]
func (h *DocumentHandler) EmbedHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		h.logger.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	doc, chunkCount, err := h.service.EmbedDocument(r.Context(), utils.GetChiURLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, api.ProcessResponse{
		Document:   adapter.ToDocumentResponse(doc),
		ChunkCount: chunkCount,
	})
}

// ProcessHandler godoc
// @Summary      Upload and index in one call
// @Description  Runs the full pipeline for a multipart upload: store, extract, embed.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        document  formData  file  true  "The file to ingest"
// @Success      201  {object}  api.ProcessResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      415  {object}  api.ErrorResponse
// @Failure      422  {object}  api.ErrorResponse
// @Router       /docs/process [post]
func (h *DocumentHandler) ProcessHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		h.logger.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	doc, ok := h.receiveUpload(w, r)
	if !ok {
		return
	}
	if _, err := h.service.ExtractDocument(r.Context(), doc.Id); err != nil {
		writeServiceError(w, err)
		return
	}
	doc, chunkCount, err := h.service.EmbedDocument(r.Context(), doc.Id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusCreated, api.ProcessResponse{
		Document:   adapter.ToDocumentResponse(doc),
		ChunkCount: chunkCount,
	})
}

// AskHandler godoc
// @Summary      Ask a one-shot question
// @Description  Retrieves the best matching chunks and answers the question without any session state.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest  true  "Question, optional top_k and document scope"
// @Success      200  {object}  api.AskResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      502  {object}  api.ErrorResponse "Generation failed"
// @Router       /docs/ask [post]
func (h *DocumentHandler) AskHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		h.logger.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.AskRequest
	if !decodeJsonBody(w, r, &requestData) {
		return
	}
	if requestData.Question == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, hits, err := h.orchestrator.Ask(r.Context(), requestData.Question, requestData.TopK, requestData.DocumentId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, api.AskResponse{
		Question:    requestData.Question,
		Answer:      answer,
		ContextUsed: adapter.ToChunkResponses(hits),
	})
}

// ListHandler godoc
// @Summary      List documents
// @Tags         Documents
// @Produce      json
// @Success      200  {array}  api.DocumentResponse
// @Router       /docs [get]
func (h *DocumentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListDocuments(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentListResponse(docs))
}

// DeleteHandler godoc
// @Summary      Delete a document
// @Description  Removes the stored file, the indexed vectors and the document record.
// @Tags         Documents
// @Param        id   path  string  true  "Document ID"
// @Success      204  "Deleted"
// @Failure      404  {object}  api.ErrorResponse
// @Router       /docs/{id} [delete]
func (h *DocumentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDocument(r.Context(), utils.GetChiURLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StorageHandler godoc
// @Summary      Inspect document storage
// @Description  Reports where the file lives and how many vectors the index holds for it.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentStorageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /docs/{id}/storage [get]
func (h *DocumentHandler) StorageHandler(w http.ResponseWriter, r *http.Request) {
	doc, vectorCount, err := h.service.InspectDocument(r.Context(), utils.GetChiURLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToStorageResponse(doc, vectorCount))
}

// receiveUpload pulls the "document" part out of a multipart form and hands
// it to the pipeline. Writes the error response itself and reports success.
func (h *DocumentHandler) receiveUpload(w http.ResponseWriter, r *http.Request) (model.Document, bool) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "File too large or bad request")
		return model.Document{}, false
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Could not retrieve file")
		return model.Document{}, false
	}
	defer fileReader.Close()

	doc, err := h.service.CreateDocument(r.Context(), fileMetadata.Filename, resolveMediaType(fileMetadata), fileReader)
	if err != nil {
		writeServiceError(w, err)
		return model.Document{}, false
	}
	return doc, true
}

// resolveMediaType trusts the part header first and the file extension
// second. Parameters like charset are stripped.
func resolveMediaType(header *multipart.FileHeader) string {
	contentType := header.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType != "" && mediaType != "application/octet-stream" {
		return mediaType
	}
	if byExt := mime.TypeByExtension(filepath.Ext(header.Filename)); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}
	return contentType
}
