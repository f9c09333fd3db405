package rag

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"chatknowledge/internal/config"
	"chatknowledge/internal/domain/model"
	"chatknowledge/internal/metrics"
	"chatknowledge/internal/rag/ragerr"
	"chatknowledge/internal/rag/vectorDB"

	"github.com/google/uuid"
)

func (s *service) CreateDocument(ctx context.Context, filename string, mediaType string, src io.Reader) (model.Document, error) {
	if !s.blobs.Accepts(mediaType) {
		return model.Document{}, fmt.Errorf("%w: media type %q is not accepted",
			ragerr.ErrUnsupportedFormat, mediaType)
	}

	doc := model.Document{
		Id:        uuid.New().String(),
		Filename:  filename,
		MediaType: mediaType,
		Status:    model.StatusUploaded,
		CreatedAt: time.Now(),
	}

	path, err := s.blobs.Save(fmt.Sprintf("%d-%s", doc.CreatedAt.UnixNano(), filename), src)
	if err != nil {
		return model.Document{}, err
	}
	doc.StoragePath = path

	if err := s.documents.SaveDocument(ctx, doc); err != nil {
		// the blob is useless without its record
		if removeErr := s.blobs.Delete(path); removeErr != nil {
			s.logger.Error("Error removing orphaned upload", "path", path, "error", removeErr)
		}
		return model.Document{}, err
	}
	return doc, nil
}

func (s *service) ExtractDocument(ctx context.Context, documentId string) (model.Document, error) {
	unlock := s.docLocks.Lock(documentId)
	defer unlock()

	doc, found := s.documents.GetDocument(ctx, documentId)
	if !found {
		return model.Document{}, fmt.Errorf("%w: document %s", ragerr.ErrNotFound, documentId)
	}
	if doc.Status != model.StatusUploaded {
		// already extracted; the lifecycle never walks backwards
		return doc, nil
	}

	start := time.Now()
	text, err := s.extractor.Extract(doc.StoragePath, doc.MediaType)
	metrics.CaptureExecutionMetrics("extraction", time.Since(start))
	if err != nil {
		return model.Document{}, err
	}

	doc.ExtractedText = text
	doc.Status = model.StatusExtracted
	if err := s.documents.SaveDocument(ctx, doc); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

func (s *service) EmbedDocument(ctx context.Context, documentId string) (model.Document, int, error) {
	unlock := s.docLocks.Lock(documentId)
	defer unlock()

	doc, found := s.documents.GetDocument(ctx, documentId)
	if !found {
		return model.Document{}, 0, fmt.Errorf("%w: document %s", ragerr.ErrNotFound, documentId)
	}
	if doc.Status.Rank() < model.StatusExtracted.Rank() {
		return model.Document{}, 0, fmt.Errorf("%w: document %s has no extracted text yet",
			ragerr.ErrIndexingFailure, documentId)
	}

	// clear-then-repopulate; on a first embed this is a no-op
	if err := s.index.DeleteByDocument(ctx, documentId); err != nil {
		return model.Document{}, 0, fmt.Errorf("%w: clearing prior vectors: %v",
			ragerr.ErrIndexingFailure, err)
	}

	var batch []vectorDB.Chunk
	indexed := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		embedCtx, cancelEmbed := context.WithTimeout(ctx, config.EmbeddingCallTimeout)
		defer cancelEmbed()
		start := time.Now()
		vectors, err := s.embedder.BatchEmbedding(embedCtx, texts)
		metrics.CaptureExecutionMetrics("embedding", time.Since(start))
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		upsertCtx, cancelUpsert := context.WithTimeout(ctx, config.VectorCallTimeout)
		defer cancelUpsert()
		start = time.Now()
		err = s.index.UpsertBatch(upsertCtx, batch, vectors)
		metrics.CaptureExecutionMetrics("vector_upsert", time.Since(start))
		if err != nil {
			return fmt.Errorf("upserting batch failed: %w", err)
		}
		indexed += len(batch)
		batch = batch[:0]
		return nil
	}

	for i, text := range s.chunks.Windows(doc.ExtractedText) {
		batch = append(batch, vectorDB.Chunk{DocumentId: doc.Id, Index: i, Text: text})
		if len(batch) == config.EmbeddingBatchSize {
			if err := flush(); err != nil {
				// status stays where it was: the index is only partially written
				return model.Document{}, 0, fmt.Errorf("%w: %v", ragerr.ErrIndexingFailure, err)
			}
		}
	}
	if err := flush(); err != nil {
		return model.Document{}, 0, fmt.Errorf("%w: %v", ragerr.ErrIndexingFailure, err)
	}

	doc.Status = model.StatusEmbedded
	if err := s.documents.SaveDocument(ctx, doc); err != nil {
		return model.Document{}, 0, err
	}
	metrics.CountDocumentIngested()
	metrics.CountChunksIndexed(indexed)
	return doc, indexed, nil
}

func (s *service) DeleteDocument(ctx context.Context, documentId string) error {
	unlock := s.docLocks.Lock(documentId)
	defer unlock()

	doc, found := s.documents.GetDocument(ctx, documentId)
	if !found {
		return fmt.Errorf("%w: document %s", ragerr.ErrNotFound, documentId)
	}

	// all three steps run regardless; a partial failure is reported, never
	// swallowed
	var errs []error
	if err := s.blobs.Delete(doc.StoragePath); err != nil {
		errs = append(errs, fmt.Errorf("deleting stored file: %w", err))
	}
	if err := s.index.DeleteByDocument(ctx, documentId); err != nil {
		errs = append(errs, fmt.Errorf("deleting vector entries: %w", err))
	}
	if err := s.documents.DeleteDocument(ctx, documentId); err != nil {
		errs = append(errs, fmt.Errorf("deleting document record: %w", err))
	}
	return errors.Join(errs...)
}

func (s *service) ListDocuments(ctx context.Context) ([]model.Document, error) {
	return s.documents.ListDocuments(ctx)
}

func (s *service) InspectDocument(ctx context.Context, documentId string) (model.Document, uint64, error) {
	doc, found := s.documents.GetDocument(ctx, documentId)
	if !found {
		return model.Document{}, 0, fmt.Errorf("%w: document %s", ragerr.ErrNotFound, documentId)
	}
	count, err := s.index.CountByDocument(ctx, documentId)
	if err != nil {
		return model.Document{}, 0, err
	}
	return doc, count, nil
}
