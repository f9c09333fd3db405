package qdrantDB

import (
	"context"
	"fmt"

	"chatknowledge/internal/config"
	"chatknowledge/internal/domain/model"
	"chatknowledge/internal/rag/vectorDB"
	"chatknowledge/pkg/logger_i"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

type ClientHolder struct {
	qObj       *qdrant.Client
	collection string
	dimension  uint64
	logger     *logger_i.Logger
}

func New(ctx context.Context, cfg *config.Config) (*ClientHolder, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     cfg.QdrantHost,
		Port:     cfg.QdrantPort,
		UseTLS:   cfg.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		return nil, fmt.Errorf("could not instantiate qdrant client: %w", err)
	}

	holder := &ClientHolder{
		qObj:       client,
		collection: cfg.Collection,
		dimension:  uint64(cfg.EmbeddingDimension),
		logger:     logger_i.NewLogger("Qdrant"),
	}
	go holder.closeOnDone(ctx)
	return holder, nil
}

func (db *ClientHolder) closeOnDone(ctx context.Context) {
	<-ctx.Done()
	db.logger.Info("Shutting down Qdrant")
	if err := db.qObj.Close(); err != nil {
		db.logger.Error("could not close Qdrant: ", "error:", err)
	}
}

func (db *ClientHolder) EnsureCollection(ctx context.Context) error {
	exists, err := db.qObj.CollectionExists(ctx, db.collection)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = db.qObj.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: db.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     db.dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return err
	}

	// keyword index so scoped search, count and per-document deletion can
	// filter on document_id
	_, err = db.qObj.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: db.collection,
		FieldName:      "document_id",
		FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
	})
	return err
}

// pointId maps the external chunk key onto a deterministic UUID: qdrant only
// accepts UUID or integer ids, and re-embedding must overwrite in place.
func pointId(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

func (db *ClientHolder) UpsertBatch(ctx context.Context, chunks []vectorDB.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(pointId(chunk.Key())),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"chunk_key":   chunk.Key(),
				"document_id": chunk.DocumentId,
				"chunk_index": chunk.Index,
				"content":     chunk.Text,
			}),
		}
	}

	_, err := db.qObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: db.collection,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (db *ClientHolder) Search(ctx context.Context, vector []float32, topK int, documentScope string) ([]model.RetrievedChunk, error) {
	loggr := db.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	query := &qdrant.QueryPoints{
		CollectionName: db.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if documentScope != "" {
		query.Filter = documentFilter(documentScope)
	}

	result, err := db.qObj.Query(ctx, query)
	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	hits := make([]model.RetrievedChunk, 0, len(result))
	for _, hit := range result {
		hits = append(hits, model.RetrievedChunk{
			DocumentId: hit.Payload["document_id"].GetStringValue(),
			ChunkIndex: int(hit.Payload["chunk_index"].GetIntegerValue()),
			Text:       hit.Payload["content"].GetStringValue(),
			Score:      hit.Score,
		})
	}
	loggr.Debug("Search finished", "hits", len(hits))
	return hits, nil
}

func (db *ClientHolder) DeleteByDocument(ctx context.Context, documentId string) error {
	_, err := db.qObj.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: db.collection,
		Points:         qdrant.NewPointsSelectorFilter(documentFilter(documentId)),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant delete for document %s failed: %w", documentId, err)
	}
	return nil
}

func (db *ClientHolder) CountByDocument(ctx context.Context, documentId string) (uint64, error) {
	return db.qObj.Count(ctx, &qdrant.CountPoints{
		CollectionName: db.collection,
		Filter:         documentFilter(documentId),
		Exact:          qdrant.PtrOf(true),
	})
}

func documentFilter(documentId string) *qdrant.Filter {
	return &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("document_id", documentId),
		},
	}
}
