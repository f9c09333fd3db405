package rag_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"chatknowledge/internal/data/blob"
	"chatknowledge/internal/domain/model"
	"chatknowledge/internal/rag"
	"chatknowledge/internal/rag/chunker"
	"chatknowledge/internal/rag/extract"
	"chatknowledge/internal/rag/ragerr"
	"chatknowledge/internal/rag/vectorDB"
)

type testEnv struct {
	service  rag.Service
	store    *MockDocumentStore
	index    *MockIndex
	embedder *MockEmbedder
	llm      *MockLLM
	blobs    *MockBlobs
}

func newTestEnv(t *testing.T, useDisk bool) *testEnv {
	t.Helper()

	env := &testEnv{
		store:    NewMockDocumentStore(),
		index:    &MockIndex{},
		embedder: &MockEmbedder{},
		llm:      &MockLLM{},
		blobs:    NewMockBlobs(),
	}

	var blobs rag.BlobStorage = env.blobs
	if useDisk {
		// extraction reads from the filesystem, so lifecycle tests need
		// real storage
		diskBlobs, err := blob.NewLocalStorage(t.TempDir(), 1<<20, []string{"text/plain"})
		if err != nil {
			t.Fatal(err)
		}
		blobs = diskBlobs
	}

	c, err := chunker.New(10, 3)
	if err != nil {
		t.Fatal(err)
	}
	env.service = rag.NewService(env.store, blobs, extract.New(), c, env.embedder, env.index, env.llm)
	return env
}

func uploadText(t *testing.T, env *testEnv, content string) model.Document {
	t.Helper()
	doc, err := env.service.CreateDocument(context.Background(), "notes.txt", "text/plain", strings.NewReader(content))
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	return doc
}

func TestCreateDocument_RejectsMediaType(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.service.CreateDocument(context.Background(), "pic.png", "image/png", strings.NewReader("x"))
	if !errors.Is(err, ragerr.ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestCreateDocument_OrphanBlobCleanedUp(t *testing.T) {
	env := newTestEnv(t, false)
	env.store.OnSaveDocument = func(ctx context.Context, doc model.Document) error {
		return errors.New("store down")
	}

	_, err := env.service.CreateDocument(context.Background(), "notes.txt", "text/plain", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error when the record cannot be saved")
	}
	if len(env.blobs.Deleted) != 1 {
		t.Errorf("orphaned blob was not removed: %v", env.blobs.Deleted)
	}
}

func TestLifecycle_UploadExtractEmbed(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	doc := uploadText(t, env, "one two three four five six seven eight nine ten eleven twelve")
	if doc.Status != model.StatusUploaded {
		t.Fatalf("fresh document should be uploaded, got %s", doc.Status)
	}

	doc, err := env.service.ExtractDocument(ctx, doc.Id)
	if err != nil {
		t.Fatalf("ExtractDocument failed: %v", err)
	}
	if doc.Status != model.StatusExtracted || doc.ExtractedText == "" {
		t.Fatalf("extraction did not advance the document: %+v", doc)
	}

	// re-running extraction must be a harmless no-op
	again, err := env.service.ExtractDocument(ctx, doc.Id)
	if err != nil {
		t.Fatalf("repeat extraction failed: %v", err)
	}
	if again.Status != model.StatusExtracted {
		t.Errorf("repeat extraction changed status to %s", again.Status)
	}

	doc, chunkCount, err := env.service.EmbedDocument(ctx, doc.Id)
	if err != nil {
		t.Fatalf("EmbedDocument failed: %v", err)
	}
	if doc.Status != model.StatusEmbedded {
		t.Errorf("embed did not advance status: %s", doc.Status)
	}
	// 12 words with a 10/3 window gives [0,10) and [7,12)
	if chunkCount != 2 {
		t.Errorf("got %d chunks, want 2", chunkCount)
	}
	if len(env.index.Upserted) != 2 {
		t.Errorf("index holds %d chunks, want 2", len(env.index.Upserted))
	}
	if env.index.Upserted[0].Key() != doc.Id+"_0" {
		t.Errorf("wrong chunk key: %s", env.index.Upserted[0].Key())
	}

	// prior vectors are always cleared first
	if len(env.index.Deleted) == 0 || env.index.Deleted[0] != doc.Id {
		t.Errorf("embed did not clear prior vectors: %v", env.index.Deleted)
	}
}

func TestEmbedDocument_RequiresExtractedText(t *testing.T) {
	env := newTestEnv(t, true)

	doc := uploadText(t, env, "some words here")
	_, _, err := env.service.EmbedDocument(context.Background(), doc.Id)
	if !errors.Is(err, ragerr.ErrIndexingFailure) {
		t.Fatalf("got %v, want ErrIndexingFailure", err)
	}
}

func TestEmbedDocument_FailureLeavesStatus(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	doc := uploadText(t, env, "one two three four five six seven eight nine ten eleven twelve")
	if _, err := env.service.ExtractDocument(ctx, doc.Id); err != nil {
		t.Fatal(err)
	}

	env.embedder.OnBatchEmbedding = func(ctx context.Context, chunks []string) ([][]float32, error) {
		return nil, errors.New("api limit")
	}

	_, _, err := env.service.EmbedDocument(ctx, doc.Id)
	if !errors.Is(err, ragerr.ErrIndexingFailure) {
		t.Fatalf("got %v, want ErrIndexingFailure", err)
	}

	got, _ := env.store.GetDocument(ctx, doc.Id)
	if got.Status != model.StatusExtracted {
		t.Errorf("failed embed moved status to %s", got.Status)
	}
}

func TestEmbedDocument_NotFound(t *testing.T) {
	env := newTestEnv(t, true)

	_, _, err := env.service.EmbedDocument(context.Background(), "ghost")
	if !errors.Is(err, ragerr.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteDocument_RemovesEverything(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	doc := uploadText(t, env, "content")
	if err := env.service.DeleteDocument(ctx, doc.Id); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}

	if _, found := env.store.GetDocument(ctx, doc.Id); found {
		t.Error("record survived delete")
	}
	if len(env.blobs.Deleted) != 1 {
		t.Error("stored file survived delete")
	}
	if len(env.index.Deleted) != 1 || env.index.Deleted[0] != doc.Id {
		t.Error("vectors survived delete")
	}
}

func TestDeleteDocument_PartialFailureIsReported(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	doc := uploadText(t, env, "content")
	env.index.OnDeleteByDocument = func(ctx context.Context, documentId string) error {
		return errors.New("index offline")
	}

	err := env.service.DeleteDocument(ctx, doc.Id)
	if err == nil {
		t.Fatal("index failure must surface")
	}
	// the other steps still ran
	if _, found := env.store.GetDocument(ctx, doc.Id); found {
		t.Error("record should be gone despite the index failure")
	}
	if len(env.blobs.Deleted) != 1 {
		t.Error("file should be gone despite the index failure")
	}
}

func TestSearch_Validation(t *testing.T) {
	env := newTestEnv(t, false)

	if _, err := env.service.Search(context.Background(), "", 3, ""); err == nil {
		t.Error("empty query must be rejected")
	}
	if _, err := env.service.Search(context.Background(), "q", 0, ""); err == nil {
		t.Error("non-positive top_k must be rejected")
	}
}

func TestSearch_EmptyIndexIsSuccess(t *testing.T) {
	env := newTestEnv(t, false)
	env.index.OnSearch = func(ctx context.Context, vector []float32, topK int, documentScope string) ([]model.RetrievedChunk, error) {
		return []model.RetrievedChunk{}, nil
	}

	hits, err := env.service.Search(context.Background(), "anything", 3, "")
	if err != nil {
		t.Fatalf("empty index should not error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits", len(hits))
	}
}

func TestSearch_PassesScopeAndTopK(t *testing.T) {
	env := newTestEnv(t, false)

	var gotTopK int
	var gotScope string
	env.index.OnSearch = func(ctx context.Context, vector []float32, topK int, documentScope string) ([]model.RetrievedChunk, error) {
		gotTopK, gotScope = topK, documentScope
		return []model.RetrievedChunk{{DocumentId: "d1", Text: "hit"}}, nil
	}

	if _, err := env.service.Search(context.Background(), "q", 5, "d1"); err != nil {
		t.Fatal(err)
	}
	if gotTopK != 5 || gotScope != "d1" {
		t.Errorf("topK=%d scope=%q did not reach the index", gotTopK, gotScope)
	}
}

func TestSearch_EmbeddingFailure(t *testing.T) {
	env := newTestEnv(t, false)
	env.embedder.OnGetEmbedding = func(ctx context.Context, query string) ([]float32, error) {
		return nil, errors.New("api limit")
	}

	if _, err := env.service.Search(context.Background(), "q", 3, ""); err == nil {
		t.Fatal("embedding failure must surface")
	}
}

var _ vectorDB.Index = (*MockIndex)(nil)
