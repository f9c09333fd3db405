// @title           Document Chat API
// @version         1.0
// @description     Document ingestion, retrieval and chat grounded in uploaded documents.
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"chatknowledge/internal/chat"
	"chatknowledge/internal/config"
	"chatknowledge/internal/data/blob"
	"chatknowledge/internal/data/redisStore"
	"chatknowledge/internal/data/store"
	"chatknowledge/internal/domain/model"
	"chatknowledge/internal/handlers"
	"chatknowledge/internal/mcpserver"
	"chatknowledge/internal/rag"
	"chatknowledge/internal/rag/chunker"
	"chatknowledge/internal/rag/embedding"
	"chatknowledge/internal/rag/embedding/googleEmbedding"
	"chatknowledge/internal/rag/embedding/openaiEmbedding"
	"chatknowledge/internal/rag/extract"
	"chatknowledge/internal/rag/llm"
	"chatknowledge/internal/rag/vectorDB/qdrantDB"
	"chatknowledge/internal/server"
	"chatknowledge/pkg/logger_i"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		println("Bad configuration:", err.Error())
		os.Exit(1)
	}

	logger_i.Init(cfg.Prod)
	var logger = logger_i.NewLogger("main")

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//stores with in-memory fallback when Redis is offline
	var documentStore model.DocumentStore
	var chatStore model.ChatStore
	if redisClient := redisStore.New(serviceContext, cfg); redisClient != nil {
		documentStore = store.NewRedisDocumentStore(redisClient)
		chatStore = store.NewRedisChatStore(redisClient)
	} else {
		logger.Error("Redis is offline, falling back to in-memory stores")
		documentStore = store.InitInMemoryDocumentStore()
		chatStore = store.InitInMemoryChatStore()
	}

	uploadStorage, err := blob.NewLocalStorage(cfg.UploadDir, cfg.MaxUploadBytes, cfg.AllowedMediaTypes)
	if err != nil {
		logger.Error("Upload storage failed to initialize", "error", err)
		return
	}

	vectorIndex, err := qdrantDB.New(serviceContext, cfg)
	if err != nil {
		logger.Error("Vector index failed to initialize", "error", err)
		return
	}
	if err := vectorIndex.EnsureCollection(serviceContext); err != nil {
		logger.Error("Vector collection setup failed", "error", err)
		return
	}

	var embedder embedding.Embedder
	switch cfg.EmbeddingProvider {
	case config.EmbeddingProviderGemini:
		embedder, err = googleEmbedding.NewClient(serviceContext, cfg.EmbeddingModel, cfg.EmbeddingAPIKey, cfg.EmbeddingDimension)
	case config.EmbeddingProviderOpenAI:
		embedder, err = openaiEmbedding.NewClient(cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDimension)
	}
	if err != nil {
		logger.Error("Embedding client failed to initialize", "error", err)
		return
	}

	llmProvider, err := llm.New(cfg)
	if err != nil {
		logger.Error("LLM provider failed to initialize", "error", err)
		return
	}

	textChunker, err := chunker.New(cfg.ChunkWindowWords, cfg.ChunkOverlapWords)
	if err != nil {
		logger.Error("Bad chunking configuration", "error", err)
		return
	}

	ragService := rag.NewService(documentStore, uploadStorage, extract.New(), textChunker, embedder, vectorIndex, llmProvider)
	orchestrator := chat.NewOrchestrator(chatStore, ragService, cfg)

	routeHandlers := server.Handlers{
		Documents: handlers.NewDocumentHandler(ragService, orchestrator, cfg),
		Chat:      handlers.NewChatHandler(orchestrator),
		MCP:       mcpserver.NewServer(ragService, orchestrator, cfg),
	}

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(cfg, routeHandlers)

	<-stopExecution
	logger.Info("Server stopped")
}
