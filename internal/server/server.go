package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"chatknowledge/internal/adapter/utils"
	"chatknowledge/internal/config"
	"chatknowledge/internal/handlers"
	"chatknowledge/internal/mcpserver"
	"chatknowledge/internal/middleware"
	"chatknowledge/pkg/logger_i"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

type Handlers struct {
	Documents *handlers.DocumentHandler
	Chat      *handlers.ChatHandler
	MCP       *mcpserver.Server
}

func CreateServer(cfg *config.Config, h Handlers) {
	_logger = logger_i.NewLogger("Server")

	r := chi.NewRouter()
	utils.InitSwagger(r)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", middleware.Wrap(handlers.HealthHandler))

	r.Route("/docs", func(r chi.Router) {
		r.Get("/", middleware.Wrap(h.Documents.ListHandler))
		r.Post("/upload", middleware.Wrap(h.Documents.UploadHandler))
		r.Post("/process", middleware.Wrap(h.Documents.ProcessHandler))
		r.Post("/ask", middleware.Wrap(h.Documents.AskHandler))
		r.Post("/{id}/extract", middleware.Wrap(h.Documents.ExtractHandler))
		r.Post("/{id}/embed", middleware.Wrap(h.Documents.EmbedHandler))
		r.Get("/{id}/storage", middleware.Wrap(h.Documents.StorageHandler))
		r.Delete("/{id}", middleware.Wrap(h.Documents.DeleteHandler))
	})

	r.Route("/chat", func(r chi.Router) {
		r.Post("/start", middleware.Wrap(h.Chat.StartHandler))
		r.Post("/send", middleware.Wrap(h.Chat.SendHandler))
		r.Get("/sessions", middleware.Wrap(h.Chat.SessionsHandler))
		r.Get("/{sessionId}/messages", middleware.Wrap(h.Chat.MessagesHandler))
		r.Delete("/{sessionId}", middleware.Wrap(h.Chat.DeleteHandler))
	})

	r.Handle("/mcp", h.MCP.HTTPHandler())

	server = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", cfg.ListenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully: %s", err)
		}

		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully is shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
