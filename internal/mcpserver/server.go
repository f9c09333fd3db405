// Package mcpserver exposes retrieval and question answering as MCP tools
// so agent clients can use the document index directly.
package mcpserver

import (
	"net/http"

	"chatknowledge/internal/chat"
	"chatknowledge/internal/config"
	"chatknowledge/internal/rag"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const Version = "0.1.0"

type Server struct {
	ragService   rag.Service
	orchestrator *chat.Orchestrator
	topK         int
	server       *mcp.Server
}

func NewServer(ragService rag.Service, orchestrator *chat.Orchestrator, cfg *config.Config) *Server {
	impl := &mcp.Implementation{
		Name:    "chatknowledge",
		Version: Version,
	}

	s := &Server{
		ragService:   ragService,
		orchestrator: orchestrator,
		topK:         cfg.RetrievalTopK,
		server:       mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s
}

// HTTPHandler mounts the MCP server on the main router via the streamable
// HTTP transport.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}
