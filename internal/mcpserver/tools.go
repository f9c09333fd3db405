package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type SearchInput struct {
	Query      string `json:"query" jsonschema:"the search query to match against indexed document chunks"`
	TopK       int    `json:"top_k,omitempty" jsonschema:"maximum number of chunks to return"`
	DocumentId string `json:"document_id,omitempty" jsonschema:"restrict the search to a single document"`
}

type SearchOutput struct {
	Results []ChunkOutput `json:"results"`
	Count   int           `json:"count"`
}

type ChunkOutput struct {
	DocumentId string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	Content    string  `json:"content"`
	Score      float32 `json:"score"`
}

type AskInput struct {
	Question   string `json:"question" jsonschema:"the question to answer from the indexed documents"`
	DocumentId string `json:"document_id,omitempty" jsonschema:"restrict retrieval to a single document"`
}

type AskOutput struct {
	Answer      string        `json:"answer"`
	ContextUsed []ChunkOutput `json:"context_used"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Search the indexed documents and return the best matching chunks",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_documents",
		Description: "Answer a question grounded in the indexed documents",
	}, s.handleAsk)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = s.topK
	}

	hits, err := s.ragService.Search(ctx, input.Query, topK, input.DocumentId)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]ChunkOutput, len(hits)),
		Count:   len(hits),
	}
	for i, hit := range hits {
		output.Results[i] = ChunkOutput{
			DocumentId: hit.DocumentId,
			ChunkIndex: hit.ChunkIndex,
			Content:    hit.Text,
			Score:      hit.Score,
		}
	}
	return nil, output, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, hits, err := s.orchestrator.Ask(ctx, input.Question, 0, input.DocumentId)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:      answer,
		ContextUsed: make([]ChunkOutput, len(hits)),
	}
	for i, hit := range hits {
		output.ContextUsed[i] = ChunkOutput{
			DocumentId: hit.DocumentId,
			ChunkIndex: hit.ChunkIndex,
			Content:    hit.Text,
			Score:      hit.Score,
		}
	}
	return nil, output, nil
}
