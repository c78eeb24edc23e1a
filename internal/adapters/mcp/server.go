// Package mcpadapter exposes the document engine as MCP tools.
package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/core/ports"
	"github.com/kirillkom/lrhub/internal/core/usecase"
)

type Tools struct {
	source      ports.TextSource
	scorer      *usecase.RelevanceScorer
	summarizer  *usecase.Summarizer
	recommender ports.Recommender
}

// NewTools wires the tool handlers. source is expected to be lenient: fetch
// failures surface as empty text. recommender may be nil when no catalog is
// reachable; the recommend tool is then not registered.
func NewTools(source ports.TextSource, scorer *usecase.RelevanceScorer, summarizer *usecase.Summarizer, recommender ports.Recommender) *Tools {
	return &Tools{source: source, scorer: scorer, summarizer: summarizer, recommender: recommender}
}

func (t *Tools) NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer("lrhub-docengine", version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("score",
		mcp.WithDescription("Score how relevant a document is to a query and return its best matching sentence."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Local path or http(s) URL of the document")),
		mcp.WithString("query", mcp.Required(), mcp.Description("Free-text query")),
		mcp.WithNumber("max_words", mcp.Description("Word budget of the returned match")),
	), t.handleScore)

	s.AddTool(mcp.NewTool("summarize",
		mcp.WithDescription("Extractive summary of a document made of its highest-weighted sentences."),
		mcp.WithString("source", mcp.Required(), mcp.Description("Local path or http(s) URL of the document")),
		mcp.WithNumber("sentences", mcp.Description("Number of sentences to keep")),
		mcp.WithNumber("max_words", mcp.Description("Word budget of the summary")),
	), t.handleSummarize)

	if t.recommender != nil {
		s.AddTool(mcp.NewTool("recommend",
			mcp.WithDescription("Rank catalog notes and resources by similarity to a query."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Free-text query")),
			mcp.WithString("filter", mcp.Description("Restrict to one kind"), mcp.Enum("", "notes", "resources")),
		), t.handleRecommend)
	}
	return s
}

func (t *Tools) handleScore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query := req.GetString("query", "")
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	text, err := t.source.FetchText(ctx, source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}
	result := t.scorer.Score(text, query, req.GetInt("max_words", usecase.DefaultScoreMaxWords))
	return jsonResult(result)
}

func (t *Tools) handleSummarize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := t.source.FetchText(ctx, source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}
	summary := t.summarizer.Summarize(
		text,
		req.GetInt("sentences", usecase.DefaultSummarySentences),
		req.GetInt("max_words", usecase.DefaultSummaryMaxWords),
	)
	return jsonResult(domain.SummaryResult{Summary: summary})
}

func (t *Tools) handleRecommend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filter := domain.CatalogFilter(req.GetString("filter", ""))
	switch filter {
	case domain.FilterAll, domain.FilterNotes, domain.FilterResources:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown filter %q", filter)), nil
	}

	items, err := t.recommender.Recommend(ctx, query, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommend failed: %v", err)), nil
	}
	return jsonResult(items)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}
