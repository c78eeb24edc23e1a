package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/kirillkom/lrhub/internal/adapters/mcp"
	"github.com/kirillkom/lrhub/internal/bootstrap"
	"github.com/kirillkom/lrhub/internal/config"
	"github.com/kirillkom/lrhub/internal/core/ports"
	"github.com/kirillkom/lrhub/internal/core/usecase"
	"github.com/kirillkom/lrhub/internal/infrastructure/acquisition"
	"github.com/kirillkom/lrhub/internal/observability/logging"
)

var version = "dev"

func main() {
	cfg := config.Load()
	// stdout carries the MCP stream.
	logger := logging.NewJSONLoggerTo(os.Stderr, "lrhub-mcp", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := bootstrap.NewEngine(cfg)
	if err != nil {
		logger.Error("engine_init_failed", "error", err)
		os.Exit(1)
	}

	var recommender ports.Recommender
	catalog, closeCatalog, err := bootstrap.OpenCatalog(ctx, cfg)
	if err != nil {
		logger.Warn("catalog_unavailable", "error", err)
	} else {
		defer closeCatalog()
		recommender = usecase.NewRecommendUseCase(catalog, engine.Matcher, cfg.RecommendTopN)
	}

	tools := mcpadapter.NewTools(acquisition.NewLenient(engine.Source), engine.Scorer, engine.Summarizer, recommender)
	if err := server.ServeStdio(tools.NewServer(version)); err != nil {
		logger.Error("mcp_server_failed", "error", err)
		os.Exit(1)
	}
}
