package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kirillkom/lrhub/internal/adapters/cli"
	"github.com/kirillkom/lrhub/internal/bootstrap"
	"github.com/kirillkom/lrhub/internal/config"
	"github.com/kirillkom/lrhub/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLoggerTo(os.Stderr, "lrhub-docengine", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := bootstrap.NewEngine(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(cli.Deps{
		Source:     engine.Source,
		Scorer:     engine.Scorer,
		Summarizer: engine.Summarizer,
		Matcher:    engine.Matcher,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
