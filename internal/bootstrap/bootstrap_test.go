package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kirillkom/lrhub/internal/config"
)

func TestNewEngineScoresLocalFile(t *testing.T) {
	dir := t.TempDir()
	text := "The Eiffel Tower is in Paris. Paris is the capital of France. Berlin is in Germany."
	if err := os.WriteFile(filepath.Join(dir, "geo.txt"), []byte(text), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	engine, err := NewEngine(config.Config{StoragePath: dir, FetchTimeoutSeconds: 5})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	got, err := engine.Source.FetchText(context.Background(), "geo.txt")
	if err != nil {
		t.Fatalf("FetchText() error = %v", err)
	}
	result := engine.Scorer.Score(got, "capital of France", 40)
	if !strings.HasPrefix(result.Match, "Paris is the capital of France.") || result.Score <= 0 {
		t.Fatalf("unexpected score result: %+v", result)
	}
}
