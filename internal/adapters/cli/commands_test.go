package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/core/usecase"
	"github.com/kirillkom/lrhub/internal/infrastructure/chunking"
	"github.com/kirillkom/lrhub/internal/infrastructure/vectorspace"
)

type mapSource map[string]string

func (m mapSource) FetchText(_ context.Context, source string) (string, error) {
	text, ok := m[source]
	if !ok {
		return "", errors.New("no such source")
	}
	return text, nil
}

func newTestDeps(files map[string]string) Deps {
	segmenter := chunking.NewSegmenter()
	vectorizer := vectorspace.NewVectorizer()
	return Deps{
		Source:     mapSource(files),
		Scorer:     usecase.NewRelevanceScorer(segmenter, vectorizer),
		Summarizer: usecase.NewSummarizer(segmenter, vectorizer),
		Matcher:    usecase.NewCorpusMatcher(vectorizer),
	}
}

func run(t *testing.T, deps Deps, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(deps)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

const geography = "The Eiffel Tower is in Paris. Paris is the capital of France. Berlin is in Germany."

func TestScoreCommandPrintsJSON(t *testing.T) {
	out, err := run(t, newTestDeps(map[string]string{"geo.txt": geography}), "", "score", "geo.txt", "-q", "capital of France", "--json")
	if err != nil {
		t.Fatalf("score command error = %v", err)
	}
	var got domain.ScoreResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if !strings.HasPrefix(got.Match, "Paris is the capital of France.") {
		t.Fatalf("unexpected match %q", got.Match)
	}
}

func TestScoreCommandRequiresQuery(t *testing.T) {
	if _, err := run(t, newTestDeps(map[string]string{"geo.txt": geography}), "", "score", "geo.txt"); err == nil {
		t.Fatalf("expected error without --query")
	}
}

func TestExtractCommandReportsFetchError(t *testing.T) {
	if _, err := run(t, newTestDeps(nil), "", "extract", "missing.pdf"); err == nil {
		t.Fatalf("expected fetch error")
	}
}

func TestSummarizeCommandEmptyDocument(t *testing.T) {
	out, err := run(t, newTestDeps(map[string]string{"scan.pdf": ""}), "", "summarize", "scan.pdf")
	if err != nil {
		t.Fatalf("summarize command error = %v", err)
	}
	if strings.TrimSpace(out) != usecase.NoContentSummary {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMatchCommandReadsStdin(t *testing.T) {
	items := `[
		{"type":"resource","id":1,"title":"Python Basics","secondary_text":"Intro to programming"},
		{"type":"resource","id":2,"title":"Cooking","secondary_text":"Recipes"}
	]`
	out, err := run(t, newTestDeps(nil), items, "match", "-q", "learn python", "--top", "1")
	if err != nil {
		t.Fatalf("match command error = %v", err)
	}
	if !strings.Contains(out, "Python Basics") || strings.Contains(out, "Cooking") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
