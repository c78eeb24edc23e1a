package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kirillkom/lrhub/internal/config"
	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/observability/metrics"
)

type analyzerFake struct {
	result *domain.DocumentAnalysis
	err    error
	calls  int
}

func (f *analyzerFake) Analyze(_ context.Context, ref domain.DocumentRef, _ string) (*domain.DocumentAnalysis, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := *f.result
	out.Ref = ref
	return &out, nil
}

type summarizerFake struct {
	result domain.SummaryResult
	err    error
}

func (f summarizerFake) SummarizeDocument(context.Context, domain.DocumentRef) (domain.SummaryResult, error) {
	return f.result, f.err
}

type recommenderFake struct {
	items     []domain.CatalogItem
	err       error
	gotQuery  string
	gotFilter domain.CatalogFilter
}

func (f *recommenderFake) Recommend(_ context.Context, query string, filter domain.CatalogFilter) ([]domain.CatalogItem, error) {
	f.gotQuery = query
	f.gotFilter = filter
	return f.items, f.err
}

type downloadFake struct {
	url       string
	err       error
	gotRef    domain.DocumentRef
	gotUserID string
}

func (f *downloadFake) Download(_ context.Context, ref domain.DocumentRef, userID string) (string, error) {
	f.gotRef = ref
	f.gotUserID = userID
	return f.url, f.err
}

type testDeps struct {
	analyzer    *analyzerFake
	summarizer  summarizerFake
	recommender *recommenderFake
	downloads   *downloadFake
}

func newTestDeps() *testDeps {
	return &testDeps{
		analyzer: &analyzerFake{result: &domain.DocumentAnalysis{
			Title:       "Geography 101",
			ScoreResult: domain.ScoreResult{Score: 57.74, Match: "Paris is the capital of France."},
		}},
		summarizer:  summarizerFake{result: domain.SummaryResult{Summary: "A summary."}},
		recommender: &recommenderFake{},
		downloads:   &downloadFake{url: "https://cdn.example/files/calc.pdf"},
	}
}

func (d *testDeps) handler(cfg config.Config, opts ...Option) http.Handler {
	if cfg.RelatedThreshold == 0 {
		cfg.RelatedThreshold = 20
	}
	return NewRouter(cfg, d.analyzer, d.summarizer, d.recommender, d.downloads, opts...).Handler()
}

func newTestHandler(cfg config.Config) http.Handler {
	return newTestDeps().handler(cfg)
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	return res
}

func decodeBody(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestAnalyzeReturnsRelevanceContract(t *testing.T) {
	deps := newTestDeps()
	res := serve(t, deps.handler(config.Config{}), http.MethodGet, "/analyze/note/4/?query=capital+of+france")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	body := decodeBody(t, res)
	if body["type"] != "Note" || body["id"] != float64(4) || body["title"] != "Geography 101" {
		t.Fatalf("unexpected identity fields: %v", body)
	}
	if body["relevance_score"] != 57.74 || body["best_match"] != "Paris is the capital of France." {
		t.Fatalf("unexpected score fields: %v", body)
	}
	if body["suggestion"] != "related" {
		t.Fatalf("expected related suggestion, got %v", body["suggestion"])
	}
	if res.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestAnalyzeResourceBelowThresholdIsNotRelated(t *testing.T) {
	deps := newTestDeps()
	deps.analyzer.result.Score = 12.5
	res := serve(t, deps.handler(config.Config{}), http.MethodGet, "/analyze/resource/2/?query=cooking")
	body := decodeBody(t, res)
	if body["type"] != "StudentResource" || body["suggestion"] != "not related" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestAnalyzeMissingQueryReturns400BeforeAnalysis(t *testing.T) {
	deps := newTestDeps()
	res := serve(t, deps.handler(config.Config{}), http.MethodGet, "/analyze/note/4/?query=%20%20")
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if body := decodeBody(t, res); body["error"] != "Query parameter is required" {
		t.Fatalf("unexpected error body: %v", body)
	}
	if deps.analyzer.calls != 0 {
		t.Fatalf("analyzer must not run without a query")
	}
}

func TestAnalyzeNotFoundReturns404(t *testing.T) {
	deps := newTestDeps()
	deps.analyzer.err = domain.WrapError(domain.ErrDocumentNotFound, "resolve document", errors.New("note:9"))
	res := serve(t, deps.handler(config.Config{}), http.MethodGet, "/analyze/note/9/?query=x")
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestAnalyzeFetchFailureReturns500WithMessage(t *testing.T) {
	deps := newTestDeps()
	deps.analyzer.err = errors.New("fetch note:4: connection refused")
	res := serve(t, deps.handler(config.Config{}), http.MethodGet, "/analyze/note/4/?query=x")
	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}
	if body := decodeBody(t, res); body["error"] != "Analysis failed: fetch note:4: connection refused" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestUnknownKindIsRejectedByContract(t *testing.T) {
	deps := newTestDeps()
	res := serve(t, deps.handler(config.Config{}), http.MethodGet, "/analyze/video/4/?query=x")
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if deps.analyzer.calls != 0 {
		t.Fatalf("analyzer must not run for unknown kinds")
	}
}

func TestNonNumericIDIsRejected(t *testing.T) {
	res := serve(t, newTestHandler(config.Config{}), http.MethodGet, "/pdf/note/abc/summarize/")
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestSummarizeEmptyExtraction(t *testing.T) {
	deps := newTestDeps()
	deps.summarizer = summarizerFake{}
	res := serve(t, deps.handler(config.Config{}), http.MethodGet, "/pdf/resource/3/summarize/")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if body := decodeBody(t, res); body["summary"] != "No text extracted from this PDF." {
		t.Fatalf("unexpected summary: %v", body)
	}
}

func TestSummarizeFailureReportsAnalysisFailed(t *testing.T) {
	deps := newTestDeps()
	deps.summarizer = summarizerFake{err: errors.New("pdf parse failed")}
	res := serve(t, deps.handler(config.Config{}), http.MethodGet, "/pdf/note/1/summarize/")
	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}
	if body := decodeBody(t, res); body["error"] != "Analysis failed: pdf parse failed" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestSummarizeReturnsSummary(t *testing.T) {
	res := serve(t, newTestHandler(config.Config{}), http.MethodGet, "/pdf/note/1/summarize/")
	if body := decodeBody(t, res); body["summary"] != "A summary." {
		t.Fatalf("unexpected summary: %v", body)
	}
}

func TestSearchRecommendationsPassesQueryAndFilter(t *testing.T) {
	deps := newTestDeps()
	deps.recommender.items = []domain.CatalogItem{{Type: domain.KindResource, ID: 7, Title: "Python Basics"}}
	res := serve(t, deps.handler(config.Config{}), http.MethodGet, "/search_recommendations/?q=python&filter=resources")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if deps.recommender.gotQuery != "python" || deps.recommender.gotFilter != domain.FilterResources {
		t.Fatalf("unexpected recommender input: %q %q", deps.recommender.gotQuery, deps.recommender.gotFilter)
	}
	body := decodeBody(t, res)
	recs, ok := body["recommendations"].([]any)
	if body["query"] != "python" || !ok || len(recs) != 1 {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestSearchRecommendationsBlankQueryReturnsEmptyList(t *testing.T) {
	res := serve(t, newTestHandler(config.Config{}), http.MethodGet, "/search_recommendations/")
	body := decodeBody(t, res)
	recs, ok := body["recommendations"].([]any)
	if !ok || len(recs) != 0 {
		t.Fatalf("expected empty list, got %v", body["recommendations"])
	}
}

func TestSearchRecommendationsRejectsUnknownFilter(t *testing.T) {
	res := serve(t, newTestHandler(config.Config{}), http.MethodGet, "/search_recommendations/?q=x&filter=videos")
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestDownloadRedirectsAndPassesUser(t *testing.T) {
	deps := newTestDeps()
	req := httptest.NewRequest(http.MethodGet, "/download/note/5/", nil)
	req.Header.Set("X-User-Id", "42")
	res := httptest.NewRecorder()
	deps.handler(config.Config{}).ServeHTTP(res, req)

	if res.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "https://cdn.example/files/calc.pdf" {
		t.Fatalf("unexpected redirect location %q", loc)
	}
	if deps.downloads.gotRef != domain.NoteRef(5) || deps.downloads.gotUserID != "42" {
		t.Fatalf("unexpected download input: %v %q", deps.downloads.gotRef, deps.downloads.gotUserID)
	}
}

func TestDownloadNotFound(t *testing.T) {
	deps := newTestDeps()
	deps.downloads.err = domain.WrapError(domain.ErrDocumentNotFound, "resolve document", errors.New("resource:8"))
	res := serve(t, deps.handler(config.Config{}), http.MethodGet, "/download/resource/8/")
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestHealthzReportsBreakers(t *testing.T) {
	deps := newTestDeps()
	h := deps.handler(config.Config{}, WithBreakerStates(func() map[string]string {
		return map[string]string{"fetch.remote": "closed"}
	}))
	body := decodeBody(t, serve(t, h, http.MethodGet, "/healthz"))
	breakers, ok := body["breakers"].(map[string]any)
	if body["status"] != "ok" || !ok || breakers["fetch.remote"] != "closed" {
		t.Fatalf("unexpected healthz body: %v", body)
	}
}

func TestMetricsEndpointIsServed(t *testing.T) {
	deps := newTestDeps()
	h := deps.handler(config.Config{}, WithMetrics(metrics.NewHTTPServerMetrics(serviceName)))
	serve(t, h, http.MethodGet, "/analyze/note/1/?query=capital")
	res := serve(t, h, http.MethodGet, "/metrics")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.WrapError(domain.ErrInvalidInput, "op", errors.New("x")), http.StatusBadRequest},
		{domain.WrapError(domain.ErrDocumentNotFound, "op", errors.New("x")), http.StatusNotFound},
		{domain.WrapError(domain.ErrUnsupportedFormat, "op", errors.New("x")), http.StatusUnprocessableEntity},
		{domain.WrapError(domain.ErrTemporary, "op", errors.New("x")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
			t.Fatalf("mapErrorToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
