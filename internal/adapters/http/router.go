package httpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	apigen "github.com/kirillkom/lrhub/internal/adapters/http/openapi"
	"github.com/kirillkom/lrhub/internal/config"
	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/core/ports"
	"github.com/kirillkom/lrhub/internal/observability/metrics"
)

const (
	serviceName = "lrhub-api"

	noTextExtracted  = "No text extracted from this PDF."
	backpressureWait = 250 * time.Millisecond
)

type Router struct {
	cfg         config.Config
	analyzer    ports.DocumentAnalyzer
	summarizer  ports.DocumentSummarizer
	recommender ports.Recommender
	downloads   ports.DownloadTracker

	validator *requestValidator
	metrics   *metrics.HTTPServerMetrics
	breakers  func() map[string]string
}

type Option func(*Router)

func WithMetrics(m *metrics.HTTPServerMetrics) Option {
	return func(rt *Router) { rt.metrics = m }
}

// WithBreakerStates reports circuit breaker states on /healthz.
func WithBreakerStates(states func() map[string]string) Option {
	return func(rt *Router) { rt.breakers = states }
}

// NewRouter panics if the embedded OpenAPI document is invalid.
func NewRouter(
	cfg config.Config,
	analyzer ports.DocumentAnalyzer,
	summarizer ports.DocumentSummarizer,
	recommender ports.Recommender,
	downloads ports.DownloadTracker,
	opts ...Option,
) *Router {
	doc, err := apigen.Load(context.Background())
	if err != nil {
		panic(fmt.Sprintf("httpadapter: %v", err))
	}
	validator, err := newRequestValidator(doc)
	if err != nil {
		panic(fmt.Sprintf("httpadapter: %v", err))
	}

	rt := &Router{
		cfg:         cfg,
		analyzer:    analyzer,
		summarizer:  summarizer,
		recommender: recommender,
		downloads:   downloads,
		validator:   validator,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}

	gate := func(next http.Handler) http.Handler {
		return backpressureMiddleware(next, rt.cfg.APIMaxInFlight, backpressureWait)
	}
	apigen.HandlerWithOptions(rt, apigen.StdHTTPServerOptions{
		BaseRouter: mux,
		Middlewares: map[string]func(http.Handler) http.Handler{
			"analyzeDocument":   gate,
			"summarizeDocument": gate,
		},
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err.Error())
		},
	})

	var handler http.Handler = rt.validator.middleware(mux)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	payload := map[string]any{"status": "ok"}
	if rt.breakers != nil {
		payload["breakers"] = rt.breakers()
	}
	writeJSON(w, http.StatusOK, payload)
}

func (rt *Router) AnalyzeDocument(w http.ResponseWriter, r *http.Request, kind string, id int64, params apigen.AnalyzeDocumentParams) {
	ref, err := domain.ParseDocumentRef(kind, id)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	query := ""
	if params.Query != nil {
		query = strings.TrimSpace(*params.Query)
	}
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query parameter is required")
		return
	}

	start := time.Now()
	analysis, err := rt.analyzer.Analyze(r.Context(), ref, query)
	rt.recordEngine("analyze", start, err)
	if err != nil {
		status := mapErrorToHTTPStatus(err)
		if status == http.StatusNotFound {
			writeError(w, status, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordRelevanceScore(serviceName, analysis.Score)
	}

	writeJSON(w, http.StatusOK, apigen.AnalyzeResponse{
		Type:           ref.Kind().DisplayName(),
		ID:             ref.ID(),
		Title:          analysis.Title,
		RelevanceScore: analysis.Score,
		BestMatch:      analysis.Match,
		Suggestion:     suggestion(analysis.Score, rt.cfg.RelatedThreshold),
	})
}

func (rt *Router) SummarizeDocument(w http.ResponseWriter, r *http.Request, kind string, id int64) {
	ref, err := domain.ParseDocumentRef(kind, id)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}

	start := time.Now()
	result, err := rt.summarizer.SummarizeDocument(r.Context(), ref)
	rt.recordEngine("summarize", start, err)
	if err != nil {
		status := mapErrorToHTTPStatus(err)
		if status == http.StatusNotFound {
			writeError(w, status, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}
	if result.Summary == "" {
		result.Summary = noTextExtracted
	}
	writeJSON(w, http.StatusOK, apigen.SummaryResponse{Summary: result.Summary})
}

func (rt *Router) SearchRecommendations(w http.ResponseWriter, r *http.Request, params apigen.SearchRecommendationsParams) {
	query := ""
	if params.Q != nil {
		query = strings.TrimSpace(*params.Q)
	}
	filter := domain.FilterAll
	if params.Filter != nil {
		filter = domain.CatalogFilter(strings.TrimSpace(*params.Filter))
	}

	start := time.Now()
	items, err := rt.recommender.Recommend(r.Context(), query, filter)
	rt.recordEngine("recommend", start, err)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), "Recommendation failed: "+err.Error())
		return
	}
	if items == nil {
		items = []domain.CatalogItem{}
	}
	if rt.metrics != nil {
		rt.metrics.RecordRecommendations(serviceName, len(items))
	}
	writeJSON(w, http.StatusOK, apigen.RecommendationsResponse{Query: query, Recommendations: items})
}

func (rt *Router) DownloadDocument(w http.ResponseWriter, r *http.Request, kind string, id int64, params apigen.DownloadDocumentParams) {
	ref, err := domain.ParseDocumentRef(kind, id)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	userID := ""
	if params.XUserID != nil {
		userID = strings.TrimSpace(*params.XUserID)
	}

	fileURL, err := rt.downloads.Download(r.Context(), ref, userID)
	if err != nil {
		writeError(w, mapErrorToHTTPStatus(err), err.Error())
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordDownload(serviceName, string(ref.Kind()))
	}
	http.Redirect(w, r, fileURL, http.StatusFound)
}

func (rt *Router) recordEngine(operation string, start time.Time, err error) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordEngineOperation(serviceName, operation, time.Since(start), err)
}

func suggestion(score, threshold float64) string {
	if score >= threshold {
		return "related"
	}
	return "not related"
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apigen.ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
