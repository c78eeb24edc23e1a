// Package openapi holds the HTTP contract of the document engine: the embedded
// OpenAPI document, wire types and the parameter-binding server wrapper.
package openapi

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oapi-codegen/runtime"

	"github.com/kirillkom/lrhub/internal/core/domain"
)

//go:embed openapi.yaml
var specYAML []byte

// Spec returns the raw OpenAPI document.
func Spec() []byte { return specYAML }

// Load parses and validates the embedded OpenAPI document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type AnalyzeResponse struct {
	Type           string  `json:"type"`
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	RelevanceScore float64 `json:"relevance_score"`
	BestMatch      string  `json:"best_match"`
	Suggestion     string  `json:"suggestion"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type RecommendationsResponse struct {
	Query           string               `json:"query"`
	Recommendations []domain.CatalogItem `json:"recommendations"`
}

type AnalyzeDocumentParams struct {
	Query *string `form:"query,omitempty" json:"query,omitempty"`
}

type SearchRecommendationsParams struct {
	Q      *string `form:"q,omitempty" json:"q,omitempty"`
	Filter *string `form:"filter,omitempty" json:"filter,omitempty"`
}

type DownloadDocumentParams struct {
	XUserID *string `json:"X-User-Id,omitempty"`
}

// ServerInterface is implemented by the HTTP router.
type ServerInterface interface {
	AnalyzeDocument(w http.ResponseWriter, r *http.Request, kind string, id int64, params AnalyzeDocumentParams)
	SummarizeDocument(w http.ResponseWriter, r *http.Request, kind string, id int64)
	SearchRecommendations(w http.ResponseWriter, r *http.Request, params SearchRecommendationsParams)
	DownloadDocument(w http.ResponseWriter, r *http.Request, kind string, id int64, params DownloadDocumentParams)
}

type StdHTTPServerOptions struct {
	BaseRouter       *http.ServeMux
	Middlewares      map[string]func(http.Handler) http.Handler
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// InvalidParamFormatError reports a parameter that could not be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

type serverWrapper struct {
	handler      ServerInterface
	middlewares  map[string]func(http.Handler) http.Handler
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions registers every operation on options.BaseRouter. A
// middleware keyed by operation id wraps that operation only.
func HandlerWithOptions(si ServerInterface, options StdHTTPServerOptions) http.Handler {
	mux := options.BaseRouter
	if mux == nil {
		mux = http.NewServeMux()
	}
	errorHandler := options.ErrorHandlerFunc
	if errorHandler == nil {
		errorHandler = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := &serverWrapper{handler: si, middlewares: options.Middlewares, errorHandler: errorHandler}

	mux.Handle("GET /analyze/{kind}/{id}/{$}", wrapper.wrap("analyzeDocument", wrapper.analyzeDocument))
	mux.Handle("GET /pdf/{kind}/{id}/summarize/{$}", wrapper.wrap("summarizeDocument", wrapper.summarizeDocument))
	mux.Handle("GET /search_recommendations/{$}", wrapper.wrap("searchRecommendations", wrapper.searchRecommendations))
	mux.Handle("GET /download/{kind}/{id}/{$}", wrapper.wrap("downloadDocument", wrapper.downloadDocument))
	return mux
}

func (sw *serverWrapper) wrap(operationID string, fn http.HandlerFunc) http.Handler {
	var handler http.Handler = fn
	if mw, ok := sw.middlewares[operationID]; ok && mw != nil {
		handler = mw(handler)
	}
	return handler
}

func (sw *serverWrapper) bindRef(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	var kind string
	err := runtime.BindStyledParameterWithOptions("simple", "kind", r.PathValue("kind"), &kind,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		sw.errorHandler(w, r, &InvalidParamFormatError{ParamName: "kind", Err: err})
		return "", 0, false
	}

	var id int64
	err = runtime.BindStyledParameterWithOptions("simple", "id", r.PathValue("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		sw.errorHandler(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return "", 0, false
	}
	return kind, id, true
}

func (sw *serverWrapper) analyzeDocument(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := sw.bindRef(w, r)
	if !ok {
		return
	}
	var params AnalyzeDocumentParams
	if err := runtime.BindQueryParameter("form", true, false, "query", r.URL.Query(), &params.Query); err != nil {
		sw.errorHandler(w, r, &InvalidParamFormatError{ParamName: "query", Err: err})
		return
	}
	sw.handler.AnalyzeDocument(w, r, kind, id, params)
}

func (sw *serverWrapper) summarizeDocument(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := sw.bindRef(w, r)
	if !ok {
		return
	}
	sw.handler.SummarizeDocument(w, r, kind, id)
}

func (sw *serverWrapper) searchRecommendations(w http.ResponseWriter, r *http.Request) {
	var params SearchRecommendationsParams
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &params.Q); err != nil {
		sw.errorHandler(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "filter", r.URL.Query(), &params.Filter); err != nil {
		sw.errorHandler(w, r, &InvalidParamFormatError{ParamName: "filter", Err: err})
		return
	}
	sw.handler.SearchRecommendations(w, r, params)
}

func (sw *serverWrapper) downloadDocument(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := sw.bindRef(w, r)
	if !ok {
		return
	}
	var params DownloadDocumentParams
	if values, found := r.Header[http.CanonicalHeaderKey("X-User-Id")]; found && len(values) == 1 {
		var userID string
		err := runtime.BindStyledParameterWithOptions("simple", "X-User-Id", values[0], &userID,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Required: false})
		if err != nil {
			sw.errorHandler(w, r, &InvalidParamFormatError{ParamName: "X-User-Id", Err: err})
			return
		}
		params.XUserID = &userID
	}
	sw.handler.DownloadDocument(w, r, kind, id, params)
}
