// Package acquisition turns a document location (local path or URL) into
// plain text. Every call re-reads the source; nothing is cached.
package acquisition

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/core/ports"
	"github.com/kirillkom/lrhub/internal/infrastructure/resilience"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxBytes = 50 << 20
)

type Extractors struct {
	PDF         ports.TextExtractor
	Spreadsheet ports.TextExtractor
	PlainText   ports.TextExtractor
}

type Options struct {
	Timeout  time.Duration
	MaxBytes int64
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient         *http.Client
	ResilienceExecutor *resilience.Executor
}

type Fetcher struct {
	storage    ports.ObjectStorage
	extractors Extractors
	httpClient *http.Client
	maxBytes   int64
	executor   *resilience.Executor
}

func NewFetcher(storage ports.ObjectStorage, extractors Extractors, options Options) *Fetcher {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBytes := options.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	client := options.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Fetcher{
		storage:    storage,
		extractors: extractors,
		httpClient: client,
		maxBytes:   maxBytes,
		executor:   options.ResilienceExecutor,
	}
}

// FetchText returns ("", nil) when a remote source answers with a non-2xx
// status. Transport and parse failures are returned as errors.
func (f *Fetcher) FetchText(ctx context.Context, source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "fetch text", fmt.Errorf("empty source"))
	}

	var (
		raw []byte
		ok  bool
		err error
	)
	if isRemote(source) {
		raw, ok, err = f.download(ctx, source)
	} else {
		raw, err = f.readLocal(ctx, source)
		ok = true
	}
	if err != nil {
		return "", err
	}
	if !ok || len(raw) == 0 {
		return "", nil
	}
	return f.extract(ctx, source, raw)
}

func (f *Fetcher) download(ctx context.Context, source string) ([]byte, bool, error) {
	var (
		raw []byte
		ok  bool
	)
	call := func(callCtx context.Context) error {
		req, err := http.NewRequestWithContext(callCtx, http.MethodGet, source, nil)
		if err != nil {
			return fmt.Errorf("create fetch request: %w", err)
		}
		resp, err := f.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", redact(source), err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			raw, ok = nil, false
			return nil
		}
		raw, err = readLimited(resp.Body, f.maxBytes)
		if err != nil {
			return fmt.Errorf("read %s: %w", redact(source), err)
		}
		ok = true
		return nil
	}

	var err error
	if f.executor != nil {
		err = f.executor.Execute(ctx, "fetch.remote", call, classifyFetchError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, false, wrapTemporaryIfNeeded(err)
	}
	return raw, ok, nil
}

func (f *Fetcher) readLocal(ctx context.Context, source string) ([]byte, error) {
	if f.storage == nil {
		return nil, fmt.Errorf("local storage is not configured")
	}
	rc, err := f.storage.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return readLimited(rc, f.maxBytes)
}

func (f *Fetcher) extract(ctx context.Context, source string, raw []byte) (string, error) {
	var extractor ports.TextExtractor
	switch detectFormat(source, raw) {
	case formatPDF:
		extractor = f.extractors.PDF
	case formatSpreadsheet:
		extractor = f.extractors.Spreadsheet
	default:
		extractor = f.extractors.PlainText
	}
	if extractor == nil {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "fetch text", fmt.Errorf("no extractor for %s", redact(source)))
	}
	return extractor.Extract(ctx, raw)
}

type format int

const (
	formatPlain format = iota
	formatPDF
	formatSpreadsheet
)

func detectFormat(source string, raw []byte) format {
	switch {
	case bytes.HasPrefix(raw, []byte("%PDF-")):
		return formatPDF
	case bytes.HasPrefix(raw, []byte("PK\x03\x04")):
		return formatSpreadsheet
	}
	switch strings.ToLower(path.Ext(sourcePath(source))) {
	case ".pdf":
		return formatPDF
	case ".xlsx", ".xlsm":
		return formatSpreadsheet
	default:
		return formatPlain
	}
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > maxBytes {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read source", fmt.Errorf("document exceeds %d bytes", maxBytes))
	}
	return raw, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func sourcePath(source string) string {
	if u, err := url.Parse(source); err == nil && u.Path != "" {
		return u.Path
	}
	return source
}

// redact drops query strings, which often carry signed-URL credentials.
func redact(source string) string {
	u, err := url.Parse(source)
	if err != nil {
		return source
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
