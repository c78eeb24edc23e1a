package acquisition

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/infrastructure/extractor/plaintext"
)

type extractorFake struct {
	name   string
	called int
}

func (f *extractorFake) Extract(_ context.Context, raw []byte) (string, error) {
	f.called++
	return f.name + ":" + string(raw[:5]), nil
}

type storageFake struct {
	files map[string]string
}

func (s storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	body, ok := s.files[key]
	if !ok {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "open", errors.New(key))
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func newTestFetcher(files map[string]string, pdf *extractorFake) *Fetcher {
	return NewFetcher(storageFake{files: files}, Extractors{
		PDF:       pdf,
		PlainText: plaintext.NewExtractor(),
	}, Options{})
}

func TestFetchTextRemoteNonSuccessReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	text, err := newTestFetcher(nil, &extractorFake{}).FetchText(context.Background(), srv.URL+"/doc.pdf")
	if err != nil {
		t.Fatalf("FetchText() error = %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestFetchTextRemoteDispatchesPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4 body"))
	}))
	defer srv.Close()

	pdf := &extractorFake{name: "pdf"}
	text, err := newTestFetcher(nil, pdf).FetchText(context.Background(), srv.URL+"/raw/upload/abc")
	if err != nil {
		t.Fatalf("FetchText() error = %v", err)
	}
	if pdf.called != 1 || text != "pdf:%PDF-" {
		t.Fatalf("expected pdf extractor, got %q (calls=%d)", text, pdf.called)
	}
}

func TestFetchTextRemoteTransportErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := newTestFetcher(nil, &extractorFake{}).FetchText(context.Background(), url+"/doc.pdf"); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestFetchTextLocalPlainText(t *testing.T) {
	f := newTestFetcher(map[string]string{"notes/a.txt": "  Hello world.  "}, &extractorFake{})
	text, err := f.FetchText(context.Background(), "notes/a.txt")
	if err != nil {
		t.Fatalf("FetchText() error = %v", err)
	}
	if text != "Hello world." {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestFetchTextRejectsOversizedBody(t *testing.T) {
	f := NewFetcher(storageFake{files: map[string]string{"big.txt": "0123456789"}}, Extractors{PlainText: plaintext.NewExtractor()}, Options{MaxBytes: 4})
	if _, err := f.FetchText(context.Background(), "big.txt"); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLenientSwallowsErrors(t *testing.T) {
	l := NewLenient(newTestFetcher(nil, &extractorFake{}))
	text, err := l.FetchText(context.Background(), "missing.pdf")
	if err != nil || text != "" {
		t.Fatalf("expected empty text without error, got %q, %v", text, err)
	}
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		source string
		raw    string
		want   format
	}{
		{"a.bin", "%PDF-1.7", formatPDF},
		{"https://cdn.example/raw/file.PDF?sig=1", "xx", formatPDF},
		{"sheet.xlsx", "xx", formatSpreadsheet},
		{"x", "PK\x03\x04rest", formatSpreadsheet},
		{"notes.txt", "hello", formatPlain},
	}
	for _, tc := range cases {
		if got := detectFormat(tc.source, []byte(tc.raw)); got != tc.want {
			t.Fatalf("detectFormat(%q) = %v, want %v", tc.source, got, tc.want)
		}
	}
}
