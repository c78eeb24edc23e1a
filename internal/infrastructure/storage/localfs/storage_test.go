package localfs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/kirillkom/lrhub/internal/core/domain"
)

func TestOpenRelativeAndAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "note.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, key := range []string{"note.txt", filepath.Join(dir, "note.txt"), "file://" + filepath.Join(dir, "note.txt")} {
		rc, err := s.Open(context.Background(), key)
		if err != nil {
			t.Fatalf("Open(%q) error = %v", key, err)
		}
		body, _ := io.ReadAll(rc)
		_ = rc.Close()
		if string(body) != "hello" {
			t.Fatalf("Open(%q) body = %q", key, body)
		}
	}
}

func TestOpenRejectsTraversalAndMissingFiles(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := s.Open(context.Background(), "../etc/passwd"); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for traversal, got %v", err)
	}
	if _, err := s.Open(context.Background(), "missing.pdf"); !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestOpenAcceptsNamesStartingWithDots(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "..notes.txt"), []byte("dotted"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	rc, err := s.Open(context.Background(), "..notes.txt")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "dotted" {
		t.Fatalf("unexpected body %q", body)
	}
	if _, err := s.Open(context.Background(), ".."); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for parent dir, got %v", err)
	}
}
