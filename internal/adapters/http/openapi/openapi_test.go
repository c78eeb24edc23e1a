package openapi

import (
	"context"
	"testing"
)

func TestLoadEmbeddedDocument(t *testing.T) {
	doc, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for _, path := range []string{"/analyze/{kind}/{id}/", "/pdf/{kind}/{id}/summarize/", "/search_recommendations/", "/download/{kind}/{id}/"} {
		if doc.Paths.Find(path) == nil {
			t.Fatalf("expected path %s in document", path)
		}
	}
}
