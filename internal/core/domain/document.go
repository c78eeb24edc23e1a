package domain

import (
	"fmt"
	"strings"
)

type DocumentKind string

const (
	KindNote     DocumentKind = "note"
	KindResource DocumentKind = "resource"
)

// DisplayName is the type label returned by the analyze endpoints.
func (k DocumentKind) DisplayName() string {
	switch k {
	case KindNote:
		return "Note"
	case KindResource:
		return "StudentResource"
	default:
		return string(k)
	}
}

// DocumentRef identifies either a note or a student resource.
// The zero value is invalid; build refs with NoteRef, ResourceRef or ParseDocumentRef.
type DocumentRef struct {
	kind DocumentKind
	id   int64
}

func NoteRef(id int64) DocumentRef     { return DocumentRef{kind: KindNote, id: id} }
func ResourceRef(id int64) DocumentRef { return DocumentRef{kind: KindResource, id: id} }

func ParseDocumentRef(kind string, id int64) (DocumentRef, error) {
	if id <= 0 {
		return DocumentRef{}, WrapError(ErrInvalidInput, "parse document ref", fmt.Errorf("id must be positive, got %d", id))
	}
	switch DocumentKind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindNote:
		return NoteRef(id), nil
	case KindResource:
		return ResourceRef(id), nil
	default:
		return DocumentRef{}, WrapError(ErrInvalidInput, "parse document ref", fmt.Errorf("unknown document type %q", kind))
	}
}

func (r DocumentRef) Kind() DocumentKind { return r.kind }
func (r DocumentRef) ID() int64          { return r.id }
func (r DocumentRef) IsZero() bool       { return r.kind == "" }

func (r DocumentRef) String() string {
	return fmt.Sprintf("%s:%d", r.kind, r.id)
}

// ResolvedDocument is what the data layer knows about a referenced file.
type ResolvedDocument struct {
	Ref     DocumentRef
	Title   string
	FileURL string
}

// RawDocument is the text extracted from one source. It lives for a single request.
type RawDocument struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

type ScoreResult struct {
	Score float64 `json:"score"`
	Match string  `json:"match"`
}

type SummaryResult struct {
	Summary string `json:"summary"`
}

type DocumentAnalysis struct {
	Ref   DocumentRef
	Title string
	ScoreResult
}
