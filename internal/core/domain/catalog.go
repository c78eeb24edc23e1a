package domain

import "time"

// CatalogItem is the projection of a note or resource used for recommendations.
type CatalogItem struct {
	Type          DocumentKind `json:"type"`
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	SecondaryText string       `json:"secondary_text"`
	Uploader      string       `json:"uploader"`
	FileURL       string       `json:"file_url"`
	AverageRating *float64     `json:"average_rating,omitempty"`
}

// MatchText is the single text unit an item contributes to corpus matching.
func (c CatalogItem) MatchText() string {
	return c.Title + " " + c.SecondaryText
}

type CatalogFilter string

const (
	FilterAll       CatalogFilter = ""
	FilterNotes     CatalogFilter = "notes"
	FilterResources CatalogFilter = "resources"
)

func (f CatalogFilter) Includes(kind DocumentKind) bool {
	switch f {
	case FilterNotes:
		return kind == KindNote
	case FilterResources:
		return kind == KindResource
	default:
		return true
	}
}

type ActivityAction string

const (
	ActionNoteDownload     ActivityAction = "note_download"
	ActionResourceDownload ActivityAction = "resource_download"
)

// ActivityEvent is published when a user downloads a file and persisted by the worker.
type ActivityEvent struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id,omitempty"`
	Action      ActivityAction `json:"action"`
	Description string         `json:"description"`
	OccurredAt  time.Time      `json:"occurred_at"`
}
