package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kirillkom/lrhub/internal/core/domain"
)

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

const listNotesQuery = `
SELECT n.id, n.title, n.topic, u.username, n.file_url, AVG(r.value)::float8
FROM notes n
JOIN users u ON u.id = n.uploaded_by
LEFT JOIN ratings r ON r.note_id = n.id
GROUP BY n.id, u.username
ORDER BY n.id
`

const listResourcesQuery = `
SELECT s.id, s.title, s.description, u.username, s.file_url, AVG(r.value)::float8
FROM student_resources s
JOIN users u ON u.id = s.uploaded_by
LEFT JOIN ratings r ON r.resource_id = s.id
GROUP BY s.id, u.username
ORDER BY s.id
`

// tableFor returns the table backing a document kind. Kinds are a closed set,
// so the returned name is safe to splice into SQL.
func tableFor(kind domain.DocumentKind) (string, error) {
	switch kind {
	case domain.KindNote:
		return "notes", nil
	case domain.KindResource:
		return "student_resources", nil
	default:
		return "", domain.WrapError(domain.ErrInvalidInput, "resolve table", fmt.Errorf("unknown document kind %q", kind))
	}
}

func (r *CatalogRepository) Resolve(ctx context.Context, ref domain.DocumentRef) (*domain.ResolvedDocument, error) {
	table, err := tableFor(ref.Kind())
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, `SELECT title, file_url FROM `+table+` WHERE id = $1`, ref.ID())
	doc := &domain.ResolvedDocument{Ref: ref}
	if err := row.Scan(&doc.Title, &doc.FileURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "resolve document", fmt.Errorf("%s", ref))
		}
		return nil, fmt.Errorf("scan %s: %w", ref, err)
	}
	return doc, nil
}

// ListCatalog reads notes then resources, each ordered by id. Both kinds are
// loaded concurrently when the filter includes them.
func (r *CatalogRepository) ListCatalog(ctx context.Context, filter domain.CatalogFilter) ([]domain.CatalogItem, error) {
	var notes, resources []domain.CatalogItem

	g, gctx := errgroup.WithContext(ctx)
	if filter.Includes(domain.KindNote) {
		g.Go(func() error {
			items, err := r.listKind(gctx, domain.KindNote, listNotesQuery)
			notes = items
			return err
		})
	}
	if filter.Includes(domain.KindResource) {
		g.Go(func() error {
			items, err := r.listKind(gctx, domain.KindResource, listResourcesQuery)
			resources = items
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domain.CatalogItem, 0, len(notes)+len(resources))
	out = append(out, notes...)
	out = append(out, resources...)
	return out, nil
}

func (r *CatalogRepository) listKind(ctx context.Context, kind domain.DocumentKind, query string) ([]domain.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s catalog: %w", kind, err)
	}
	defer rows.Close()

	var out []domain.CatalogItem
	for rows.Next() {
		item := domain.CatalogItem{Type: kind}
		var rating sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.Title, &item.SecondaryText, &item.Uploader, &item.FileURL, &rating); err != nil {
			return nil, fmt.Errorf("scan %s catalog row: %w", kind, err)
		}
		if rating.Valid {
			avg := rating.Float64
			item.AverageRating = &avg
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s catalog: %w", kind, err)
	}
	return out, nil
}

func (r *CatalogRepository) IncrementDownloads(ctx context.Context, ref domain.DocumentRef) error {
	table, err := tableFor(ref.Kind())
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `UPDATE `+table+` SET downloads = downloads + 1 WHERE id = $1`, ref.ID())
	if err != nil {
		return fmt.Errorf("increment downloads %s: %w", ref, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment downloads rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "increment downloads", fmt.Errorf("%s", ref))
	}
	return nil
}

// InsertActivity is idempotent on the event id so redelivered events are harmless.
func (r *CatalogRepository) InsertActivity(ctx context.Context, event domain.ActivityEvent) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO activity_log (id, user_id, action, description, occurred_at)
VALUES ($1, NULLIF($2, ''), $3, $4, $5)
ON CONFLICT (id) DO NOTHING
`, event.ID, event.UserID, string(event.Action), event.Description, event.OccurredAt.UTC())
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}
