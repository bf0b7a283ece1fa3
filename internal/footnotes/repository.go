package footnotes

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository persists footnotes. Marker ids are unique per page, so two
// pages may both declare a footnote with id "1".
type Repository interface {
	Create(ctx context.Context, footnote *Footnote) (*Footnote, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Footnote, error)
	GetByUUID(ctx context.Context, pageID uuid.UUID, markerID string) (*Footnote, error)
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Footnote, error)
	Update(ctx context.Context, footnote *Footnote) (*Footnote, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewFootnoteRepository creates the go-repository-bun repository for
// footnotes, identified by their marker uuid. Identifier lookups are only
// unique once narrowed to a page.
func NewFootnoteRepository(db *bun.DB) repository.Repository[*Footnote] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Footnote]{
		NewRecord:          func() *Footnote { return &Footnote{} },
		GetID:              func(f *Footnote) uuid.UUID { return f.ID },
		SetID:              func(f *Footnote, id uuid.UUID) { f.ID = id },
		GetIdentifier:      func() string { return "uuid" },
		GetIdentifierValue: func(f *Footnote) string { return f.UUID },
	})
}
