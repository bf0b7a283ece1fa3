package footnotes

import (
	"context"

	"github.com/google/uuid"
)

// StaticPage serves a fixed footnote collection, for documents whose
// footnotes are declared inline rather than stored.
type StaticPage struct {
	items []*Footnote
}

// NewStaticPage wraps items.
func NewStaticPage(items ...*Footnote) *StaticPage {
	return &StaticPage{items: append([]*Footnote(nil), items...)}
}

// Footnotes implements interfaces.FootnotePage.
func (p *StaticPage) Footnotes(context.Context) ([]*Footnote, error) {
	return append([]*Footnote(nil), p.items...), nil
}

// RepositoryPage loads a page's footnotes from a Repository on each call.
type RepositoryPage struct {
	ID         uuid.UUID
	repository Repository
}

// NewRepositoryPage binds page id to repo.
func NewRepositoryPage(id uuid.UUID, repo Repository) *RepositoryPage {
	return &RepositoryPage{ID: id, repository: repo}
}

// Footnotes implements interfaces.FootnotePage.
func (p *RepositoryPage) Footnotes(ctx context.Context) ([]*Footnote, error) {
	if p.repository == nil {
		return nil, ErrRepositoryRequired
	}
	return p.repository.ListByPage(ctx, p.ID)
}

var (
	_ Page = (*StaticPage)(nil)
	_ Page = (*RepositoryPage)(nil)
)
