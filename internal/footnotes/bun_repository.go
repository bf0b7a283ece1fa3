package footnotes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// pageScope restricts select queries to one page; its scope data is part of
// the cache key.
const pageScope = "page"

// BunRepository implements Repository over go-repository-bun with optional
// caching.
type BunRepository struct {
	repo repository.Repository[*Footnote]
}

// NewBunRepository creates a repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache wraps the repository with go-repository-cache
// when both cacheService and serializer are supplied.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewFootnoteRepository(db)
	base.RegisterScope(pageScope, repository.ScopeByField(pageScope, "page_id"))
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunRepository{repo: base}
}

func withPageScope(ctx context.Context, pageID uuid.UUID) context.Context {
	ctx = repository.WithSelectScopes(ctx, pageScope)
	return repository.WithScopeData(ctx, pageScope, pageID)
}

// ensureMarkerAvailable reports ErrDuplicateFootnote when another footnote
// on the same page already uses the marker id. Lookup failures other than
// not found are returned as is.
func (r *BunRepository) ensureMarkerAvailable(ctx context.Context, footnote *Footnote) error {
	existing, err := r.GetByUUID(ctx, footnote.PageID, footnote.UUID)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	if existing.ID != footnote.ID {
		return ErrDuplicateFootnote
	}
	return nil
}

func (r *BunRepository) Create(ctx context.Context, footnote *Footnote) (*Footnote, error) {
	if err := r.ensureMarkerAvailable(ctx, footnote); err != nil {
		return nil, err
	}
	record, err := r.repo.Create(ctx, footnote)
	if err != nil {
		return nil, mapRepositoryError(err, footnote.UUID)
	}
	return record, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Footnote, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) GetByUUID(ctx context.Context, pageID uuid.UUID, markerID string) (*Footnote, error) {
	key := strings.TrimSpace(markerID)
	record, err := r.repo.GetByIdentifier(withPageScope(ctx, pageID), key)
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	return record, nil
}

func (r *BunRepository) ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Footnote, error) {
	records, _, err := r.repo.List(withPageScope(ctx, pageID),
		repository.SelectPaginate(0, 0),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at ASC, ?TableAlias.uuid ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, pageID.String())
	}
	return records, nil
}

func (r *BunRepository) Update(ctx context.Context, footnote *Footnote) (*Footnote, error) {
	if err := r.ensureMarkerAvailable(ctx, footnote); err != nil {
		return nil, err
	}
	updated, err := r.repo.Update(ctx, footnote,
		repository.UpdateByID(footnote.ID.String()),
		repository.UpdateColumns(
			"uuid",
			"text",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, footnote.ID.String())
	}
	return updated, nil
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.repo.Delete(ctx, &Footnote{ID: id})
}

var _ Repository = (*BunRepository)(nil)

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "footnote", Key: key}
	}
	return fmt.Errorf("footnote repository error: %w", err)
}
