package footnotes

import (
	"context"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-cms-footnotes/internal/logging"
	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

// Service manages a page's footnotes and renders whole pages.
type Service interface {
	CreateFootnote(ctx context.Context, input CreateFootnoteInput) (*Footnote, error)
	UpdateFootnote(ctx context.Context, input UpdateFootnoteInput) (*Footnote, error)
	DeleteFootnote(ctx context.Context, id uuid.UUID) error
	ListFootnotes(ctx context.Context, pageID uuid.UUID) ([]*Footnote, error)
	RenderPage(ctx context.Context, input RenderPageInput) (*PageResult, error)
}

type CreateFootnoteInput struct {
	PageID uuid.UUID
	// UUID is the marker identifier. A random one is generated when blank.
	UUID string
	Text string
}

type UpdateFootnoteInput struct {
	ID   uuid.UUID
	UUID *string
	Text *string
}

// RenderPageInput lists a page's rich-text fields in template order.
type RenderPageInput struct {
	PageID uuid.UUID
	Fields []interfaces.RichText
	// Page overrides the repository-backed footnote source.
	Page Page
}

// PageResult holds every rendered field plus the footnote list. Numbering
// runs across fields in the order they were supplied.
type PageResult struct {
	Fields        []template.HTML
	References    *References
	FootnotesHTML template.HTML
	Outcomes      [][]Outcome
}

type IDGenerator func() uuid.UUID

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger attaches the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithListRenderer overrides the footnote list renderer.
func WithListRenderer(list *ListRenderer) ServiceOption {
	return func(s *service) {
		if list != nil {
			s.list = list
		}
	}
}

type service struct {
	repo     Repository
	renderer *Renderer
	list     *ListRenderer
	logger   interfaces.Logger
	now      func() time.Time
	id       IDGenerator
}

// NewService wires a repository and renderer. The footnote list renders
// bodies through base.
func NewService(repo Repository, renderer *Renderer, base interfaces.RichTextRenderer, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		renderer: renderer,
		list:     NewListRenderer(base),
		logger:   logging.NoOp(),
		now:      time.Now,
		id:       uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateFootnote(ctx context.Context, input CreateFootnoteInput) (*Footnote, error) {
	if s.repo == nil {
		return nil, ErrRepositoryRequired
	}
	if input.PageID == uuid.Nil {
		return nil, ErrPageIDRequired
	}

	markerID := strings.TrimSpace(input.UUID)
	if markerID == "" {
		markerID = s.id().String()
	}

	now := s.now()
	footnote := &Footnote{
		ID:        s.id(),
		PageID:    input.PageID,
		UUID:      markerID,
		Text:      strings.TrimSpace(input.Text),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ValidateFootnote(footnote); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, footnote)
	if err != nil {
		return nil, err
	}
	s.logger.WithContext(ctx).Debug("footnotes.service.created",
		"footnote_id", created.ID,
		"page_id", created.PageID,
		"marker_id", created.UUID,
	)
	return created, nil
}

func (s *service) UpdateFootnote(ctx context.Context, input UpdateFootnoteInput) (*Footnote, error) {
	if s.repo == nil {
		return nil, ErrRepositoryRequired
	}
	if input.ID == uuid.Nil {
		return nil, ErrFootnoteIDRequired
	}

	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	updated := cloneFootnote(existing)
	if input.UUID != nil {
		updated.UUID = strings.TrimSpace(*input.UUID)
	}
	if input.Text != nil {
		updated.Text = strings.TrimSpace(*input.Text)
	}
	updated.UpdatedAt = s.now()

	if err := ValidateFootnote(updated); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, updated)
}

func (s *service) DeleteFootnote(ctx context.Context, id uuid.UUID) error {
	if s.repo == nil {
		return ErrRepositoryRequired
	}
	if id == uuid.Nil {
		return ErrFootnoteIDRequired
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ListFootnotes(ctx context.Context, pageID uuid.UUID) ([]*Footnote, error) {
	if s.repo == nil {
		return nil, ErrRepositoryRequired
	}
	if pageID == uuid.Nil {
		return nil, ErrPageIDRequired
	}
	return s.repo.ListByPage(ctx, pageID)
}

// RenderPage renders fields one after another, threading a single reference
// list so numbering continues across fields, then renders the list.
func (s *service) RenderPage(ctx context.Context, input RenderPageInput) (*PageResult, error) {
	if s.renderer == nil {
		return nil, ErrRendererRequired
	}

	page := input.Page
	if page == nil {
		if input.PageID == uuid.Nil {
			return nil, ErrPageIDRequired
		}
		if s.repo == nil {
			return nil, ErrRepositoryRequired
		}
		page = &memoizedPage{source: NewRepositoryPage(input.PageID, s.repo)}
	}

	result := &PageResult{
		Fields:     make([]template.HTML, 0, len(input.Fields)),
		References: NewReferences(),
		Outcomes:   make([][]Outcome, 0, len(input.Fields)),
	}

	pageKey := ""
	if input.PageID != uuid.Nil {
		pageKey = input.PageID.String()
	}

	for idx, field := range input.Fields {
		rendered, err := s.renderer.Render(ctx, field, RenderContext{
			Page:       page,
			References: result.References,
		})
		if err != nil {
			logging.WithRenderContext(s.logger.WithContext(ctx), pageKey, idx).
				Error("footnotes.service.render_failed", "error", err)
			return nil, err
		}
		result.Fields = append(result.Fields, rendered.HTML)
		result.Outcomes = append(result.Outcomes, rendered.Outcomes)
	}

	list, err := s.list.Render(ctx, result.References)
	if err != nil {
		return nil, err
	}
	result.FootnotesHTML = list

	logging.WithRenderContext(s.logger.WithContext(ctx), pageKey, -1).Debug("footnotes.service.page_rendered",
		"fields", len(result.Fields),
		"footnotes", result.References.Len(),
	)
	return result, nil
}

// memoizedPage loads the footnote collection once per RenderPage call so
// every field sees the same snapshot.
type memoizedPage struct {
	source Page
	items  []*Footnote
	loaded bool
}

func (p *memoizedPage) Footnotes(ctx context.Context) ([]*Footnote, error) {
	if p.loaded {
		return p.items, nil
	}
	items, err := p.source.Footnotes(ctx)
	if err != nil {
		return nil, err
	}
	p.items = items
	p.loaded = true
	return items, nil
}
