package footnotes

import (
	"context"

	footnotescmd "github.com/goliatone/go-cms-footnotes/internal/commands/footnotes"
	"github.com/goliatone/go-cms-footnotes/internal/di"
	"github.com/goliatone/go-cms-footnotes/internal/footnotes"
	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

// Service exports the footnote service contract.
type Service = footnotes.Service

// Renderer exports the footnote marker renderer.
type Renderer = footnotes.Renderer

type (
	Footnote            = interfaces.Footnote
	RichText            = interfaces.RichText
	RenderContext       = footnotes.RenderContext
	Result              = footnotes.Result
	References          = footnotes.References
	Outcome             = footnotes.Outcome
	PageResult          = footnotes.PageResult
	RenderPageInput     = footnotes.RenderPageInput
	CreateFootnoteInput = footnotes.CreateFootnoteInput
	UpdateFootnoteInput = footnotes.UpdateFootnoteInput
)

// Commands exports the footnote command handlers.
type Commands = footnotescmd.HandlerSet

// Module represents the top level footnotes runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a footnotes module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Footnotes returns the configured footnote service.
func (m *Module) Footnotes() Service {
	return m.container.FootnoteService()
}

// Renderer returns the footnote renderer for single field renders.
func (m *Module) Renderer() *Renderer {
	return m.container.Renderer()
}

// Commands returns the footnote command handlers.
func (m *Module) Commands() *Commands {
	return m.container.Commands()
}

// Render renders a single rich-text field against page. Pass the previous
// Result.References to continue numbering across fields.
func (m *Module) Render(ctx context.Context, value RichText, page interfaces.FootnotePage, refs *References) (*Result, error) {
	return m.container.Renderer().Render(ctx, value, RenderContext{Page: page, References: refs})
}

// Close releases resources opened by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
