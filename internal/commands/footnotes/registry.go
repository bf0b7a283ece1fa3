package footnotescmd

import (
	"github.com/goliatone/go-cms-footnotes/internal/commands"
	"github.com/goliatone/go-cms-footnotes/internal/footnotes"
	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterFootnoteCommands.
type HandlerSet struct {
	Create *CreateFootnoteHandler
	Delete *DeleteFootnoteHandler
	Render *RenderPageHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	createOpts []commands.HandlerOption[CreateFootnoteCommand]
	deleteOpts []commands.HandlerOption[DeleteFootnoteCommand]
	renderOpts []commands.HandlerOption[RenderPageCommand]
}

// WithCreateHandlerOptions appends handler options applied to the create
// footnote handler, after the defaults.
func WithCreateHandlerOptions(opts ...commands.HandlerOption[CreateFootnoteCommand]) Option {
	return func(cfg *options) {
		cfg.createOpts = append(cfg.createOpts, opts...)
	}
}

// WithDeleteHandlerOptions appends handler options applied to the delete
// footnote handler, after the defaults.
func WithDeleteHandlerOptions(opts ...commands.HandlerOption[DeleteFootnoteCommand]) Option {
	return func(cfg *options) {
		cfg.deleteOpts = append(cfg.deleteOpts, opts...)
	}
}

// WithRenderHandlerOptions appends handler options applied to the page render
// handler, after the defaults.
func WithRenderHandlerOptions(opts ...commands.HandlerOption[RenderPageCommand]) Option {
	return func(cfg *options) {
		cfg.renderOpts = append(cfg.renderOpts, opts...)
	}
}

// RegisterFootnoteCommands builds the footnote handlers and registers them
// with reg when it is non-nil.
func RegisterFootnoteCommands(reg CommandRegistry, service footnotes.Service, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, ErrServiceRequired
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "footnotes")
	set := &HandlerSet{
		Create: NewCreateFootnoteHandler(service, logger, cfg.createOpts...),
		Delete: NewDeleteFootnoteHandler(service, logger, cfg.deleteOpts...),
		Render: NewRenderPageHandler(service, logger, cfg.renderOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Create, set.Delete, set.Render} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
