package footnotescmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-cms-footnotes/internal/commands"
	"github.com/goliatone/go-cms-footnotes/internal/footnotes"
	"github.com/goliatone/go-cms-footnotes/internal/logging"
	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	createOperation = "footnotes.create"
	deleteOperation = "footnotes.delete"
	renderOperation = "footnotes.render_page"
)

// ErrServiceRequired is returned when handlers are built without a footnote service.
var ErrServiceRequired = errors.New("footnotes command: service is required")

var (
	_ command.Commander[CreateFootnoteCommand] = (*CreateFootnoteHandler)(nil)
	_ command.Commander[DeleteFootnoteCommand] = (*DeleteFootnoteHandler)(nil)
	_ command.Commander[RenderPageCommand]     = (*RenderPageHandler)(nil)
)

// CreateFootnoteHandler persists footnotes through the footnote service.
type CreateFootnoteHandler struct {
	inner *commands.Handler[CreateFootnoteCommand]
}

func NewCreateFootnoteHandler(service footnotes.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateFootnoteCommand]) *CreateFootnoteHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg CreateFootnoteCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		record, err := service.CreateFootnote(ctx, footnotes.CreateFootnoteInput{
			PageID: msg.PageID,
			UUID:   msg.UUID,
			Text:   msg.Text,
		})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"footnote_id":   record.ID,
			"footnote_uuid": record.UUID,
		}).Info("footnotes.command.create.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[CreateFootnoteCommand]{
		commands.WithLogger[CreateFootnoteCommand](baseLogger),
		commands.WithOperation[CreateFootnoteCommand](createOperation),
		commands.WithMessageFields(func(msg CreateFootnoteCommand) map[string]any {
			fields := map[string]any{"page_id": msg.PageID}
			if msg.UUID != "" {
				fields["footnote_uuid"] = msg.UUID
			}
			return fields
		}),
	}
	return &CreateFootnoteHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[CreateFootnoteCommand].
func (h *CreateFootnoteHandler) Execute(ctx context.Context, msg CreateFootnoteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteFootnoteHandler removes footnotes.
type DeleteFootnoteHandler struct {
	inner *commands.Handler[DeleteFootnoteCommand]
}

func NewDeleteFootnoteHandler(service footnotes.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteFootnoteCommand]) *DeleteFootnoteHandler {
	exec := func(ctx context.Context, msg DeleteFootnoteCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		return service.DeleteFootnote(ctx, msg.ID)
	}
	handlerOpts := []commands.HandlerOption[DeleteFootnoteCommand]{
		commands.WithLogger[DeleteFootnoteCommand](logger),
		commands.WithOperation[DeleteFootnoteCommand](deleteOperation),
		commands.WithMessageFields(func(msg DeleteFootnoteCommand) map[string]any {
			return map[string]any{"footnote_id": msg.ID}
		}),
	}
	return &DeleteFootnoteHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[DeleteFootnoteCommand].
func (h *DeleteFootnoteHandler) Execute(ctx context.Context, msg DeleteFootnoteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RenderPageHandler renders a page and hands the result to the message's Result callback.
type RenderPageHandler struct {
	inner *commands.Handler[RenderPageCommand]
}

func NewRenderPageHandler(service footnotes.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RenderPageCommand]) *RenderPageHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg RenderPageCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		result, err := service.RenderPage(ctx, footnotes.RenderPageInput{
			PageID: msg.PageID,
			Fields: msg.Fields,
		})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"field_count":     len(result.Fields),
			"reference_count": result.References.Len(),
		}).Info("footnotes.command.render_page.completed")
		if msg.Result != nil {
			msg.Result(result)
		}
		return nil
	}
	handlerOpts := []commands.HandlerOption[RenderPageCommand]{
		commands.WithLogger[RenderPageCommand](baseLogger),
		commands.WithOperation[RenderPageCommand](renderOperation),
		commands.WithMessageFields(func(msg RenderPageCommand) map[string]any {
			return map[string]any{
				"page_id":     msg.PageID,
				"field_count": len(msg.Fields),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RenderPageCommand](nil)),
	}
	return &RenderPageHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[RenderPageCommand].
func (h *RenderPageHandler) Execute(ctx context.Context, msg RenderPageCommand) error {
	return h.inner.Execute(ctx, msg)
}
