package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

const (
	rootModule     = "footnotes"
	rendererModule = "footnotes.renderer"
	serviceModule  = "footnotes.service"
	storageModule  = "footnotes.storage"
	markdownModule = "footnotes.markdown"
)

const (
	fieldPageID     = "page_id"
	fieldFieldIndex = "field_index"
	fieldMarkerID   = "marker_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered per module.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RendererLogger returns the logger namespace used by the footnote renderer.
func RendererLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rendererModule)
}

// ServiceLogger returns the logger namespace used by the page render service.
func ServiceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, serviceModule)
}

// StorageLogger returns the logger namespace used by footnote repositories.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// MarkdownLogger returns the logger namespace used by document ingestion.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithRenderContext enriches the logger with the page and field being
// rendered. Empty page ids and negative indexes are ignored.
func WithRenderContext(logger interfaces.Logger, pageID string, fieldIndex int) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(pageID); trimmed != "" {
		fields[fieldPageID] = trimmed
	}
	if fieldIndex >= 0 {
		fields[fieldFieldIndex] = fieldIndex
	}
	return WithFields(logger, fields)
}

// WithMarker attaches the footnote marker identifier to the logger.
func WithMarker(logger interfaces.Logger, markerID string) interfaces.Logger {
	return WithFields(logger, map[string]any{
		fieldMarkerID: markerID,
	})
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
