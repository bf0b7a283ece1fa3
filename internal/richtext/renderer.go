package richtext

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

const (
	// FormatHTML marks values already stored as HTML.
	FormatHTML = "html"
	// FormatMarkdown marks values rendered through goldmark.
	FormatMarkdown = "markdown"
)

// Value aliases the public rich-text value contract.
type Value = interfaces.RichText

// HTMLRenderer returns stored HTML unchanged, optionally passing it through
// a sanitizer first.
type HTMLRenderer struct {
	sanitizer *Sanitizer
}

// NewHTMLRenderer constructs a passthrough renderer. A nil sanitizer skips
// sanitising.
func NewHTMLRenderer(sanitizer *Sanitizer) *HTMLRenderer {
	return &HTMLRenderer{sanitizer: sanitizer}
}

// Render implements interfaces.RichTextRenderer.
func (r *HTMLRenderer) Render(_ context.Context, value Value) (string, error) {
	if r.sanitizer == nil {
		return value.Source, nil
	}
	return r.sanitizer.Sanitize(value.Source)
}

// MarkdownRenderer converts Markdown values to HTML.
type MarkdownRenderer struct {
	parser    interfaces.MarkdownParser
	sanitizer *Sanitizer
}

// NewMarkdownRenderer wraps parser. A nil sanitizer skips sanitising.
func NewMarkdownRenderer(parser interfaces.MarkdownParser, sanitizer *Sanitizer) *MarkdownRenderer {
	return &MarkdownRenderer{parser: parser, sanitizer: sanitizer}
}

// Render implements interfaces.RichTextRenderer.
func (r *MarkdownRenderer) Render(ctx context.Context, value Value) (string, error) {
	if r.parser == nil {
		return "", fmt.Errorf("richtext: markdown parser not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	html, err := r.parser.Parse([]byte(value.Source))
	if err != nil {
		return "", err
	}
	if r.sanitizer == nil {
		return string(html), nil
	}
	return r.sanitizer.Sanitize(string(html))
}

// MultiRenderer dispatches on Value.Format.
type MultiRenderer struct {
	renderers     map[string]interfaces.RichTextRenderer
	defaultFormat string
}

// NewMultiRenderer builds a dispatcher. Values with an empty Format use
// defaultFormat.
func NewMultiRenderer(defaultFormat string, renderers map[string]interfaces.RichTextRenderer) *MultiRenderer {
	normalized := make(map[string]interfaces.RichTextRenderer, len(renderers))
	for format, renderer := range renderers {
		if renderer == nil {
			continue
		}
		normalized[normalizeFormat(format)] = renderer
	}
	return &MultiRenderer{
		renderers:     normalized,
		defaultFormat: normalizeFormat(defaultFormat),
	}
}

// Render implements interfaces.RichTextRenderer.
func (r *MultiRenderer) Render(ctx context.Context, value Value) (string, error) {
	format := normalizeFormat(value.Format)
	if format == "" {
		format = r.defaultFormat
	}
	renderer, ok := r.renderers[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return renderer.Render(ctx, value)
}

// Supports reports whether format has a registered renderer.
func (r *MultiRenderer) Supports(format string) bool {
	_, ok := r.renderers[normalizeFormat(format)]
	return ok
}

func normalizeFormat(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "md":
		return FormatMarkdown
	case "htm":
		return FormatHTML
	default:
		return f
	}
}

var (
	_ interfaces.RichTextRenderer = (*HTMLRenderer)(nil)
	_ interfaces.RichTextRenderer = (*MarkdownRenderer)(nil)
	_ interfaces.RichTextRenderer = (*MultiRenderer)(nil)
)
