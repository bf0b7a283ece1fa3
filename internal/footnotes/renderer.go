package footnotes

import (
	"context"
	"html/template"
	"strings"
	"time"

	"github.com/goliatone/go-cms-footnotes/internal/logging"
	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

// RenderContext carries the page whose footnotes may be cited and the
// reference list accumulated by earlier fields of the same page render.
// A nil Page disables footnote processing. A nil References starts a new
// list, returned in Result.References for the caller to thread onwards.
type RenderContext struct {
	Page       Page
	References *References
}

// Result is the outcome of rendering one rich-text field.
type Result struct {
	HTML       template.HTML
	References *References
	// Cited lists the footnotes referenced by this field in first-occurrence
	// order, including ones already numbered by earlier fields.
	Cited    []*Footnote
	Outcomes []Outcome
}

// Renderer layers footnote marker processing on a base rich-text renderer.
type Renderer struct {
	base    interfaces.RichTextRenderer
	logger  interfaces.Logger
	metrics interfaces.FootnoteMetrics
	now     func() time.Time
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRendererLogger attaches a logger for per-marker diagnostics.
func WithRendererLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRendererMetrics wires the telemetry recorder.
func WithRendererMetrics(metrics interfaces.FootnoteMetrics) RendererOption {
	return func(r *Renderer) {
		if metrics != nil {
			r.metrics = metrics
		}
	}
}

// NewRenderer constructs a renderer delegating base rendering to base.
func NewRenderer(base interfaces.RichTextRenderer, opts ...RendererOption) *Renderer {
	r := &Renderer{
		base:    base,
		logger:  logging.NoOp(),
		metrics: NoOpMetrics(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the base HTML for value and replaces footnote markers with
// numbered anchors. Errors from the base renderer or from loading the page's
// footnotes are returned; a bad marker only ever drops that marker.
func (r *Renderer) Render(ctx context.Context, value interfaces.RichText, rc RenderContext) (*Result, error) {
	if r.base == nil {
		return nil, ErrRendererRequired
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := r.now()
	defer func() {
		r.metrics.ObserveRenderDuration(r.now().Sub(start))
	}()

	html, err := r.base.Render(ctx, value)
	if err != nil {
		return nil, err
	}
	return r.process(ctx, html, rc)
}

// Process runs footnote substitution over HTML the caller already rendered.
func (r *Renderer) Process(ctx context.Context, html string, rc RenderContext) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return r.process(ctx, html, rc)
}

func (r *Renderer) process(ctx context.Context, html string, rc RenderContext) (*Result, error) {
	if rc.Page == nil {
		return &Result{HTML: template.HTML(html), References: rc.References}, nil
	}

	refs := rc.References
	if refs == nil {
		refs = NewReferences()
	}

	available, err := rc.Page.Footnotes(ctx)
	if err != nil {
		return nil, err
	}
	lookup := make(map[string]*Footnote, len(available))
	for _, footnote := range available {
		if footnote == nil {
			continue
		}
		lookup[footnote.UUID] = footnote
	}

	result := &Result{References: refs}
	markers := FindMarkers(html)
	if len(markers) == 0 {
		result.HTML = template.HTML(html)
		return result, nil
	}

	logger := r.logger.WithContext(ctx)
	cited := map[string]struct{}{}
	var out strings.Builder
	out.Grow(len(html))
	last := 0

	for _, marker := range markers {
		outcome := r.resolve(marker.ID, lookup, refs)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Kind == OutcomeLinked {
			if _, seen := cited[marker.ID]; !seen {
				cited[marker.ID] = struct{}{}
				result.Cited = append(result.Cited, lookup[marker.ID])
			}
		} else {
			r.metrics.IncrementMarkerSkipped(string(outcome.Reason))
			markerLogger := logging.WithMarker(logger, marker.ID)
			args := []any{"reason", string(outcome.Reason), "error", outcome.Err}
			if outcome.Reason == SkipInvalidFootnote {
				// The page declares this footnote but it cannot be cited,
				// e.g. a blank body; the anchor is dropped.
				markerLogger.Warn("footnotes.renderer.marker_skipped", args...)
			} else {
				markerLogger.Debug("footnotes.renderer.marker_skipped", args...)
			}
		}

		out.WriteString(html[last:marker.Start])
		out.WriteString(outcome.Markup())
		last = marker.End
	}
	out.WriteString(html[last:])

	result.HTML = template.HTML(out.String())
	return result, nil
}

func (r *Renderer) resolve(id string, lookup map[string]*Footnote, refs *References) Outcome {
	footnote, ok := lookup[id]
	if !ok {
		return skipped(id, SkipUnknownIdentifier, unknownFootnote(id))
	}
	index, err := refs.Add(footnote)
	if err != nil {
		return skipped(id, SkipInvalidFootnote, err)
	}
	return linked(id, index)
}
