package footnotes

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

type passthroughRenderer struct {
	calls int
	err   error
}

func (p *passthroughRenderer) Render(_ context.Context, value interfaces.RichText) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return value.Source, nil
}

type failingPage struct {
	err error
}

func (f failingPage) Footnotes(context.Context) ([]*Footnote, error) {
	return nil, f.err
}

type recordingMetrics struct {
	durations []time.Duration
	skipped   []string
}

func (r *recordingMetrics) ObserveRenderDuration(d time.Duration) {
	r.durations = append(r.durations, d)
}

func (r *recordingMetrics) IncrementMarkerSkipped(reason string) {
	r.skipped = append(r.skipped, reason)
}

func note(id, text string) *Footnote {
	return &Footnote{UUID: id, Text: text}
}

func render(t *testing.T, r *Renderer, source string, rc RenderContext) *Result {
	t.Helper()
	result, err := r.Render(context.Background(), interfaces.RichText{Source: source}, rc)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return result
}

func TestRenderer_ExampleMarker(t *testing.T) {
	renderer := NewRenderer(&passthroughRenderer{})
	f1 := note("f1", "first")

	result := render(t, renderer, `<p>text<footnote id="f1">1</footnote> more</p>`, RenderContext{
		Page: NewStaticPage(f1),
	})

	want := `<p>text<a href="#footnote-1" id="footnote-source-1"><sup>[1]</sup></a> more</p>`
	if string(result.HTML) != want {
		t.Fatalf("unexpected html\nwant: %s\ngot:  %s", want, result.HTML)
	}
	if result.References.Len() != 1 || result.References.Footnotes()[0] != f1 {
		t.Fatalf("expected references to contain f1, got %+v", result.References.Footnotes())
	}
}

func TestRenderer_NoMarkersLeavesBaseOutput(t *testing.T) {
	renderer := NewRenderer(&passthroughRenderer{})

	source := "<p>plain <em>text</em></p>"
	result := render(t, renderer, source, RenderContext{Page: NewStaticPage(note("f1", "x"))})

	if string(result.HTML) != source {
		t.Fatalf("expected unchanged html, got %s", result.HTML)
	}
	if len(result.Outcomes) != 0 || result.References.Len() != 0 {
		t.Fatalf("expected no outcomes or references, got %d/%d", len(result.Outcomes), result.References.Len())
	}
}

func TestRenderer_NoPageLeavesMarkers(t *testing.T) {
	renderer := NewRenderer(&passthroughRenderer{})

	source := `<p>a<footnote id="f1">1</footnote></p>`
	result := render(t, renderer, source, RenderContext{})

	if string(result.HTML) != source {
		t.Fatalf("expected markers untouched without page, got %s", result.HTML)
	}
	if result.References != nil {
		t.Fatalf("expected no reference list without page")
	}
}

func TestRenderer_RepeatedMarkerReusesIndex(t *testing.T) {
	renderer := NewRenderer(&passthroughRenderer{})
	refs := NewReferences()

	result := render(t, renderer, `<footnote id="a">x</footnote> and <footnote id="a">y</footnote>`, RenderContext{
		Page:       NewStaticPage(note("a", "alpha")),
		References: refs,
	})

	anchor := Anchor(1)
	if string(result.HTML) != anchor+" and "+anchor {
		t.Fatalf("expected both markers to use index 1, got %s", result.HTML)
	}
	if refs.Len() != 1 {
		t.Fatalf("expected one reference, got %d", refs.Len())
	}
	if len(result.Cited) != 1 {
		t.Fatalf("expected one cited footnote, got %d", len(result.Cited))
	}
}

func TestRenderer_SequentialNumbering(t *testing.T) {
	renderer := NewRenderer(&passthroughRenderer{})
	a, b := note("A", "alpha"), note("B", "beta")

	result := render(t, renderer, `<footnote id="A">1</footnote><footnote id="B">2</footnote><footnote id="A">3</footnote>`, RenderContext{
		Page: NewStaticPage(b, a),
	})

	if string(result.HTML) != Anchor(1)+Anchor(2)+Anchor(1) {
		t.Fatalf("unexpected numbering: %s", result.HTML)
	}
	got := result.References.Footnotes()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("expected references [A B], got %+v", got)
	}
}

func TestRenderer_UnknownIdentifierDropsMarker(t *testing.T) {
	metrics := &recordingMetrics{}
	renderer := NewRenderer(&passthroughRenderer{}, WithRendererMetrics(metrics))
	refs := NewReferences()

	result := render(t, renderer, `<p>x<footnote id="nonexistent">x</footnote>y</p>`, RenderContext{
		Page:       NewStaticPage(note("f1", "x")),
		References: refs,
	})

	if string(result.HTML) != "<p>xy</p>" {
		t.Fatalf("expected marker removed, got %s", result.HTML)
	}
	if refs.Len() != 0 {
		t.Fatalf("expected references untouched, got %d", refs.Len())
	}
	if len(result.Outcomes) != 1 {
		t.Fatalf("expected one outcome, got %d", len(result.Outcomes))
	}
	outcome := result.Outcomes[0]
	if outcome.Kind != OutcomeSkipped || outcome.Reason != SkipUnknownIdentifier || outcome.MarkerID != "nonexistent" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if !goerrors.IsCategory(outcome.Err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", outcome.Err)
	}
	if len(metrics.skipped) != 1 || metrics.skipped[0] != string(SkipUnknownIdentifier) {
		t.Fatalf("expected skipped metric, got %v", metrics.skipped)
	}
	if len(metrics.durations) != 1 {
		t.Fatalf("expected one duration observation, got %d", len(metrics.durations))
	}
}

func TestRenderer_InvalidFootnoteDropsMarker(t *testing.T) {
	renderer := NewRenderer(&passthroughRenderer{})

	result := render(t, renderer, `a<footnote id="empty">1</footnote>b<footnote id="ok">2</footnote>`, RenderContext{
		Page: NewStaticPage(note("empty", "   "), note("ok", "fine")),
	})

	if string(result.HTML) != "ab"+Anchor(1) {
		t.Fatalf("expected invalid marker dropped and valid one numbered 1, got %s", result.HTML)
	}
	first := result.Outcomes[0]
	if first.Reason != SkipInvalidFootnote {
		t.Fatalf("expected invalid_footnote, got %+v", first)
	}
	if !goerrors.IsCategory(first.Err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", first.Err)
	}
}

type levelLogger struct {
	debug []string
	warn  []string
}

func (l *levelLogger) Trace(string, ...any)                          {}
func (l *levelLogger) Debug(msg string, _ ...any)                    { l.debug = append(l.debug, msg) }
func (l *levelLogger) Info(string, ...any)                           {}
func (l *levelLogger) Warn(msg string, _ ...any)                     { l.warn = append(l.warn, msg) }
func (l *levelLogger) Error(string, ...any)                          {}
func (l *levelLogger) Fatal(string, ...any)                          {}
func (l *levelLogger) WithContext(context.Context) interfaces.Logger { return l }

func TestRenderer_BlankBodyWarnsWhenDroppingAnchor(t *testing.T) {
	logger := &levelLogger{}
	renderer := NewRenderer(&passthroughRenderer{}, WithRendererLogger(logger))

	result := render(t, renderer, `a<footnote id="blank">1</footnote><footnote id="missing">2</footnote>`, RenderContext{
		Page: NewStaticPage(note("blank", "")),
	})

	if string(result.HTML) != "a" {
		t.Fatalf("expected both markers dropped, got %s", result.HTML)
	}
	if len(logger.warn) != 1 || logger.warn[0] != "footnotes.renderer.marker_skipped" {
		t.Fatalf("expected one warning for the blank body, got %v", logger.warn)
	}
	if len(logger.debug) != 1 {
		t.Fatalf("expected unknown marker logged at debug, got %v", logger.debug)
	}
}

func TestRenderer_AccumulatesAcrossCalls(t *testing.T) {
	renderer := NewRenderer(&passthroughRenderer{})
	page := NewStaticPage(note("A", "alpha"), note("B", "beta"))

	first := render(t, renderer, `<footnote id="A">a</footnote>`, RenderContext{Page: page})
	second := render(t, renderer, `<footnote id="B">b</footnote><footnote id="A">a</footnote>`, RenderContext{
		Page:       page,
		References: first.References,
	})

	if string(first.HTML) != Anchor(1) {
		t.Fatalf("expected first call to yield 1, got %s", first.HTML)
	}
	if string(second.HTML) != Anchor(2)+Anchor(1) {
		t.Fatalf("expected second call to continue numbering, got %s", second.HTML)
	}
	if second.References != first.References {
		t.Fatal("expected the threaded reference list to be returned")
	}
	if len(second.Cited) != 2 || second.Cited[0].UUID != "B" || second.Cited[1].UUID != "A" {
		t.Fatalf("unexpected cited order: %+v", second.Cited)
	}
}

func TestRenderer_MarkerDoesNotSpanNewlines(t *testing.T) {
	renderer := NewRenderer(&passthroughRenderer{})

	source := "<footnote id=\"A\">a\nb</footnote>"
	result := render(t, renderer, source, RenderContext{Page: NewStaticPage(note("A", "alpha"))})

	if string(result.HTML) != source {
		t.Fatalf("expected multi-line marker untouched, got %q", result.HTML)
	}
}

func TestRenderer_BaseErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	renderer := NewRenderer(&passthroughRenderer{err: boom})

	_, err := renderer.Render(context.Background(), interfaces.RichText{Source: "x"}, RenderContext{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected base error, got %v", err)
	}
}

func TestRenderer_PageErrorPropagates(t *testing.T) {
	boom := errors.New("load failed")
	renderer := NewRenderer(&passthroughRenderer{})

	_, err := renderer.Render(context.Background(), interfaces.RichText{Source: "x"}, RenderContext{Page: failingPage{err: boom}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected page error, got %v", err)
	}
}

func TestRenderer_RequiresBase(t *testing.T) {
	if _, err := NewRenderer(nil).Render(context.Background(), interfaces.RichText{}, RenderContext{}); !errors.Is(err, ErrRendererRequired) {
		t.Fatalf("expected ErrRendererRequired, got %v", err)
	}
}

func TestRenderer_ProcessSkipsBaseRenderer(t *testing.T) {
	base := &passthroughRenderer{}
	renderer := NewRenderer(base)

	result, err := renderer.Process(context.Background(), `<footnote id="A">a</footnote>`, RenderContext{
		Page: NewStaticPage(note("A", "alpha")),
	})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if base.calls != 0 {
		t.Fatalf("expected base renderer not to run, got %d calls", base.calls)
	}
	if !strings.Contains(string(result.HTML), `href="#footnote-1"`) {
		t.Fatalf("expected anchor, got %s", result.HTML)
	}
}

func TestFindMarkers(t *testing.T) {
	html := `x<footnote id="one">1</footnote>y<footnote id="two">label</footnote>`
	markers := FindMarkers(html)

	if len(markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(markers))
	}
	if markers[0].ID != "one" || markers[1].ID != "two" {
		t.Fatalf("unexpected ids: %+v", markers)
	}
	if html[markers[1].Start:markers[1].End] != `<footnote id="two">label</footnote>` {
		t.Fatalf("unexpected marker bounds: %+v", markers[1])
	}
	if FindMarkers("<p>none</p>") != nil {
		t.Fatal("expected nil for html without markers")
	}
}
