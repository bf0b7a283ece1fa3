package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Footnote is an annotation owned by a page. UUID is the identifier that
// rich-text markers reference (`<footnote id="UUID">`), ID is the storage key.
type Footnote struct {
	bun.BaseModel `bun:"table:footnotes,alias:fn"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PageID    uuid.UUID `bun:"page_id,type:uuid,notnull" json:"page_id"`
	UUID      string    `bun:"uuid,notnull" json:"uuid"`
	Text      string    `bun:"text,notnull" json:"text"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// FootnotePage exposes the full footnote collection belonging to a page.
// Renderers build their lookup table from it on every call.
type FootnotePage interface {
	Footnotes(ctx context.Context) ([]*Footnote, error)
}

// RichText is a stored rich-text field value. Format selects the base
// renderer ("html" or "markdown"); an empty Format uses the renderer default.
type RichText struct {
	Source string `json:"source"`
	Format string `json:"format,omitempty"`
}

// RichTextRenderer produces HTML for a rich-text value. It is the base
// rendering step that footnote processing is layered on.
type RichTextRenderer interface {
	Render(ctx context.Context, value RichText) (string, error)
}

// FootnoteMetrics receives render telemetry from the footnote renderer.
type FootnoteMetrics interface {
	ObserveRenderDuration(elapsed time.Duration)
	IncrementMarkerSkipped(reason string)
}
