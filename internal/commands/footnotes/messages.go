package footnotescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-footnotes/internal/footnotes"
	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	createFootnoteMessageType = "footnotes.footnote.create"
	deleteFootnoteMessageType = "footnotes.footnote.delete"
	renderPageMessageType     = "footnotes.page.render"
)

// CreateFootnoteCommand stores a footnote on a page. A blank UUID lets the
// service generate the marker identifier.
type CreateFootnoteCommand struct {
	PageID uuid.UUID `json:"page_id"`
	UUID   string    `json:"uuid,omitempty"`
	Text   string    `json:"text"`
}

// Type implements command.Message.
func (CreateFootnoteCommand) Type() string { return createFootnoteMessageType }

// Validate ensures the page and footnote body are present.
func (cmd CreateFootnoteCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageID, validation.By(requiredUUID("footnotes.footnote.create.page_id_required", "page id is required"))),
		validation.Field(&cmd.Text, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("footnotes.footnote.create.text_required", "text is required")
			}
			return nil
		})),
		validation.Field(&cmd.UUID, validation.Length(0, 64)),
	)
}

// DeleteFootnoteCommand removes a footnote by primary key.
type DeleteFootnoteCommand struct {
	ID uuid.UUID `json:"id"`
}

// Type implements command.Message.
func (DeleteFootnoteCommand) Type() string { return deleteFootnoteMessageType }

func (cmd DeleteFootnoteCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ID, validation.By(requiredUUID("footnotes.footnote.delete.id_required", "id is required"))),
	)
}

// RenderPageCommand renders every field of a page with shared footnote
// numbering. Result, when set, receives the rendered page.
type RenderPageCommand struct {
	PageID uuid.UUID                   `json:"page_id"`
	Fields []interfaces.RichText       `json:"fields"`
	Result func(*footnotes.PageResult) `json:"-"`
}

// Type implements command.Message.
func (RenderPageCommand) Type() string { return renderPageMessageType }

func (cmd RenderPageCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageID, validation.By(requiredUUID("footnotes.page.render.page_id_required", "page id is required"))),
		validation.Field(&cmd.Fields, validation.Required),
	)
}

func requiredUUID(code, message string) validation.RuleFunc {
	return func(value any) error {
		id, _ := value.(uuid.UUID)
		if id == uuid.Nil {
			return validation.NewError(code, message)
		}
		return nil
	}
}
