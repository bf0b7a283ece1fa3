package footnotes

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxUUIDLength = 64

// ValidateFootnote checks the fields a footnote needs before it can be cited
// or stored: a marker identifier without quotes or whitespace, and a body.
func ValidateFootnote(footnote *Footnote) error {
	if footnote == nil {
		return wrapInvalid(validation.NewError("footnotes.footnote.required", "footnote is required"))
	}
	err := validation.ValidateStruct(footnote,
		validation.Field(&footnote.UUID,
			validation.Required.ErrorObject(validation.NewError("footnotes.uuid.required", "uuid is required")),
			validation.Length(1, maxUUIDLength),
			validation.By(func(value any) error {
				id, _ := value.(string)
				if strings.ContainsAny(id, "\"<> \t\r\n") {
					return validation.NewError("footnotes.uuid.invalid", "uuid cannot contain quotes, angle brackets or whitespace")
				}
				return nil
			}),
		),
		validation.Field(&footnote.Text,
			validation.By(func(value any) error {
				text, _ := value.(string)
				if strings.TrimSpace(text) == "" {
					return validation.NewError("footnotes.text.required", "text is required")
				}
				return nil
			}),
		),
	)
	if err != nil {
		return wrapInvalid(err)
	}
	return nil
}
