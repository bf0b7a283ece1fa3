package footnotes

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeUnknown = "FOOTNOTE_UNKNOWN"
	textCodeInvalid = "FOOTNOTE_INVALID"
)

var (
	ErrUnknownFootnote    = errors.New("footnotes: unknown footnote")
	ErrInvalidFootnote    = errors.New("footnotes: invalid footnote")
	ErrRendererRequired   = errors.New("footnotes: base renderer required")
	ErrRepositoryRequired = errors.New("footnotes: repository required")
	ErrPageIDRequired     = errors.New("footnotes: page id required")
	ErrFootnoteIDRequired = errors.New("footnotes: footnote id required")
	ErrDuplicateFootnote  = errors.New("footnotes: uuid already in use on page")
)

// NotFoundError is returned when a footnote cannot be located in storage.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func unknownFootnote(id string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %q", ErrUnknownFootnote, id), goerrors.CategoryNotFound, "footnote marker references an unknown footnote").
		WithTextCode(textCodeUnknown)
}

func wrapInvalid(err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %w", ErrInvalidFootnote, err), goerrors.CategoryValidation, "footnote failed validation").
		WithTextCode(textCodeInvalid)
}
