package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command failures.
const (
	TextCodeInvalidMessage = "FOOTNOTES_COMMAND_INVALID"
	TextCodeCanceled       = "FOOTNOTES_COMMAND_CANCELED"
	TextCodeTimeout        = "FOOTNOTES_COMMAND_TIMEOUT"
	TextCodeFailed         = "FOOTNOTES_COMMAND_FAILED"
)

// Errors already carrying a go-errors category keep it.
func alreadyTagged(err error) bool {
	return err == nil || goerrors.IsWrapped(err)
}

func wrapValidationError(err error) error {
	if alreadyTagged(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid footnote command").
		WithTextCode(TextCodeInvalidMessage)
}

func wrapContextError(err error) error {
	if alreadyTagged(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "footnote command timed out").
			WithTextCode(TextCodeTimeout)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "footnote command canceled").
		WithTextCode(TextCodeCanceled)
}

func wrapExecuteError(err error) error {
	if alreadyTagged(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "footnote command failed").
		WithTextCode(TextCodeFailed)
}
