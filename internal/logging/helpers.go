package logging

import (
	"strings"

	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

// WithFields attaches structured fields when the logger implements
// interfaces.FieldsLogger. Blank keys and nil values are dropped; loggers
// without field support are returned as is.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	cleaned := make(map[string]any, len(fields))
	for key, value := range fields {
		key = strings.TrimSpace(key)
		if key == "" || value == nil {
			continue
		}
		cleaned[key] = value
	}
	if len(cleaned) == 0 {
		return logger
	}
	return fieldsLogger.WithFields(cleaned)
}
