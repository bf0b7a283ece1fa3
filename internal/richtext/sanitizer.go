package richtext

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownFormat is returned for values whose format has no renderer.
	ErrUnknownFormat = errors.New("richtext: unknown format")
	// ErrUnsafeMarkup is returned when sanitising finds disallowed markup.
	ErrUnsafeMarkup = errors.New("richtext: unsafe markup")
)

// Sanitizer is a conservative check that rejects inline scripts and
// javascript: URLs while leaving other markup untouched.
type Sanitizer struct {
	blocked []string
}

// NewSanitizer returns a sanitizer rejecting script tags, javascript: URLs
// and inline event handlers on common elements.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		blocked: []string{
			"<script",
			"javascript:",
			" onerror=",
			" onload=",
			" onclick=",
			" onmouseover=",
		},
	}
}

// Sanitize returns html unchanged or ErrUnsafeMarkup.
func (s *Sanitizer) Sanitize(html string) (string, error) {
	lower := strings.ToLower(html)
	for _, needle := range s.blocked {
		if strings.Contains(lower, needle) {
			return "", fmt.Errorf("%w: %s", ErrUnsafeMarkup, strings.TrimSpace(needle))
		}
	}
	return html, nil
}
