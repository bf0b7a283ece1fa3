package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

// documentNamespace seeds deterministic page and footnote ids so repeated
// parses of the same document agree on storage keys.
var documentNamespace = uuid.MustParse("3f0c5b0e-8d4e-4e59-9d1a-6a3f4f7e2c11")

// Document is a Markdown file whose front matter declares the footnotes its
// body may cite.
type Document struct {
	Title     string
	Slug      string
	PageID    uuid.UUID
	Body      []byte
	Footnotes []*interfaces.Footnote
}

// FootnoteEntry is a footnote as declared in front matter.
type FootnoteEntry struct {
	UUID string `yaml:"uuid" json:"uuid"`
	Text string `yaml:"text" json:"text"`
}

type frontMatterEnvelope struct {
	Title     string          `yaml:"title"`
	Slug      string          `yaml:"slug"`
	Footnotes []FootnoteEntry `yaml:"footnotes"`
}

// ParseDocument splits front matter from the Markdown body, validates the
// declared footnotes and returns them keyed to a page id derived from the
// normalized slug (or title when no slug is set).
func ParseDocument(source []byte) (*Document, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	if err := validateFrontMatter(meta); err != nil {
		return nil, err
	}

	key := documentSlug(meta)
	pageID := uuid.NewSHA1(documentNamespace, []byte(key))

	notes := make([]*interfaces.Footnote, 0, len(meta.Footnotes))
	for _, entry := range meta.Footnotes {
		id := strings.TrimSpace(entry.UUID)
		notes = append(notes, &interfaces.Footnote{
			ID:     uuid.NewSHA1(pageID, []byte(id)),
			PageID: pageID,
			UUID:   id,
			Text:   strings.TrimSpace(entry.Text),
		})
	}

	return &Document{
		Title:     meta.Title,
		Slug:      key,
		PageID:    pageID,
		Body:      body,
		Footnotes: notes,
	}, nil
}

// documentSlug normalizes the declared slug, falling back to the title, so
// "Field Notes" and "field-notes" key the same page.
func documentSlug(meta frontMatterEnvelope) string {
	candidate := strings.TrimSpace(meta.Slug)
	if candidate == "" {
		candidate = strings.TrimSpace(meta.Title)
	}
	if candidate == "" {
		return ""
	}
	normalized, err := slug.Normalize(candidate)
	if err != nil || normalized == "" {
		return candidate
	}
	return normalized
}
