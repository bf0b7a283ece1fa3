package footnotes

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

const listTemplate = `<div class="footnotes"><ol>` +
	`{{range .}}<li id="footnote-{{.Index}}">{{.Body}} <a href="#footnote-source-{{.Index}}" aria-label="Back to content">↩</a></li>{{end}}` +
	`</ol></div>`

// ListRenderer renders the footnote bodies cited on a page, numbered to
// match the inline anchors.
type ListRenderer struct {
	base interfaces.RichTextRenderer
	tmpl *template.Template
}

type listItem struct {
	Index int
	Body  template.HTML
}

// NewListRenderer renders footnote bodies through base.
func NewListRenderer(base interfaces.RichTextRenderer) *ListRenderer {
	return &ListRenderer{
		base: base,
		tmpl: template.Must(template.New("footnotes").Parse(listTemplate)),
	}
}

// Render returns the list markup, or "" when nothing was cited.
func (l *ListRenderer) Render(ctx context.Context, refs *References) (template.HTML, error) {
	if refs.Len() == 0 {
		return "", nil
	}
	if l.base == nil {
		return "", ErrRendererRequired
	}

	items := make([]listItem, 0, refs.Len())
	for idx, footnote := range refs.Footnotes() {
		body, err := l.base.Render(ctx, interfaces.RichText{Source: footnote.Text})
		if err != nil {
			return "", fmt.Errorf("footnotes: render body of %q: %w", footnote.UUID, err)
		}
		items = append(items, listItem{Index: idx + 1, Body: template.HTML(body)})
	}

	var buf bytes.Buffer
	if err := l.tmpl.Execute(&buf, items); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
