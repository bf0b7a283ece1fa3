package footnotes

import (
	"fmt"
	"regexp"
)

// markerPattern matches `<footnote id="ID">label</footnote>` lazily and
// never across a newline.
var markerPattern = regexp.MustCompile(`<footnote id="(.*?)">.*?</footnote>`)

// Marker locates one footnote marker in rendered HTML. Start and End are
// byte offsets of the whole tag.
type Marker struct {
	ID    string
	Start int
	End   int
}

// FindMarkers returns every marker in html in source order.
func FindMarkers(html string) []Marker {
	matches := markerPattern.FindAllStringSubmatchIndex(html, -1)
	if len(matches) == 0 {
		return nil
	}
	markers := make([]Marker, 0, len(matches))
	for _, m := range matches {
		markers = append(markers, Marker{
			ID:    html[m[2]:m[3]],
			Start: m[0],
			End:   m[1],
		})
	}
	return markers
}

// Anchor returns the inline link markup for display number index.
func Anchor(index int) string {
	return fmt.Sprintf(`<a href="#footnote-%d" id="footnote-source-%d"><sup>[%d]</sup></a>`, index, index, index)
}
