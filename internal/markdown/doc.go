// Package markdown renders Markdown rich text with goldmark and parses
// Markdown documents whose front matter declares page footnotes.
package markdown
