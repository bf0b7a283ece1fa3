package footnotes

import "github.com/goliatone/go-cms-footnotes/pkg/interfaces"

type (
	Footnote = interfaces.Footnote
	Page     = interfaces.FootnotePage
)
