package footnotes

// References is the ordered, de-duplicated list of footnotes cited while
// rendering one page. A footnote's 1-based position is its display number.
// It is not safe for concurrent use; one page render owns one list.
type References struct {
	items    []*Footnote
	position map[string]int
}

// NewReferences returns an empty list.
func NewReferences() *References {
	return &References{position: map[string]int{}}
}

// Add validates footnote, appends it unless already present and returns its
// display number. Footnotes are identified by UUID.
func (r *References) Add(footnote *Footnote) (int, error) {
	if err := ValidateFootnote(footnote); err != nil {
		return 0, err
	}
	if r.position == nil {
		r.position = map[string]int{}
	}
	if idx, ok := r.position[footnote.UUID]; ok {
		return idx + 1, nil
	}
	r.items = append(r.items, footnote)
	r.position[footnote.UUID] = len(r.items) - 1
	return len(r.items), nil
}

// IndexOf returns the display number for uuid.
func (r *References) IndexOf(uuid string) (int, bool) {
	if r == nil {
		return 0, false
	}
	idx, ok := r.position[uuid]
	if !ok {
		return 0, false
	}
	return idx + 1, true
}

// Len reports the number of distinct footnotes cited so far.
func (r *References) Len() int {
	if r == nil {
		return 0
	}
	return len(r.items)
}

// Footnotes returns the cited footnotes in display order.
func (r *References) Footnotes() []*Footnote {
	if r == nil {
		return nil
	}
	return append([]*Footnote(nil), r.items...)
}
