package footnotes

// OutcomeKind tags what happened to a single marker.
type OutcomeKind string

const (
	OutcomeLinked  OutcomeKind = "linked"
	OutcomeSkipped OutcomeKind = "skipped"
)

// SkipReason explains why a marker was dropped from output.
type SkipReason string

const (
	SkipUnknownIdentifier SkipReason = "unknown_identifier"
	SkipInvalidFootnote   SkipReason = "invalid_footnote"
)

// Outcome records the handling of one marker, in source order. Skipped
// markers render as the empty string; Err holds the underlying fault.
type Outcome struct {
	Kind     OutcomeKind
	MarkerID string
	Index    int
	Anchor   string
	Reason   SkipReason
	Err      error
}

// Markup returns the HTML that replaces the marker.
func (o Outcome) Markup() string {
	if o.Kind != OutcomeLinked {
		return ""
	}
	return o.Anchor
}

func linked(markerID string, index int) Outcome {
	return Outcome{
		Kind:     OutcomeLinked,
		MarkerID: markerID,
		Index:    index,
		Anchor:   Anchor(index),
	}
}

func skipped(markerID string, reason SkipReason, err error) Outcome {
	return Outcome{
		Kind:     OutcomeSkipped,
		MarkerID: markerID,
		Reason:   reason,
		Err:      err,
	}
}
