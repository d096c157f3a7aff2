package model

import "strings"

// Span represents one typographic text fragment on one page.
// Spans are produced by the extraction layer and treated as immutable by
// the pipeline; normalization yields derived copies, never in-place edits.
type Span struct {
	// Text is the fragment text content.
	Text string

	// Page is the 0-based source-document page index.
	Page int

	// FontSize is the rendered font size in points.
	FontSize float64

	// Bold and Italic are style flags, typically inferred from font names.
	Bold   bool
	Italic bool

	// BBox is the fragment position in top-left-origin page coordinates.
	BBox BBox
}

// Valid reports whether the span satisfies the pipeline input invariants:
// non-empty text, positive font size, and a well-formed bounding box.
// Spans failing this check are dropped during normalization.
func (s Span) Valid() bool {
	return strings.TrimSpace(s.Text) != "" &&
		s.FontSize > 0 &&
		s.Page >= 0 &&
		s.BBox.IsValid()
}

// Candidate is a span that survived noise filtering and is eligible for
// heading classification.
type Candidate struct {
	Span

	// Forced marks candidates matching a numbered-section pattern; they
	// bypass the linear gate and are always assigned a level.
	Forced bool
}

// ClassifiedHeading is a candidate with its assigned heading level.
type ClassifiedHeading struct {
	Candidate

	// Level is the heading level assigned by font-size clustering.
	Level HeadingLevel
}
