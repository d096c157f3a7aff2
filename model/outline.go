package model

import (
	"encoding/json"
	"fmt"
)

// HeadingLevel represents the hierarchical level of a heading (H1-H6).
type HeadingLevel int

const (
	LevelUnknown HeadingLevel = iota
	Level1                    // H1 - largest font cluster
	Level2                    // H2
	Level3                    // H3
	Level4                    // H4
	Level5                    // H5
	Level6                    // H6 - smallest recognized cluster
)

// String returns the wire representation of the heading level ("H1".."H6").
func (l HeadingLevel) String() string {
	if l >= Level1 && l <= Level6 {
		return fmt.Sprintf("H%d", int(l))
	}
	return "unknown"
}

// MarshalJSON encodes the level as its string form ("H1").
func (l HeadingLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level from its string form.
func (l *HeadingLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	var n int
	if _, err := fmt.Sscanf(s, "H%d", &n); err != nil || n < 1 || n > 6 {
		return fmt.Errorf("invalid heading level %q", s)
	}
	*l = HeadingLevel(n)
	return nil
}

// Clamp bounds the level to the H1..H6 range.
func (l HeadingLevel) Clamp() HeadingLevel {
	if l < Level1 {
		return Level1
	}
	if l > Level6 {
		return Level6
	}
	return l
}

// TitleResult holds the detected document title plus up to two subtitle
// lines, built once per document from page-one spans.
type TitleResult struct {
	Title     string
	Subtitles []string
}

// OutlineEntry is one heading in the final outline.
type OutlineEntry struct {
	Level HeadingLevel `json:"level"`
	Text  string       `json:"text"`
	Page  int          `json:"page"`
}

// Outline is the terminal pipeline artifact: a document title plus an
// ordered heading list. It is built once and never mutated afterwards.
//
// Entries are totally ordered by (page, y0, x0) of their source spans.
// The JSON form matches the external output contract:
//
//	{"title": "...", "outline": [{"level": "H1", "text": "...", "page": 1}]}
type Outline struct {
	Title   string         `json:"title"`
	Entries []OutlineEntry `json:"outline"`
}

// NewOutline creates an outline with a non-nil entry slice so an empty
// outline serializes as [] rather than null.
func NewOutline(title string) Outline {
	return Outline{Title: title, Entries: []OutlineEntry{}}
}
