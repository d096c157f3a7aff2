package normalize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/colmreid/strata/model"
)

// Config holds configuration for span normalization and line merging.
type Config struct {
	// BaselineTolerance is the maximum Y0 difference for two spans to be
	// treated as sitting on the same visual line.
	// Default: 2 points
	BaselineTolerance float64

	// MaxJoinGap is the maximum horizontal gap between two same-line spans
	// that still merges them into one logical line.
	// Default: 40 points
	MaxJoinGap float64

	// FontTolerance is the maximum font size difference for spans to be
	// considered the same run when merging continuation lines.
	// Default: 0.6 points
	FontTolerance float64

	// LineStepFactor bounds how far below (in multiples of the font size) a
	// continuation line may start and still merge with the line above it.
	// Default: 1.8
	LineStepFactor float64
}

// DefaultConfig returns sensible defaults for span normalization.
func DefaultConfig() Config {
	return Config{
		BaselineTolerance: 2.0,
		MaxJoinGap:        40.0,
		FontTolerance:     0.6,
		LineStepFactor:    1.8,
	}
}

// Stats reports what normalization did, so the surrounding system can log
// data-quality events for malformed input.
type Stats struct {
	// Input is the raw span count.
	Input int

	// Dropped counts malformed spans (empty text, non-positive font size,
	// non-finite bounding box) removed silently.
	Dropped int

	// Merged counts spans absorbed into a preceding span.
	Merged int
}

// Normalizer cleans raw spans and merges broken line fragments.
type Normalizer struct {
	config Config
}

// New creates a normalizer with default configuration.
func New() *Normalizer {
	return &Normalizer{config: DefaultConfig()}
}

// NewWithConfig creates a normalizer with custom configuration.
func NewWithConfig(config Config) *Normalizer {
	return &Normalizer{config: config}
}

// Leading section-number patterns. A span that is only a section number
// ("2." / "2.1") is usually the detached prefix of the heading that follows.
var (
	sectionNumberOnlyRE = regexp.MustCompile(`^\d+\.(\d+\.?)*\s*$`)
	sectionPrefixRE     = regexp.MustCompile(`^\d+(\.\d+)*\s`)
)

// Normalize cleans the raw span list for one document: invalid spans are
// dropped, text artifacts are collapsed, and fragments of one logical line
// are merged into single spans whose bbox is the union of the parts.
// The input slice is not modified.
func (n *Normalizer) Normalize(spans []model.Span) ([]model.Span, Stats) {
	stats := Stats{Input: len(spans)}

	clean := make([]model.Span, 0, len(spans))
	for _, s := range spans {
		s.Text = Scrub(s.Text)
		if !s.Valid() {
			stats.Dropped++
			continue
		}
		clean = append(clean, s)
	}

	// Reading order before merging: page, top-to-bottom, left-to-right.
	sort.SliceStable(clean, func(i, j int) bool {
		a, b := clean[i], clean[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.BBox.Y0 != b.BBox.Y0 {
			return a.BBox.Y0 < b.BBox.Y0
		}
		return a.BBox.X0 < b.BBox.X0
	})

	merged := n.mergeLineFragments(clean, &stats)
	return merged, stats
}

// mergeLineFragments joins spans that belong to one logical line.
func (n *Normalizer) mergeLineFragments(spans []model.Span, stats *Stats) []model.Span {
	if len(spans) == 0 {
		return []model.Span{}
	}

	merged := make([]model.Span, 0, len(spans))
	buf := spans[0]

	for _, next := range spans[1:] {
		if next.Page == buf.Page && n.shouldMerge(buf, next) {
			buf.Text = buf.Text + " " + next.Text
			buf.BBox = buf.BBox.Union(next.BBox)
			if next.FontSize > buf.FontSize {
				buf.FontSize = next.FontSize
			}
			buf.Bold = buf.Bold || next.Bold
			stats.Merged++
			continue
		}
		merged = append(merged, buf)
		buf = next
	}
	merged = append(merged, buf)
	return merged
}

// shouldMerge decides whether next continues the logical line held in buf.
func (n *Normalizer) shouldMerge(buf, next model.Span) bool {
	// Detached section number ("2.") followed by its heading text.
	if sectionNumberOnlyRE.MatchString(strings.TrimSpace(buf.Text)) &&
		!sectionPrefixRE.MatchString(next.Text) {
		return true
	}

	// Two differently numbered sections never merge, whatever the geometry.
	bufSec := sectionPrefix(buf.Text)
	nextSec := sectionPrefix(next.Text)
	if bufSec != "" && nextSec != "" && bufSec != nextSec {
		return false
	}

	sameBaseline := abs(next.BBox.Y0-buf.BBox.Y0) < n.config.BaselineTolerance
	gapOK := next.BBox.X0-buf.BBox.X1 < n.config.MaxJoinGap
	if sameBaseline && gapOK {
		return true
	}

	// Continuation line: matching font, one line step below.
	sameFont := abs(next.FontSize-buf.FontSize) < n.config.FontTolerance
	step := next.BBox.Y0 - buf.BBox.Y0
	return sameFont && step > 0 && step <= buf.FontSize*n.config.LineStepFactor
}

func sectionPrefix(text string) string {
	m := sectionPrefixRE.FindString(text)
	return strings.TrimSpace(m)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
