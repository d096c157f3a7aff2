package outline

import (
	"regexp"
	"strings"

	"github.com/colmreid/strata/model"
	"github.com/colmreid/strata/normalize"
)

// FilterConfig holds configuration for noise filtering.
type FilterConfig struct {
	// LongLineWords is the word count above which a span is treated as
	// prose rather than a heading, unless it carries a heading cue.
	// Default: 25
	LongLineWords int

	// TrimLineWords is the word count above which a kept span is truncated
	// to its pre-colon head clause ("Timeline: detailed schedule of..."
	// becomes "Timeline").
	// Default: 10
	TrimLineWords int

	// TrimHeadMaxWords is the maximum head-clause length for the colon trim
	// to apply. Longer heads are left untouched.
	// Default: 6
	TrimHeadMaxWords int
}

// DefaultFilterConfig returns sensible defaults for noise filtering.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		LongLineWords:    25,
		TrimLineWords:    10,
		TrimHeadMaxWords: 6,
	}
}

// Patterns for span exclusion. forcedSectionRE marks numbered-section
// spans ("2.1 Scope") that bypass every rule except the stopset.
var (
	// "2.1 Scope", "3.4.2 Results", "1. Introduction", "4) Methods".
	// A bare leading number ("18 JUNE 2013") is not a section prefix.
	forcedSectionRE = regexp.MustCompile(`^(\d+(\.\d+)+|\d+[.)])\s`)

	// "18 JUNE 2013", "June 18, 2013", "2013-06-18"
	dateRE = regexp.MustCompile(`(?i)\b(\d{1,2}\s+[a-z]{3,9},?\s+\d{4}|[a-z]{3,9}\s+\d{1,2},?\s+\d{4}|\d{4}-\d{2}-\d{2})\b`)

	// Dot or ellipsis leaders from tables of contents.
	dotLeaderRE = regexp.MustCompile(`(\.{4,}|\x{2026}{2,})`)

	// Bare numbers and detached numeric labels ("7", "3.").
	pureNumberRE = regexp.MustCompile(`^\d+\.?$`)

	// Bullets, dashes, and enumerations continuing in lowercase.
	listMarkerRE = regexp.MustCompile(`^([-\x{2022}\x{2023}\x{25E6}*]\s|\(?[a-z0-9]{1,2}[.)]\s+[a-z])`)
)

// NoiseFilter removes spans unlikely to be headings and produces the
// candidate set for classification.
type NoiseFilter struct {
	config FilterConfig
}

// NewNoiseFilter creates a filter with default configuration.
func NewNoiseFilter() *NoiseFilter {
	return &NoiseFilter{config: DefaultFilterConfig()}
}

// NewNoiseFilterWithConfig creates a filter with custom configuration.
func NewNoiseFilterWithConfig(config FilterConfig) *NoiseFilter {
	return &NoiseFilter{config: config}
}

// Filter applies the exclusion rules in order and returns the surviving
// spans as heading candidates. Spans matching the numbered-section pattern
// are force-kept and bypass every rule except the stopset check: repeated
// numbered boilerplate is still boilerplate. titleKey, when non-empty,
// excludes spans whose normalized text matches the detected document title.
func (f *NoiseFilter) Filter(spans []model.Span, stop Stopset, titleKey string) []model.Candidate {
	candidates := make([]model.Candidate, 0, len(spans))

	for _, s := range spans {
		forced := forcedSectionRE.MatchString(s.Text)

		// Stopset applies to forced spans too.
		if stop.Contains(s.Text) {
			continue
		}
		if titleKey != "" && normalize.Key(s.Text) == titleKey {
			continue
		}

		if !forced && f.isNoise(s.Text) {
			continue
		}

		s.Text = f.trimLabelClause(s.Text)
		candidates = append(candidates, model.Candidate{Span: s, Forced: forced})
	}

	return candidates
}

// isNoise applies exclusion rules (b) through (f).
func (f *NoiseFilter) isNoise(text string) bool {
	trimmed := strings.TrimSpace(text)

	if dateRE.MatchString(trimmed) {
		return true
	}
	if dotLeaderRE.MatchString(trimmed) {
		return true
	}
	if pureNumberRE.MatchString(trimmed) {
		return true
	}
	if len(strings.Fields(trimmed)) > f.config.LongLineWords && !strings.Contains(trimmed, ":") {
		return true
	}
	if listMarkerRE.MatchString(trimmed) {
		return true
	}
	return false
}

// trimLabelClause converts label-like long lines into heading-like short
// ones by keeping the text before the first colon. Purely cosmetic; the
// keep/drop decision has already been made.
func (f *NoiseFilter) trimLabelClause(text string) string {
	if len(strings.Fields(text)) <= f.config.TrimLineWords {
		return text
	}
	idx := strings.Index(text, ":")
	if idx <= 0 {
		return text
	}
	head := strings.TrimSpace(text[:idx])
	if head == "" || len(strings.Fields(head)) > f.config.TrimHeadMaxWords {
		return text
	}
	return head
}
