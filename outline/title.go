package outline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/colmreid/strata/model"
	"github.com/colmreid/strata/normalize"
)

// TitleConfig holds configuration for title detection.
type TitleConfig struct {
	// SizeTolerance is the absolute font-size difference within which
	// page-one spans join the max-font title block.
	// Default: 0.5 points
	SizeTolerance float64

	// TopRegionRatio restricts title candidates to the top fraction of the
	// first page.
	// Default: 0.5
	TopRegionRatio float64

	// SubtitleMinRatio is the minimum subtitle font size relative to the
	// title font size.
	// Default: 0.6
	SubtitleMinRatio float64

	// MaxSubtitles bounds how many subtitle lines are collected.
	// Default: 2
	MaxSubtitles int
}

// DefaultTitleConfig returns sensible defaults for title detection.
func DefaultTitleConfig() TitleConfig {
	return TitleConfig{
		SizeTolerance:    0.5,
		TopRegionRatio:   0.5,
		SubtitleMinRatio: 0.6,
		MaxSubtitles:     2,
	}
}

// TitleDetector assembles the document title from first-page typography.
// It inspects the unfiltered page-one spans: title candidates are not
// necessarily heading candidates.
type TitleDetector struct {
	config TitleConfig
}

// NewTitleDetector creates a detector with default configuration.
func NewTitleDetector() *TitleDetector {
	return &TitleDetector{config: DefaultTitleConfig()}
}

// NewTitleDetectorWithConfig creates a detector with custom configuration.
func NewTitleDetectorWithConfig(config TitleConfig) *TitleDetector {
	return &TitleDetector{config: config}
}

// Tail of a rejected field label: blanks, underscores, dashes.
var fieldLabelTailRE = regexp.MustCompile(`^[\s_.\-]*$`)

// Primary runs the max-font top-region heuristic over the first page's
// spans and returns the assembled title plus subtitles. The result may be
// empty or non-title-like; Resolve applies the fallback policy.
func (d *TitleDetector) Primary(firstPage []model.Span, pageHeight float64) model.TitleResult {
	if len(firstPage) == 0 {
		return model.TitleResult{}
	}
	if pageHeight <= 0 {
		pageHeight = defaultPageHeight
	}

	// Title candidates live in the top region of the page.
	var top []model.Span
	for _, s := range firstPage {
		if s.BBox.Y0 <= pageHeight*d.config.TopRegionRatio {
			top = append(top, s)
		}
	}
	if len(top) == 0 {
		return model.TitleResult{}
	}

	maxSize := top[0].FontSize
	for _, s := range top[1:] {
		if s.FontSize > maxSize {
			maxSize = s.FontSize
		}
	}

	var lines []model.Span
	for _, s := range top {
		if maxSize-s.FontSize < d.config.SizeTolerance {
			lines = append(lines, s)
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].BBox.Y0 != lines[j].BBox.Y0 {
			return lines[i].BBox.Y0 < lines[j].BBox.Y0
		}
		return lines[i].BBox.X0 < lines[j].BBox.X0
	})

	parts := make([]string, len(lines))
	titleBottom := lines[0].BBox.Y0
	for i, s := range lines {
		parts[i] = s.Text
		if s.BBox.Y0 > titleBottom {
			titleBottom = s.BBox.Y0
		}
	}

	return model.TitleResult{
		Title:     normalize.Scrub(strings.Join(parts, " ")),
		Subtitles: d.subtitles(firstPage, maxSize, titleBottom),
	}
}

// subtitles collects up to MaxSubtitles lines immediately below the title
// block: still large relative to the title, but not numbered sections,
// list items, or dates.
func (d *TitleDetector) subtitles(firstPage []model.Span, titleSize, titleBottom float64) []string {
	var below []model.Span
	for _, s := range firstPage {
		if s.BBox.Y0 <= titleBottom {
			continue
		}
		if titleSize-s.FontSize < d.config.SizeTolerance {
			continue // part of the title block, not a subtitle
		}
		if s.FontSize < titleSize*d.config.SubtitleMinRatio {
			continue
		}
		if forcedSectionRE.MatchString(s.Text) || listMarkerRE.MatchString(s.Text) || dateRE.MatchString(s.Text) {
			continue
		}
		below = append(below, s)
	}

	sort.SliceStable(below, func(i, j int) bool {
		if below[i].BBox.Y0 != below[j].BBox.Y0 {
			return below[i].BBox.Y0 < below[j].BBox.Y0
		}
		return below[i].BBox.X0 < below[j].BBox.X0
	})

	var subs []string
	for _, s := range below {
		if len(subs) == d.config.MaxSubtitles {
			break
		}
		subs = append(subs, normalize.Scrub(s.Text))
	}
	return subs
}

// Resolve applies the fallback policy: when the primary heuristic rejects
// its own candidate, the first H1 becomes the title, then the largest
// first-page span. The decision is deterministic and never an error.
func (d *TitleDetector) Resolve(primary model.TitleResult, headings []model.ClassifiedHeading, firstPage []model.Span) model.TitleResult {
	if !rejectsTitle(primary.Title) {
		return primary
	}

	for _, h := range headings {
		if h.Level == model.Level1 {
			return model.TitleResult{Title: normalize.Scrub(h.Text)}
		}
	}

	var largest *model.Span
	for i := range firstPage {
		if largest == nil || firstPage[i].FontSize > largest.FontSize {
			largest = &firstPage[i]
		}
	}
	if largest != nil && !rejectsTitle(largest.Text) {
		return model.TitleResult{Title: normalize.Scrub(largest.Text)}
	}
	return model.TitleResult{}
}

// rejectsTitle reports whether a candidate string is clearly not a title:
// empty, a bare list marker, or a short field label like "RSVP: ___".
func rejectsTitle(title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return true
	}
	if listMarkerRE.MatchString(title) {
		return true
	}
	if idx := strings.Index(title, ":"); idx >= 0 {
		head := strings.TrimSpace(title[:idx])
		tail := title[idx+1:]
		if len(strings.Fields(head)) <= 2 && fieldLabelTailRE.MatchString(tail) {
			return true
		}
	}
	return false
}
