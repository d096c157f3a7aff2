package outline

import (
	"regexp"

	"github.com/colmreid/strata/model"
	"github.com/colmreid/strata/normalize"
)

// StopsetConfig holds configuration for header/footer repetition detection.
type StopsetConfig struct {
	// RepetitionRatio is the fraction of pages on which a text must repeat
	// to be treated as a running header or footer.
	// Default: 0.30 (30% of pages)
	RepetitionRatio float64

	// MinPages is the minimum document page count before repetition
	// detection applies. Single-page documents have no boilerplate to find,
	// and any text on them would trivially exceed the ratio.
	// Default: 2
	MinPages int

	// MinOccurrences is the absolute floor on repetitions regardless of the
	// ratio, so short documents do not stopset text that appears once.
	// Default: 2
	MinOccurrences int
}

// DefaultStopsetConfig returns sensible defaults for stopset construction.
func DefaultStopsetConfig() StopsetConfig {
	return StopsetConfig{
		RepetitionRatio: 0.30,
		MinPages:        2,
		MinOccurrences:  2,
	}
}

// Stopset is the set of boilerplate texts excluded from heading candidacy.
// Keys are produced by stopsetKey, which folds digits so page-number
// variants ("Page 3 of 10") group together across pages.
type Stopset map[string]struct{}

// Contains reports whether the given span text is boilerplate.
func (s Stopset) Contains(text string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[stopsetKey(text)]
	return ok
}

// StopsetBuilder detects running headers and footers across pages.
type StopsetBuilder struct {
	config StopsetConfig
}

// NewStopsetBuilder creates a builder with default configuration.
func NewStopsetBuilder() *StopsetBuilder {
	return &StopsetBuilder{config: DefaultStopsetConfig()}
}

// NewStopsetBuilderWithConfig creates a builder with custom configuration.
func NewStopsetBuilderWithConfig(config StopsetConfig) *StopsetBuilder {
	return &StopsetBuilder{config: config}
}

// Build groups spans by normalized text across the whole document and
// returns the texts whose distinct-page occurrence count exceeds the
// repetition threshold. The aggregation is scoped to one document; no state
// survives the call.
func (b *StopsetBuilder) Build(spans []model.Span, pageCount int) Stopset {
	stop := make(Stopset)
	if pageCount < b.config.MinPages {
		return stop
	}

	pagesByKey := make(map[string]map[int]struct{})
	for _, s := range spans {
		key := stopsetKey(s.Text)
		if key == "" {
			continue
		}
		if pagesByKey[key] == nil {
			pagesByKey[key] = make(map[int]struct{})
		}
		pagesByKey[key][s.Page] = struct{}{}
	}

	cutoff := int(float64(pageCount) * b.config.RepetitionRatio)
	if cutoff < b.config.MinOccurrences {
		cutoff = b.config.MinOccurrences
	}

	for key, pages := range pagesByKey {
		if len(pages) >= cutoff {
			stop[key] = struct{}{}
		}
	}
	return stop
}

var digitRunRE = regexp.MustCompile(`\d+`)

// pageNumberKeys are folded forms of common page-number boilerplate.
var pageNumberKeys = map[string]struct{}{
	"#":           {},
	"page #":      {},
	"page # of #": {},
	"# of #":      {},
	"#/#":         {},
	"- # -":       {},
	"p. #":        {},
	"pg. #":       {},
	"pg #":        {},
}

// stopsetKey canonicalizes text for repetition grouping. Digit runs are
// folded to "#", but the folded form is only used when it looks like
// page-number boilerplate; otherwise the plain normalized key is used so
// distinct numbered headings ("Chapter 1", "Chapter 2") never group.
func stopsetKey(text string) string {
	key := normalize.Key(text)
	folded := digitRunRE.ReplaceAllString(key, "#")
	if _, ok := pageNumberKeys[folded]; ok {
		return folded
	}
	return key
}
