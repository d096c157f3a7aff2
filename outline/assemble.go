package outline

import (
	"sort"
	"strings"

	"github.com/colmreid/strata/model"
	"github.com/colmreid/strata/normalize"
)

// AssemblerConfig holds configuration for final outline assembly.
type AssemblerConfig struct {
	// ElevationTolerance is the relative font-size gap below which the two
	// spans elevated on a sparse single page share the H1 level instead of
	// splitting into H1/H2.
	// Default: 0.05
	ElevationTolerance float64
}

// DefaultAssemblerConfig returns sensible defaults for assembly.
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{ElevationTolerance: 0.05}
}

// Assembler establishes the total order over classified headings and emits
// the final outline with the page-number conventions applied.
type Assembler struct {
	config AssemblerConfig
}

// NewAssembler creates an assembler with default configuration.
func NewAssembler() *Assembler {
	return &Assembler{config: DefaultAssemblerConfig()}
}

// NewAssemblerWithConfig creates an assembler with custom configuration.
func NewAssemblerWithConfig(config AssemblerConfig) *Assembler {
	return &Assembler{config: config}
}

// Assemble builds the final outline. Headings are ordered by
// (page, y0, x0) ascending with the stable sort preserving extraction
// order on ties. Page numbers follow the logical-page convention:
// single-page documents emit page 0 for every entry; multi-page documents
// emit max(1, physicalIndex), treating the cover as part of logical page 1.
//
// For a populated single page that produced no headings, the largest
// normalized spans are elevated to H1/H2 so the outline is never empty.
// The detected title text is never elevated.
func (a *Assembler) Assemble(headings []model.ClassifiedHeading, title model.TitleResult, firstPage []model.Span, pageCount int) model.Outline {
	out := model.NewOutline(strings.TrimSpace(title.Title))

	sorted := make([]model.ClassifiedHeading, len(headings))
	copy(sorted, headings)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, bj := sorted[i], sorted[j]
		if ai.Page != bj.Page {
			return ai.Page < bj.Page
		}
		if ai.BBox.Y0 != bj.BBox.Y0 {
			return ai.BBox.Y0 < bj.BBox.Y0
		}
		return ai.BBox.X0 < bj.BBox.X0
	})

	singlePage := pageCount == 1
	for _, h := range sorted {
		out.Entries = append(out.Entries, model.OutlineEntry{
			Level: h.Level,
			Text:  strings.TrimSpace(h.Text),
			Page:  logicalPage(h.Page, singlePage),
		})
	}

	if singlePage && len(out.Entries) == 0 {
		out.Entries = a.elevate(firstPage, title)
	}

	return out
}

// logicalPage maps a 0-based physical page index to its emitted number.
func logicalPage(physical int, singlePage bool) int {
	if singlePage {
		return 0
	}
	if physical < 1 {
		return 1
	}
	return physical
}

// elevate promotes the largest one or two spans of a single-page document
// to H1/H2 when classification produced nothing.
func (a *Assembler) elevate(firstPage []model.Span, title model.TitleResult) []model.OutlineEntry {
	titleKey := normalize.Key(title.Title)

	pool := make([]model.Span, 0, len(firstPage))
	for _, s := range firstPage {
		if titleKey != "" && normalize.Key(s.Text) == titleKey {
			continue
		}
		pool = append(pool, s)
	}
	if len(pool) == 0 {
		return []model.OutlineEntry{}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].FontSize > pool[j].FontSize
	})
	chosen := pool
	if len(chosen) > 2 {
		chosen = chosen[:2]
	}

	// Levels follow font size; emission order follows page position.
	level := map[int]model.HeadingLevel{0: model.Level1}
	if len(chosen) > 1 {
		level[1] = model.Level1
		if chosen[0].FontSize > 0 &&
			(chosen[0].FontSize-chosen[1].FontSize)/chosen[0].FontSize >= a.config.ElevationTolerance {
			level[1] = model.Level2
		}
	}

	type elevated struct {
		span  model.Span
		level model.HeadingLevel
	}
	ordered := make([]elevated, len(chosen))
	for i, s := range chosen {
		ordered[i] = elevated{span: s, level: level[i]}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].span.BBox.Y0 < ordered[j].span.BBox.Y0
	})

	entries := make([]model.OutlineEntry, 0, len(ordered))
	for _, e := range ordered {
		entries = append(entries, model.OutlineEntry{
			Level: e.level,
			Text:  strings.TrimSpace(e.span.Text),
			Page:  0,
		})
	}
	return entries
}
