package extract

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/colmreid/strata/model"
)

// Config holds configuration for character-to-span assembly.
type Config struct {
	// BaselineTolerance is the maximum Y difference for two characters to
	// share a baseline.
	// Default: 2.0 points
	BaselineTolerance float64

	// WordGapFactor is the horizontal gap, as a fraction of font size,
	// above which a space is inserted between adjacent characters.
	// Default: 0.3
	WordGapFactor float64

	// RunGapFactor is the horizontal gap, as a fraction of font size,
	// above which a baseline is split into separate spans. Gaps this wide
	// usually mean a column boundary or a table cell.
	// Default: 2.0
	RunGapFactor float64
}

// DefaultConfig returns sensible defaults for span assembly.
func DefaultConfig() Config {
	return Config{
		BaselineTolerance: 2.0,
		WordGapFactor:     0.3,
		RunGapFactor:      2.0,
	}
}

// defaultPageHeight is assumed when a page carries no usable MediaBox
// (US Letter, 792pt).
const defaultPageHeight = 792.0

// buildSpans converts one page's raw characters into line-level spans.
// Characters are grouped by baseline, each baseline is split at column-wide
// gaps, and coordinates are flipped from the PDF bottom-up convention to a
// top-left origin.
func buildSpans(texts []pdf.Text, pageIndex int, pageHeight float64, cfg Config) []model.Span {
	if pageHeight <= 0 {
		pageHeight = defaultPageHeight
	}

	chars := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		chars = append(chars, t)
	}
	if len(chars) == 0 {
		return nil
	}

	// Top of page first: descending PDF Y, then left to right.
	sort.SliceStable(chars, func(i, j int) bool {
		if chars[i].Y != chars[j].Y {
			return chars[i].Y > chars[j].Y
		}
		return chars[i].X < chars[j].X
	})

	var spans []model.Span
	row := []pdf.Text{chars[0]}
	for _, t := range chars[1:] {
		if abs(t.Y-row[0].Y) <= cfg.BaselineTolerance {
			row = append(row, t)
			continue
		}
		spans = append(spans, rowSpans(row, pageIndex, pageHeight, cfg)...)
		row = []pdf.Text{t}
	}
	spans = append(spans, rowSpans(row, pageIndex, pageHeight, cfg)...)
	return spans
}

// rowSpans splits one baseline's characters into spans at column-wide gaps
// and assembles text, geometry, and font style for each.
func rowSpans(row []pdf.Text, pageIndex int, pageHeight float64, cfg Config) []model.Span {
	sort.SliceStable(row, func(i, j int) bool {
		return row[i].X < row[j].X
	})

	var spans []model.Span
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) {
			prev := row[i-1]
			gap := row[i].X - (prev.X + prev.W)
			size := prev.FontSize
			if size <= 0 {
				size = 12
			}
			if gap <= size*cfg.RunGapFactor {
				continue
			}
		}
		if s, ok := runSpan(row[start:i], pageIndex, pageHeight, cfg); ok {
			spans = append(spans, s)
		}
		start = i
	}
	return spans
}

// runSpan assembles one contiguous character run into a span.
func runSpan(run []pdf.Text, pageIndex int, pageHeight float64, cfg Config) (model.Span, bool) {
	if len(run) == 0 {
		return model.Span{}, false
	}

	var b strings.Builder
	x0, x1 := run[0].X, run[0].X+run[0].W
	baseline := run[0].Y
	fontSize := run[0].FontSize
	bold, italic := fontStyle(run[0].Font)

	for i, t := range run {
		if i > 0 {
			prev := run[i-1]
			gap := t.X - (prev.X + prev.W)
			size := prev.FontSize
			if size <= 0 {
				size = 12
			}
			if gap > size*cfg.WordGapFactor {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)

		if t.X < x0 {
			x0 = t.X
		}
		if t.X+t.W > x1 {
			x1 = t.X + t.W
		}
		if t.Y > baseline {
			baseline = t.Y
		}
		if t.FontSize > fontSize {
			fontSize = t.FontSize
		}
		tb, ti := fontStyle(t.Font)
		bold = bold || tb
		italic = italic || ti
	}

	if fontSize <= 0 {
		fontSize = 12
	}

	// Flip to a top-left origin. The PDF Y is the baseline measured from
	// the page bottom; the glyph box extends one font size above it.
	y0 := pageHeight - baseline - fontSize
	if y0 < 0 {
		y0 = 0
	}
	y1 := pageHeight - baseline
	if y1 <= y0 {
		y1 = y0 + fontSize
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return model.Span{}, false
	}

	return model.Span{
		Text:     text,
		Page:     pageIndex,
		FontSize: fontSize,
		Bold:     bold,
		Italic:   italic,
		BBox:     model.NewBBox(x0, y0, x1, y1),
	}, true
}

// fontStyle infers weight and slant from a PDF font name such as
// "ABCDEF+Helvetica-BoldOblique".
func fontStyle(font string) (bold, italic bool) {
	name := strings.ToLower(font)
	bold = strings.Contains(name, "bold") ||
		strings.Contains(name, "black") ||
		strings.Contains(name, "heavy")
	italic = strings.Contains(name, "italic") || strings.Contains(name, "oblique")
	return bold, italic
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
