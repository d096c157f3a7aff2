package outline

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/colmreid/strata/model"
)

// FeatureCount is the dimensionality of the gate feature vector.
const FeatureCount = 8

// Feature vector layout. Weights in GateConfig follow the same order.
const (
	featFontZ      = iota // font-size z-score over the candidate set
	featBold              // 1 if bold
	featItalic            // 1 if italic
	featYPos              // y0 / page height (top-of-page bias)
	featCapsRatio         // uppercase letters / total characters
	featNumPrefix         // 1 if the text starts with a number pattern
	featColon             // 1 if the text ends with a colon
	featLineLen           // word count, saturated at 20 and scaled to [0,1]
)

// features is one candidate's feature vector. Computed once per span,
// consumed by the gate, and discarded after classification.
type features [FeatureCount]float64

var leadingNumberRE = regexp.MustCompile(`^\d+(\.\d+)*`)

// computeFeatures builds feature vectors for the whole candidate set.
// The font-size z-score is document-local: it is computed against the mean
// and deviation of the candidate sizes, so classification of one document
// never depends on any other.
func computeFeatures(cands []model.Candidate, pageHeight float64) []features {
	if len(cands) == 0 {
		return nil
	}
	if pageHeight <= 0 {
		pageHeight = defaultPageHeight
	}

	mean, std := sizeMoments(cands)

	out := make([]features, len(cands))
	for i, c := range cands {
		var f features
		f[featFontZ] = (c.FontSize - mean) / std
		if c.Bold {
			f[featBold] = 1
		}
		if c.Italic {
			f[featItalic] = 1
		}
		f[featYPos] = c.BBox.Y0 / pageHeight
		f[featCapsRatio] = capsRatio(c.Text)
		if leadingNumberRE.MatchString(strings.TrimSpace(c.Text)) {
			f[featNumPrefix] = 1
		}
		if strings.HasSuffix(strings.TrimSpace(c.Text), ":") {
			f[featColon] = 1
		}
		words := len(strings.Fields(c.Text))
		if words > 20 {
			words = 20
		}
		f[featLineLen] = float64(words) / 20
		out[i] = f
	}
	return out
}

// sizeMoments returns the mean and (epsilon-floored) standard deviation of
// the candidate font sizes.
func sizeMoments(cands []model.Candidate) (mean, std float64) {
	for _, c := range cands {
		mean += c.FontSize
	}
	mean /= float64(len(cands))

	var variance float64
	for _, c := range cands {
		d := c.FontSize - mean
		variance += d * d
	}
	variance /= float64(len(cands))

	std = math.Sqrt(variance) + 1e-6
	return mean, std
}

// capsRatio returns the fraction of characters that are uppercase letters.
func capsRatio(text string) float64 {
	if text == "" {
		return 0
	}
	total, upper := 0, 0
	for _, r := range text {
		total++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(total)
}
