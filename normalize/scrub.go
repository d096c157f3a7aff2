package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces runs of whitespace with single spaces and
// trims the result.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// CollapseRepeatedWords removes adjacent duplicate words, a common artifact
// of overlapping text layers ("Request Request for for Proposal Proposal").
// Comparison is case-insensitive and the first occurrence is kept. Runs of
// any length collapse to one word, since each duplicate is compared against
// the word most recently kept.
func CollapseRepeatedWords(s string) string {
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if len(kept) > 0 && strings.EqualFold(w, kept[len(kept)-1]) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// CollapseStutter repairs character-level stutter where an extractor emits
// each glyph twice ("aadd iinngg" for "ad ing"). A token is only collapsed
// when most of its adjacent character pairs are identical, so legitimate
// double letters ("bookkeeping") survive.
func CollapseStutter(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = collapseStutterWord(w)
	}
	return strings.Join(words, " ")
}

func collapseStutterWord(w string) string {
	runes := []rune(w)
	if len(runes) < 4 {
		return w
	}

	doubled := 0
	for i := 0; i+1 < len(runes); i += 2 {
		if runes[i] == runes[i+1] {
			doubled++
		}
	}
	// Require nearly every pair to be doubled before treating as stutter.
	if float64(doubled) < 0.8*float64(len(runes)/2) {
		return w
	}

	var b strings.Builder
	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if i+1 < len(runes) && runes[i+1] == runes[i] {
			i++
		}
	}
	return b.String()
}

// Scrub applies the full artifact repair used for final title and heading
// strings: whitespace collapse, stutter repair, and duplicate-word removal.
func Scrub(s string) string {
	s = CollapseWhitespace(s)
	s = CollapseStutter(s)
	s = CollapseRepeatedWords(s)
	return s
}

// Key returns a canonical comparison key for a span text: NFKC-normalized,
// whitespace-collapsed, lowercased, with leading/trailing punctuation
// stripped. Used for stopset grouping and title matching.
func Key(s string) string {
	s = norm.NFKC.String(s)
	s = CollapseWhitespace(s)
	s = strings.ToLower(s)
	return strings.Trim(s, "-–—:;,. ")
}
