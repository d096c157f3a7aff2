// Package normalize cleans raw extracted spans before outline analysis.
//
// It drops malformed spans, collapses extraction artifacts (whitespace runs,
// character stutter, duplicated words), and merges spans that are fragments
// of one logical line split apart by the extractor. Normalization always
// produces derived copies; input spans are never mutated.
package normalize
