// Package extract reads layout-aware text spans out of PDF files.
//
// It wraps the pure-Go PDF reader and converts its per-character output
// into the line-level [model.Span] values the outline pipeline consumes:
// characters are grouped into baselines, baselines into fragments, and
// coordinates are flipped from the PDF bottom-up convention to the
// top-left origin used everywhere else in this module.
//
// Pages that carry no extractable text can optionally be recovered
// through an OCR fallback; see [Document.WithOCR].
package extract
