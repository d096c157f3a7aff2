// Package outline turns normalized typographic spans into a classified,
// ordered document outline: a title plus H1/H2/H3... headings with page
// numbers.
//
// The decision pipeline runs in a strict order with no retained state
// between documents:
//
//   - [StopsetBuilder] finds running headers and footers by cross-page
//     repetition of normalized text.
//   - [NoiseFilter] removes spans unlikely to be headings (dates, dot
//     leaders, bare numbers, long prose, list items), while force-keeping
//     numbered-section spans.
//   - [Classifier] applies a fixed-coefficient linear gate over cheap
//     typographic features, then maps font-size clusters to heading levels.
//   - [TitleDetector] assembles the document title from the first page's
//     largest text, with a deterministic fallback path.
//   - [Assembler] orders the headings and applies the page-number
//     conventions to produce the final [model.Outline].
//
// [Pipeline] wires the stages together:
//
//	p := outline.NewPipeline()
//	result := p.Run(spans, pageCount)
//
// Every stage is deterministic: identical input spans always produce a
// byte-identical outline. All failure modes for well-formed input are
// recoverable; the pipeline never returns an error, only a possibly empty
// outline.
package outline
