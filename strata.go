// Package strata derives structured outlines from PDF documents: a title
// plus the heading hierarchy (H1, H2, H3, ...) with the page each heading
// appears on. The result is deterministic: the same document always yields
// the same outline, with no network access and no model downloads.
//
// Basic usage:
//
//	result, err := strata.Open("report.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(result.Title)
//
// As JSON:
//
//	data, err := strata.Open("report.pdf").JSON()
//
// Span lists produced elsewhere (another extractor, a test fixture) can
// skip the reader entirely:
//
//	result := strata.Build(spans, pageCount)
//
// For advanced use the lower-level extract and outline packages are also
// available.
package strata

import (
	"encoding/json"
	"fmt"

	"github.com/colmreid/strata/extract"
	"github.com/colmreid/strata/model"
	"github.com/colmreid/strata/outline"
)

// Outliner provides a fluent interface for building document outlines.
// Each configuration method returns a new Outliner, making chains safe to
// fork and reuse.
type Outliner struct {
	// Source
	filename string
	doc      *extract.Document

	// Lifecycle
	ownsDoc   bool // true if we opened the document and should close it
	docOpened bool

	// Configuration
	options BuildOptions

	// Accumulated error (fail-fast)
	err error
}

// Open prepares a PDF file for outline building. The file is opened
// lazily by the terminal operation and closed when it completes.
//
// Example:
//
//	result, err := strata.Open("report.pdf").Outline()
func Open(filename string) *Outliner {
	return &Outliner{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument builds outlines from an already-open extract.Document.
// The caller keeps ownership and is responsible for closing it.
func FromDocument(doc *extract.Document) *Outliner {
	return &Outliner{
		doc:       doc,
		docOpened: true,
		options:   defaultOptions(),
	}
}

// Build runs the decision pipeline over a prepared span list. pageCount
// of zero infers the count from the span page indices.
func Build(spans []model.Span, pageCount int) model.Outline {
	return outline.NewPipeline().Run(spans, pageCount)
}

// clone creates a copy of the Outliner so configuration methods never
// mutate the chain they were called on.
func (o *Outliner) clone() *Outliner {
	return &Outliner{
		filename:  o.filename,
		doc:       o.doc,
		ownsDoc:   o.ownsDoc,
		docOpened: o.docOpened,
		options:   o.options.clone(),
		err:       o.err,
	}
}

// WithPipelineConfig replaces the decision-pipeline configuration.
func (o *Outliner) WithPipelineConfig(cfg outline.Config) *Outliner {
	n := o.clone()
	n.options.pipeline = cfg
	return n
}

// WithExtractConfig replaces the span-assembly configuration used by the
// PDF reader.
func (o *Outliner) WithExtractConfig(cfg extract.Config) *Outliner {
	n := o.clone()
	n.options.extract = cfg
	return n
}

// WithStopsetRatio overrides the cross-page repetition ratio above which
// text is treated as boilerplate.
func (o *Outliner) WithStopsetRatio(ratio float64) *Outliner {
	n := o.clone()
	n.options.pipeline.Stopset.RepetitionRatio = ratio
	return n
}

// WithMergeTolerance overrides the relative font-size gap below which
// adjacent heading levels merge.
func (o *Outliner) WithMergeTolerance(tolerance float64) *Outliner {
	n := o.clone()
	n.options.pipeline.Cluster.MergeTolerance = tolerance
	return n
}

// WithOCR installs an OCR fallback for image-only pages. Both arguments
// must be non-nil for the fallback to engage.
func (o *Outliner) WithOCR(r extract.Recognizer, images extract.ImageProvider) *Outliner {
	n := o.clone()
	n.options.recognizer = r
	n.options.images = images
	return n
}

// Outline is the terminal operation: it extracts spans and runs the
// decision pipeline, returning the document outline.
func (o *Outliner) Outline() (model.Outline, error) {
	out, _, err := o.OutlineReport()
	return out, err
}

// OutlineReport is Outline plus the per-stage pipeline summary, for
// callers that log data-quality events.
func (o *Outliner) OutlineReport() (model.Outline, outline.Report, error) {
	if o.err != nil {
		return model.Outline{}, outline.Report{}, o.err
	}

	doc, err := o.ensureDocument()
	if err != nil {
		return model.Outline{}, outline.Report{}, err
	}
	if o.ownsDoc {
		defer doc.Close()
	}

	spans, err := doc.Spans()
	if err != nil {
		return model.Outline{}, outline.Report{}, fmt.Errorf("extract spans: %w", err)
	}

	cfg := o.options.pipeline
	if cfg.PageHeight <= 0 {
		cfg.PageHeight = doc.PageHeight()
	}

	out, report := outline.NewPipelineWithConfig(cfg).RunReport(spans, doc.PageCount())
	return out, report, nil
}

// JSON is a terminal operation returning the outline serialized with
// two-space indentation.
func (o *Outliner) JSON() ([]byte, error) {
	out, err := o.Outline()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(out, "", "  ")
}

// ensureDocument opens the PDF if not already open.
func (o *Outliner) ensureDocument() (*extract.Document, error) {
	if o.docOpened {
		return o.configured(o.doc), nil
	}
	if o.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	doc, err := extract.Open(o.filename)
	if err != nil {
		return nil, err
	}
	o.ownsDoc = true
	return o.configured(doc), nil
}

// configured applies the chain's extraction options to the document.
func (o *Outliner) configured(doc *extract.Document) *extract.Document {
	doc = doc.WithConfig(o.options.extract)
	if o.options.recognizer != nil && o.options.images != nil {
		doc = doc.WithOCR(o.options.recognizer, o.options.images)
	}
	return doc
}

// Must panics when err is non-nil. Intended for scripts and tests.
//
// Example:
//
//	result := strata.Must(strata.Open("report.pdf").Outline())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
