package strata

import (
	"github.com/colmreid/strata/extract"
	"github.com/colmreid/strata/outline"
)

// BuildOptions holds configuration for outline building.
type BuildOptions struct {
	// Pipeline stage configuration
	pipeline outline.Config

	// Span assembly configuration for the PDF reader
	extract extract.Config

	// OCR fallback for image-only pages
	recognizer extract.Recognizer
	images     extract.ImageProvider
}

// defaultOptions returns the default build options.
func defaultOptions() BuildOptions {
	return BuildOptions{
		pipeline: outline.DefaultConfig(),
		extract:  extract.DefaultConfig(),
	}
}

// clone creates a copy of BuildOptions. The configs are value types, so a
// plain copy is deep enough; the OCR hooks are shared by design.
func (o BuildOptions) clone() BuildOptions {
	return BuildOptions{
		pipeline:   o.pipeline,
		extract:    o.extract,
		recognizer: o.recognizer,
		images:     o.images,
	}
}
