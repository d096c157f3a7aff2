// Package model defines the core data types shared by the outline
// extraction pipeline: text spans with font and position metadata,
// heading levels, classified headings, and the final Outline artifact.
//
// Coordinates use a top-left origin: Y grows downward, so sorting by
// (Page, Y0, X0) ascending yields document reading order. The extraction
// layer is responsible for converting PDF bottom-up coordinates before
// spans enter the pipeline.
package model
