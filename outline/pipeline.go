package outline

import (
	"github.com/colmreid/strata/model"
	"github.com/colmreid/strata/normalize"
)

// Config aggregates the configuration of every pipeline stage.
type Config struct {
	Normalize normalize.Config
	Stopset   StopsetConfig
	Filter    FilterConfig
	Gate      GateConfig
	Cluster   ClusterConfig
	Title     TitleConfig
	Assembler AssemblerConfig

	// PageHeight is the nominal page height used for vertical-position
	// features and the title top region.
	// Default: 792 (US Letter)
	PageHeight float64
}

// DefaultConfig returns the default configuration for all stages.
func DefaultConfig() Config {
	return Config{
		Normalize:  normalize.DefaultConfig(),
		Stopset:    DefaultStopsetConfig(),
		Filter:     DefaultFilterConfig(),
		Gate:       DefaultGateConfig(),
		Cluster:    DefaultClusterConfig(),
		Title:      DefaultTitleConfig(),
		Assembler:  DefaultAssemblerConfig(),
		PageHeight: defaultPageHeight,
	}
}

// Report summarizes one pipeline run so the surrounding system can log
// data-quality events. The core itself never logs.
type Report struct {
	Normalize  normalize.Stats
	Candidates int
	Headings   int
}

// Pipeline wires the decision stages together. A pipeline is stateless
// between documents and safe for concurrent use: a batch orchestrator may
// share one pipeline across workers, one document per worker.
type Pipeline struct {
	normalizer *normalize.Normalizer
	stopset    *StopsetBuilder
	filter     *NoiseFilter
	classifier *Classifier
	title      *TitleDetector
	assembler  *Assembler
	pageHeight float64
}

// NewPipeline creates a pipeline with default configuration.
func NewPipeline() *Pipeline {
	return NewPipelineWithConfig(DefaultConfig())
}

// NewPipelineWithConfig creates a pipeline with custom configuration.
func NewPipelineWithConfig(cfg Config) *Pipeline {
	height := cfg.PageHeight
	if height <= 0 {
		height = defaultPageHeight
	}
	return &Pipeline{
		normalizer: normalize.NewWithConfig(cfg.Normalize),
		stopset:    NewStopsetBuilderWithConfig(cfg.Stopset),
		filter:     NewNoiseFilterWithConfig(cfg.Filter),
		classifier: NewClassifierWithConfig(cfg.Gate, cfg.Cluster),
		title:      NewTitleDetectorWithConfig(cfg.Title),
		assembler:  NewAssemblerWithConfig(cfg.Assembler),
		pageHeight: height,
	}
}

// Run executes the full decision pipeline for one document and returns its
// outline. Zero spans is not an error: the result is an outline with empty
// entries and whatever title fallback is available.
func (p *Pipeline) Run(spans []model.Span, pageCount int) model.Outline {
	out, _ := p.RunReport(spans, pageCount)
	return out
}

// RunReport is Run plus a per-stage summary for logging.
func (p *Pipeline) RunReport(spans []model.Span, pageCount int) (model.Outline, Report) {
	var report Report

	normalized, stats := p.normalizer.Normalize(spans)
	report.Normalize = stats

	if pageCount < 1 {
		pageCount = inferPageCount(normalized)
	}
	if len(normalized) == 0 {
		return model.NewOutline(""), report
	}

	firstPage := pageSpans(normalized, 0)

	// The title detector sees unfiltered page-one spans: title candidates
	// are not necessarily heading candidates.
	primary := p.title.Primary(firstPage, p.pageHeight)

	stop := p.stopset.Build(normalized, pageCount)
	cands := p.filter.Filter(normalized, stop, normalize.Key(primary.Title))
	report.Candidates = len(cands)

	headings := p.classifier.Classify(cands, p.pageHeight)
	report.Headings = len(headings)

	title := p.title.Resolve(primary, headings, firstPage)
	return p.assembler.Assemble(headings, title, firstPage, pageCount), report
}

// inferPageCount derives a page count from span page indices when the
// caller does not know it (for example, span lists built by hand).
func inferPageCount(spans []model.Span) int {
	count := 0
	for _, s := range spans {
		if s.Page+1 > count {
			count = s.Page + 1
		}
	}
	return count
}

// pageSpans returns the spans of one page, preserving order.
func pageSpans(spans []model.Span, page int) []model.Span {
	var out []model.Span
	for _, s := range spans {
		if s.Page == page {
			out = append(out, s)
		}
	}
	return out
}
