// Package config loads the strata runtime configuration: worker limits,
// OCR settings, and the tunable pipeline coefficients. Values come from a
// YAML file, STRATA_-prefixed environment variables, and built-in
// defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/colmreid/strata/outline"
)

// Config is the full runtime configuration.
type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Output   OutputConfig   `mapstructure:"output"`
	Workers  int            `mapstructure:"workers"`
	Timeout  time.Duration  `mapstructure:"timeout"`
	OCR      OCRConfig      `mapstructure:"ocr"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

// InputConfig selects the documents to process.
type InputConfig struct {
	// Dir is the directory scanned for documents.
	Dir string `mapstructure:"dir"`

	// Pattern is the filename glob applied within Dir.
	Pattern string `mapstructure:"pattern"`
}

// OutputConfig controls where and how outlines are written.
type OutputConfig struct {
	// Dir receives one <stem>.json per input document.
	Dir string `mapstructure:"dir"`

	// Validate re-checks every outline against the interchange schema
	// before writing.
	Validate bool `mapstructure:"validate"`
}

// OCRConfig controls the scanned-page fallback.
type OCRConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Language string `mapstructure:"language"`
}

// PipelineConfig carries the tunable decision coefficients. Anything not
// set here keeps the outline package defaults.
type PipelineConfig struct {
	PageHeight float64       `mapstructure:"page_height"`
	Gate       GateConfig    `mapstructure:"gate"`
	Stopset    StopsetConfig `mapstructure:"stopset"`
	Cluster    ClusterConfig `mapstructure:"cluster"`
	Title      TitleConfig   `mapstructure:"title"`
}

// GateConfig mirrors the linear gate coefficients.
type GateConfig struct {
	Weights    []float64 `mapstructure:"weights"`
	Intercept  float64   `mapstructure:"intercept"`
	LargeFontZ float64   `mapstructure:"large_font_z"`
}

// StopsetConfig mirrors the boilerplate detector thresholds.
type StopsetConfig struct {
	Ratio    float64 `mapstructure:"ratio"`
	MinPages int     `mapstructure:"min_pages"`
}

// ClusterConfig mirrors the level-clustering thresholds.
type ClusterConfig struct {
	MaxClusters    int     `mapstructure:"max_clusters"`
	MergeTolerance float64 `mapstructure:"merge_tolerance"`
}

// TitleConfig mirrors the title-detection thresholds.
type TitleConfig struct {
	TopRegionRatio float64 `mapstructure:"top_region_ratio"`
}

// Manager loads configuration and serves it to concurrent readers, with
// optional hot reload of the backing file.
type Manager struct {
	v         *viper.Viper
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager loads configuration from cfgFile (or the default search
// paths when empty) plus the environment.
func NewManager(cfgFile string) (*Manager, error) {
	m := &Manager{v: viper.New()}

	setDefaults(m.v)

	m.v.SetEnvPrefix("STRATA")
	m.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.v.AutomaticEnv()

	if cfgFile != "" {
		m.v.SetConfigFile(cfgFile)
	} else {
		m.v.SetConfigName("config")
		m.v.SetConfigType("yaml")
		m.v.AddConfigPath(".")
		m.v.AddConfigPath("$HOME/.strata")
	}

	// The config file is optional when using the search paths.
	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := m.load()
	if err != nil {
		return nil, err
	}
	m.config = cfg
	return m, nil
}

// setDefaults seeds the built-in configuration.
func setDefaults(v *viper.Viper) {
	pipe := outline.DefaultConfig()

	v.SetDefault("input.dir", "input")
	v.SetDefault("input.pattern", "*.pdf")
	v.SetDefault("output.dir", "output")
	v.SetDefault("output.validate", true)
	v.SetDefault("workers", 4)
	v.SetDefault("timeout", time.Minute)
	v.SetDefault("ocr.enabled", false)
	v.SetDefault("ocr.language", "eng")

	v.SetDefault("pipeline.page_height", pipe.PageHeight)
	v.SetDefault("pipeline.gate.weights", pipe.Gate.Weights[:])
	v.SetDefault("pipeline.gate.intercept", pipe.Gate.Intercept)
	v.SetDefault("pipeline.gate.large_font_z", pipe.Gate.LargeFontZ)
	v.SetDefault("pipeline.stopset.ratio", pipe.Stopset.RepetitionRatio)
	v.SetDefault("pipeline.stopset.min_pages", pipe.Stopset.MinPages)
	v.SetDefault("pipeline.cluster.max_clusters", pipe.Cluster.MaxClusters)
	v.SetDefault("pipeline.cluster.merge_tolerance", pipe.Cluster.MergeTolerance)
	v.SetDefault("pipeline.title.top_region_ratio", pipe.Title.TopRegionRatio)
}

// load parses the current viper state.
func (m *Manager) load() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration. Safe for concurrent use.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// OnChange registers a callback invoked after each successful reload.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Watch enables hot reload of the backing file. Reloads that fail
// validation are discarded and the previous configuration stays active.
func (m *Manager) Watch() {
	m.v.OnConfigChange(func(fsnotify.Event) {
		cfg, err := m.load()
		if err != nil {
			return
		}

		m.mu.Lock()
		m.config = cfg
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	m.v.WatchConfig()
}

// Validate rejects configurations the orchestrator cannot run with.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if n := len(c.Pipeline.Gate.Weights); n != 0 && n != outline.FeatureCount {
		return fmt.Errorf("gate weights need %d coefficients, got %d", outline.FeatureCount, n)
	}
	return nil
}

// ToPipelineConfig maps the tunable coefficients onto a full pipeline
// configuration, keeping package defaults for anything unset.
func (c *Config) ToPipelineConfig() outline.Config {
	cfg := outline.DefaultConfig()

	if c.Pipeline.PageHeight > 0 {
		cfg.PageHeight = c.Pipeline.PageHeight
	}
	// The gate coefficients travel as a unit: a weight vector of the right
	// arity brings its intercept along, otherwise both keep their defaults.
	if len(c.Pipeline.Gate.Weights) == outline.FeatureCount {
		copy(cfg.Gate.Weights[:], c.Pipeline.Gate.Weights)
		cfg.Gate.Intercept = c.Pipeline.Gate.Intercept
	}
	if c.Pipeline.Gate.LargeFontZ > 0 {
		cfg.Gate.LargeFontZ = c.Pipeline.Gate.LargeFontZ
	}
	if c.Pipeline.Stopset.Ratio > 0 {
		cfg.Stopset.RepetitionRatio = c.Pipeline.Stopset.Ratio
	}
	if c.Pipeline.Stopset.MinPages > 0 {
		cfg.Stopset.MinPages = c.Pipeline.Stopset.MinPages
	}
	if c.Pipeline.Cluster.MaxClusters > 0 {
		cfg.Cluster.MaxClusters = c.Pipeline.Cluster.MaxClusters
	}
	if c.Pipeline.Cluster.MergeTolerance > 0 {
		cfg.Cluster.MergeTolerance = c.Pipeline.Cluster.MergeTolerance
	}
	if c.Pipeline.Title.TopRegionRatio > 0 {
		cfg.Title.TopRegionRatio = c.Pipeline.Title.TopRegionRatio
	}
	return cfg
}
