package outline

import "fmt"

// defaultPageHeight is used for the vertical-position feature when the
// caller does not supply page dimensions (US Letter, 792pt).
const defaultPageHeight = 792.0

// GateConfig holds the fixed coefficients of the linear heading gate.
// The coefficients are versioned configuration data, not something fit at
// runtime: every document is scored with the same vector, which keeps the
// decision consistent and explainable across runs.
type GateConfig struct {
	// Weights are the per-feature coefficients, in feature-vector order.
	Weights [FeatureCount]float64

	// Intercept is the constant term added to the weighted sum.
	Intercept float64

	// LargeFontZ is the font-size z-score at which a candidate passes the
	// gate regardless of its other features. Text dramatically larger than
	// its peers is heading-like even when unstyled.
	// Default: 0.5
	LargeFontZ float64
}

// DefaultGateConfig returns the trained gate coefficients.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		Weights: [FeatureCount]float64{
			featFontZ:      2.1,
			featBold:       1.3,
			featItalic:     0.4,
			featYPos:       -0.5,
			featCapsRatio:  1.7,
			featNumPrefix:  2.4,
			featColon:      0.8,
			featLineLen:    -1.1,
		},
		Intercept:  -1.8,
		LargeFontZ: 0.5,
	}
}

// Validate checks that the gate configuration is usable.
func (c GateConfig) Validate() error {
	allZero := true
	for _, w := range c.Weights {
		if w != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return fmt.Errorf("gate weights are all zero")
	}
	return nil
}

// Gate is the fixed-coefficient linear decision function separating
// heading-ish spans from everything else. It holds read-only state and is
// safe for concurrent use across documents.
type Gate struct {
	config GateConfig
}

// NewGate creates a gate with the default coefficients.
func NewGate() *Gate {
	return &Gate{config: DefaultGateConfig()}
}

// NewGateWithConfig creates a gate with custom coefficients.
func NewGateWithConfig(config GateConfig) *Gate {
	return &Gate{config: config}
}

// Score returns the raw linear score w·f + b for a feature vector.
func (g *Gate) Score(f features) float64 {
	score := g.config.Intercept
	for i, w := range g.config.Weights {
		score += w * f[i]
	}
	return score
}

// Pass reports the hard binary gate decision: the score is positive, or
// the candidate's font size towers over its peers.
func (g *Gate) Pass(f features) bool {
	return g.Score(f) > 0 || f[featFontZ] >= g.config.LargeFontZ
}
