package outline

import (
	"github.com/colmreid/strata/model"
)

// Classifier decides which candidates are headings and assigns levels.
// It combines the linear gate (Stage A) with document-local font-size
// clustering (Stage B). A classifier holds only read-only configuration
// and retains no state between documents.
type Classifier struct {
	gate    *Gate
	cluster ClusterConfig
}

// NewClassifier creates a classifier with default gate coefficients and
// clustering configuration.
func NewClassifier() *Classifier {
	return &Classifier{gate: NewGate(), cluster: DefaultClusterConfig()}
}

// NewClassifierWithConfig creates a classifier with custom gate and
// clustering configuration.
func NewClassifierWithConfig(gate GateConfig, cluster ClusterConfig) *Classifier {
	return &Classifier{gate: NewGateWithConfig(gate), cluster: cluster}
}

// Classify runs both stages over the candidate set and returns the
// classified headings in input order. The result never has more entries
// than the candidate set. An empty candidate set yields an empty result;
// downstream single-page elevation is then the only source of headings.
func (c *Classifier) Classify(cands []model.Candidate, pageHeight float64) []model.ClassifiedHeading {
	headings := make([]model.ClassifiedHeading, 0, len(cands))
	if len(cands) == 0 {
		return headings
	}

	feats := computeFeatures(cands, pageHeight)

	// Stage A: hard binary gate decision per candidate.
	passed := make([]bool, len(cands))
	for i := range cands {
		passed[i] = c.gate.Pass(feats[i])
	}

	// Stage B clusters the sizes of every surviving candidate, forced ones
	// included. A forced section heading set in body-size type must pull
	// the cluster layout toward its own size, not inherit the level of the
	// nearest large cluster.
	var clusterIdx []int
	for i := range cands {
		if passed[i] || cands[i].Forced {
			clusterIdx = append(clusterIdx, i)
		}
	}
	if len(clusterIdx) == 0 {
		return headings
	}

	sizes := make([]float64, len(clusterIdx))
	for j, i := range clusterIdx {
		sizes[j] = cands[i].FontSize
	}

	centers, labels := clusterSizes(sizes, c.cluster.MaxClusters, c.cluster.MaxIterations)
	levels := levelForCenters(centers, c.cluster.MergeTolerance)

	clusterLevel := make(map[int]int, len(clusterIdx))
	for j, i := range clusterIdx {
		clusterLevel[i] = levels[labels[j]]
	}

	for _, i := range clusterIdx {
		headings = append(headings, model.ClassifiedHeading{
			Candidate: cands[i],
			Level:     model.HeadingLevel(clusterLevel[i]).Clamp(),
		})
	}

	return headings
}
