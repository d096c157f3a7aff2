package outline

import (
	"math"
	"sort"
)

// ClusterConfig holds configuration for font-size level clustering.
type ClusterConfig struct {
	// MaxClusters bounds the number of font-size clusters, and therefore
	// the number of distinct heading levels a document can produce.
	// Default: 4
	MaxClusters int

	// MergeTolerance is the relative center distance below which two
	// adjacent clusters are merged into one level. Sub-pixel size noise
	// (18pt vs 17.5pt) should not split H1 into H1/H2.
	// Default: 0.05
	MergeTolerance float64

	// MaxIterations bounds the k-means refinement loop.
	// Default: 32
	MaxIterations int
}

// DefaultClusterConfig returns sensible defaults for level clustering.
func DefaultClusterConfig() ClusterConfig {
	return ClusterConfig{
		MaxClusters:    4,
		MergeTolerance: 0.05,
		MaxIterations:  32,
	}
}

// clusterSizes runs deterministic one-dimensional k-means over font sizes.
// It returns the cluster centers and a label per input size. k is clamped
// to the number of distinct sizes, so uniform input collapses to a single
// cluster. Initialization spreads centers over the distinct-value range,
// which, together with the one-dimensional geometry, makes the result
// independent of input order.
func clusterSizes(sizes []float64, k int, maxIter int) (centers []float64, labels []int) {
	if len(sizes) == 0 {
		return nil, nil
	}

	distinct := distinctSorted(sizes)
	if k > len(distinct) {
		k = len(distinct)
	}
	if k < 1 {
		k = 1
	}

	// Seed centers at evenly spaced distinct values.
	centers = make([]float64, k)
	for i := 0; i < k; i++ {
		idx := i * (len(distinct) - 1) / max(k-1, 1)
		centers[i] = distinct[idx]
	}
	sort.Float64s(centers)

	labels = make([]int, len(sizes))
	for iter := 0; iter < maxIter; iter++ {
		// Assignment step.
		changed := false
		for i, s := range sizes {
			best := nearestCenter(centers, s)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		// Update step.
		sums := make([]float64, k)
		counts := make([]int, k)
		for i, s := range sizes {
			sums[labels[i]] += s
			counts[labels[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] > 0 {
				centers[c] = sums[c] / float64(counts[c])
			}
		}

		if !changed && iter > 0 {
			break
		}
	}

	return centers, labels
}

// nearestCenter returns the index of the closest center, preferring the
// lower index on exact ties for determinism.
func nearestCenter(centers []float64, v float64) int {
	best := 0
	bestDist := math.Abs(centers[0] - v)
	for i := 1; i < len(centers); i++ {
		d := math.Abs(centers[i] - v)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// levelForCenters maps cluster centers to heading levels: the largest
// center becomes H1, the next H2, and so on. Adjacent centers closer than
// the relative merge tolerance share the higher (larger-font) level.
// Returns a per-cluster-index level, aligned with the centers slice.
func levelForCenters(centers []float64, tolerance float64) []int {
	n := len(centers)
	if n == 0 {
		return nil
	}

	// Order cluster indices by center size, largest first.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return centers[order[a]] > centers[order[b]]
	})

	levels := make([]int, n)
	level := 1
	levels[order[0]] = level
	for i := 1; i < n; i++ {
		prev := centers[order[i-1]]
		cur := centers[order[i]]
		if prev > 0 && (prev-cur)/prev >= tolerance {
			level++
		}
		if level > 6 {
			level = 6
		}
		levels[order[i]] = level
	}
	return levels
}

// distinctSorted returns the sorted distinct values of sizes.
func distinctSorted(sizes []float64) []float64 {
	out := make([]float64, len(sizes))
	copy(out, sizes)
	sort.Float64s(out)

	distinct := make([]float64, 0, len(out))
	for _, v := range out {
		if len(distinct) == 0 || v != distinct[len(distinct)-1] {
			distinct = append(distinct, v)
		}
	}
	return distinct
}
