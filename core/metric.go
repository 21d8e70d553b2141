package core

import (
	"fmt"
	"strings"
)

// ScoreFunc compares two vectors and returns a similarity score.
type ScoreFunc func(x, y Vector) (float64, error)

// Metric names a way of scoring a subject against embeddings.
type Metric string

const (
	// MetricL2 scores by Euclidean distance; lower is better.
	MetricL2 Metric = "l2"
	// MetricCosine scores by cosine similarity; higher is better.
	MetricCosine Metric = "cosine"
)

// Metrics maps human-readable names to score functions. "euclidean" is an
// alias of "l2".
var Metrics = map[string]ScoreFunc{
	"l2":        L2Distance,
	"euclidean": L2Distance,
	"cosine":    CosineSimilarity,
}

// ParseMetric resolves a metric name, case-insensitively.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "l2", "euclidean":
		return MetricL2, nil
	case "cosine":
		return MetricCosine, nil
	}
	return "", fmt.Errorf("unknown metric %q: %w", name, ErrInvalidArgument)
}

// Better reports whether score a beats score b under m.
func (m Metric) Better(a, b float64) bool {
	if m == MetricCosine {
		return a > b
	}
	return a < b
}

// Accepts reports whether score passes threshold under m. An L2 score must be
// at most the threshold, a cosine score strictly above it.
func (m Metric) Accepts(score, threshold float64) bool {
	if m == MetricCosine {
		return score > threshold
	}
	return score <= threshold
}

// ClusterScore returns the mean score of subject against every member of
// cluster. For MetricL2 this is the average distance, computed in parallel
// when workers != 1.
func (m Metric) ClusterScore(k Kernel, subject Vector, cluster Cluster, workers int) (float64, error) {
	switch m {
	case MetricL2:
		if workers == 1 {
			return k.AverageDistance(subject, cluster)
		}
		return k.AverageDistanceParallel(subject, cluster, workers)
	case MetricCosine:
		if err := k.checkAverage(subject, cluster); err != nil {
			return 0, err
		}
		var sum float64
		for _, member := range cluster {
			s, err := k.CosineSimilarity(subject, member)
			if err != nil {
				return 0, err
			}
			sum += s
		}
		// Empty cluster under PolicyLegacy yields 0/0 = NaN.
		return sum / float64(len(cluster)), nil
	}
	return 0, fmt.Errorf("unknown metric %q: %w", string(m), ErrInvalidArgument)
}
