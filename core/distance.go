package core

import (
	"fmt"
	"math"
)

// Vector is a single embedding. Functions in this package only read it and
// never keep a reference past return.
type Vector = []float32

// Cluster is a group of embeddings that share the subject's dimension.
type Cluster = []Vector

// L2Distance computes the Euclidean (L2) distance between two vectors.
// Two empty vectors are at distance 0.
func L2Distance(x, y Vector) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("l2 distance: vectors have lengths %d and %d: %w",
			len(x), len(y), ErrInvalidArgument)
	}
	return euclidean(x, y), nil
}

// euclidean returns the L2 distance of two vectors already known to have
// equal length.
func euclidean(x, y Vector) float64 {
	var sum float64
	for i := range x {
		d := float64(x[i]) - float64(y[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// It fails with ErrDegenerateInput when either vector has zero norm.
func CosineSimilarity(x, y Vector) (float64, error) {
	return Strict.CosineSimilarity(x, y)
}

// AverageDistance returns the mean L2 distance between subject and every
// member of cluster. The cluster must be non-empty and every member must have
// the subject's length.
func AverageDistance(subject Vector, cluster Cluster) (float64, error) {
	return Strict.AverageDistance(subject, cluster)
}

// checkCluster validates that every member of cluster matches the subject
// length. It does not check for an empty cluster.
func checkCluster(subject Vector, cluster Cluster) error {
	for i, member := range cluster {
		if len(member) != len(subject) {
			return fmt.Errorf("cluster member %d has length %d, subject has %d: %w",
				i, len(member), len(subject), ErrInvalidArgument)
		}
	}
	return nil
}
