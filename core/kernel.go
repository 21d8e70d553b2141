package core

import (
	"fmt"
	"math"
)

// Policy selects how the kernel reports inputs for which the result is
// mathematically undefined.
type Policy int

const (
	// PolicyStrict reports an empty cluster and a zero-norm cosine operand
	// as errors.
	PolicyStrict Policy = iota
	// PolicyLegacy returns NaN with a nil error for an empty cluster and a
	// zero-norm cosine operand. Length mismatches are still errors.
	PolicyLegacy
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps a policy name to a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "strict":
		return PolicyStrict, nil
	case "legacy":
		return PolicyLegacy, nil
	}
	return PolicyStrict, fmt.Errorf("unknown policy %q: %w", name, ErrInvalidArgument)
}

// Kernel bundles the similarity operations under a Policy. The zero value is
// a strict kernel. A Kernel holds no state besides its policy and is safe for
// concurrent use.
type Kernel struct {
	Policy Policy
}

var (
	// Strict is the kernel used by the package-level functions.
	Strict = Kernel{Policy: PolicyStrict}
	// Legacy reproduces the silent NaN results of the original native code.
	Legacy = Kernel{Policy: PolicyLegacy}
)

// L2Distance computes the Euclidean distance between x and y.
func (k Kernel) L2Distance(x, y Vector) (float64, error) {
	return L2Distance(x, y)
}

// CosineSimilarity computes the cosine similarity between x and y.
func (k Kernel) CosineSimilarity(x, y Vector) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("cosine similarity: vectors have lengths %d and %d: %w",
			len(x), len(y), ErrInvalidArgument)
	}
	var dot, sumX, sumY float64
	for i := range x {
		xi, yi := float64(x[i]), float64(y[i])
		dot += xi * yi
		sumX += xi * xi
		sumY += yi * yi
	}
	if sumX == 0 || sumY == 0 {
		if k.Policy == PolicyLegacy {
			return math.NaN(), nil
		}
		return 0, fmt.Errorf("cosine similarity: zero-norm vector: %w", ErrDegenerateInput)
	}
	return dot / (math.Sqrt(sumX) * math.Sqrt(sumY)), nil
}

// AverageDistance returns the mean L2 distance between subject and the
// members of cluster.
func (k Kernel) AverageDistance(subject Vector, cluster Cluster) (float64, error) {
	if err := k.checkAverage(subject, cluster); err != nil {
		return 0, err
	}
	if len(cluster) == 0 {
		return math.NaN(), nil
	}
	var sum float64
	for _, member := range cluster {
		sum += euclidean(subject, member)
	}
	return sum / float64(len(cluster)), nil
}

// checkAverage validates the arguments of an averaging operation. A nil error
// with an empty cluster only happens under PolicyLegacy.
func (k Kernel) checkAverage(subject Vector, cluster Cluster) error {
	if len(cluster) == 0 {
		if k.Policy == PolicyLegacy {
			return nil
		}
		return fmt.Errorf("average distance: empty cluster: %w", ErrInvalidArgument)
	}
	return checkCluster(subject, cluster)
}
