package core

import (
	"math"
	"runtime"
	"sync"
)

// AverageDistanceParallel computes the same mean as AverageDistance but
// spreads the cluster over workers goroutines. Partial sums are combined in
// chunk order, so for a fixed worker count the result is deterministic.
// workers <= 0 uses runtime.NumCPU().
func AverageDistanceParallel(subject Vector, cluster Cluster, workers int) (float64, error) {
	return Strict.AverageDistanceParallel(subject, cluster, workers)
}

// AverageDistanceParallel is the parallel form of Kernel.AverageDistance.
func (k Kernel) AverageDistanceParallel(subject Vector, cluster Cluster, workers int) (float64, error) {
	if err := k.checkAverage(subject, cluster); err != nil {
		return 0, err
	}
	if len(cluster) == 0 {
		return math.NaN(), nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(cluster) {
		workers = len(cluster)
	}
	if workers == 1 {
		return k.AverageDistance(subject, cluster)
	}

	chunk := (len(cluster) + workers - 1) / workers
	partial := make([]float64, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(cluster) {
			break
		}
		end := start + chunk
		if end > len(cluster) {
			end = len(cluster)
		}
		wg.Add(1)
		go func(w int, members Cluster) {
			defer wg.Done()
			var sum float64
			for _, member := range members {
				sum += euclidean(subject, member)
			}
			partial[w] = sum
		}(w, cluster[start:end])
	}
	wg.Wait()

	var sum float64
	for _, s := range partial {
		sum += s
	}
	return sum / float64(len(cluster)), nil
}
