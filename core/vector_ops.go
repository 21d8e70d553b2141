package core

import (
	"math"
	"sync"
)

// NormalizeVector scales vec in place to unit L2 norm. A zero vector is left
// unchanged.
func NormalizeVector(vec Vector) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) * inv)
	}
}

// NormalizeBatch normalizes multiple vectors in place using goroutines.
func NormalizeBatch(vecs []Vector) {
	if len(vecs) == 0 {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(vecs))
	for i := range vecs {
		go func(i int) {
			defer wg.Done()
			NormalizeVector(vecs[i])
		}(i)
	}
	wg.Wait()
}
