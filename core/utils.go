package core

import (
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// SeedEnv is the environment variable holding a fixed random seed.
const SeedEnv = "FACESIM_SEED"

// GetSeed receives a seed value for random number generation from the FACESIM_SEED environment variable.
func GetSeed() int64 {
	seedStr := os.Getenv(SeedEnv)
	if seedStr != "" {
		if seed, err := strconv.ParseInt(seedStr, 10, 64); err == nil {
			log.Info().Msgf("Using seed from FACESIM_SEED value: %d", seed)
			return seed
		}
		log.Warn().Msgf("Failed to parse FACESIM_SEED value: %s", seedStr)
	}

	seed := time.Now().UnixNano()
	log.Info().Msgf("Using current time as seed: %d", seed)
	return seed
}

// RandomCluster returns n unit-length vectors of the given dimension with
// normally distributed components, the shape of typical face embeddings.
func RandomCluster(rng *rand.Rand, n, dim int) Cluster {
	cluster := make(Cluster, n)
	for i := range cluster {
		vec := make(Vector, dim)
		for j := range vec {
			vec[j] = float32(rng.NormFloat64())
		}
		cluster[i] = vec
	}
	NormalizeBatch(cluster)
	return cluster
}
