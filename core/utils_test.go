package core

import (
	"math"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

func TestGetSeedFromEnv(t *testing.T) {
	expectedSeed := int64(12345)
	os.Setenv(SeedEnv, strconv.FormatInt(expectedSeed, 10))
	defer os.Unsetenv(SeedEnv)

	seed := GetSeed()
	if seed != expectedSeed {
		t.Errorf("GetSeed() = %d; want %d", seed, expectedSeed)
	}
}

func TestGetSeedFromEnvInvalid(t *testing.T) {
	os.Setenv(SeedEnv, "invalid")
	defer os.Unsetenv(SeedEnv)

	seed := GetSeed()
	if seed == 0 {
		t.Errorf("GetSeed() = %d; want non-zero value", seed)
	}
}

func TestGetSeedFromTime(t *testing.T) {
	os.Unsetenv(SeedEnv)

	seed1 := GetSeed()
	time.Sleep(1 * time.Millisecond)
	seed2 := GetSeed()

	if seed1 == seed2 {
		t.Errorf("GetSeed() = %d; subsequent call returned the same seed %d", seed1, seed2)
	}
}

func TestRandomCluster(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cluster := RandomCluster(rng, 10, 32)
	if len(cluster) != 10 {
		t.Fatalf("RandomCluster returned %d vectors; want 10", len(cluster))
	}
	for i, vec := range cluster {
		if len(vec) != 32 {
			t.Fatalf("vector %d has length %d; want 32", i, len(vec))
		}
		var sum float64
		for _, v := range vec {
			sum += float64(v) * float64(v)
		}
		if math.Abs(math.Sqrt(sum)-1) > 1e-5 {
			t.Errorf("vector %d has norm %v; want 1", i, math.Sqrt(sum))
		}
	}
}
