package core

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// almostEqual compares two floating-point values with a tolerance.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestDistanceFunctions(t *testing.T) {
	tests := []struct {
		name           string
		a, b           []float32
		expectedL2     float64
		expectedCosine float64
		skipCosine     bool
	}{
		{
			name:           "Identical Vectors",
			a:              []float32{1, 2, 3, 4, 5, 6},
			b:              []float32{1, 2, 3, 4, 5, 6},
			expectedL2:     0,
			expectedCosine: 1,
		},
		{
			name: "Opposite Order",
			a:    []float32{1, 2, 3, 4, 5, 6},
			b:    []float32{6, 5, 4, 3, 2, 1},
			// L2: sqrt(70); cosine: 56/91.
			expectedL2:     math.Sqrt(70),
			expectedCosine: 56.0 / 91.0,
		},
		{
			name:           "Binary Opposites",
			a:              []float32{1, 0, 0, 1, 0, 1},
			b:              []float32{0, 1, 1, 0, 1, 0},
			expectedL2:     math.Sqrt(6),
			expectedCosine: 0,
		},
		{
			name:       "Pythagorean Triple",
			a:          []float32{0, 0, 0},
			b:          []float32{3, 4, 0},
			expectedL2: 5,
			skipCosine: true,
		},
		{
			name:           "Antiparallel",
			a:              []float32{1, 2},
			b:              []float32{-2, -4},
			expectedL2:     math.Sqrt(45),
			expectedCosine: -1,
		},
	}

	for _, tt := range tests {
		tt := tt // capture range variable
		t.Run(tt.name, func(t *testing.T) {
			l2, err := L2Distance(tt.a, tt.b)
			if err != nil {
				t.Fatalf("L2Distance(%v, %v) returned error: %v", tt.a, tt.b, err)
			}
			if !almostEqual(l2, tt.expectedL2, 1e-6) {
				t.Errorf("L2Distance(%v, %v) = %v; want %v", tt.a, tt.b, l2, tt.expectedL2)
			}
			if tt.skipCosine {
				return
			}
			cosine, err := CosineSimilarity(tt.a, tt.b)
			if err != nil {
				t.Fatalf("CosineSimilarity(%v, %v) returned error: %v", tt.a, tt.b, err)
			}
			if !almostEqual(cosine, tt.expectedCosine, 1e-6) {
				t.Errorf("CosineSimilarity(%v, %v) = %v; want %v", tt.a, tt.b, cosine, tt.expectedCosine)
			}
		})
	}
}

func TestScenarios(t *testing.T) {
	if d, err := L2Distance([]float32{0, 0, 0}, []float32{3, 4, 0}); err != nil || d != 5 {
		t.Errorf("L2Distance = %v, %v; want 5, nil", d, err)
	}
	if s, err := CosineSimilarity([]float32{1, 0}, []float32{0, 1}); err != nil || s != 0 {
		t.Errorf("CosineSimilarity orthogonal = %v, %v; want 0, nil", s, err)
	}
	if s, err := CosineSimilarity([]float32{1, 1}, []float32{1, 1}); err != nil || !almostEqual(s, 1, 1e-9) {
		t.Errorf("CosineSimilarity identical = %v, %v; want 1, nil", s, err)
	}
	avg, err := AverageDistance([]float32{0, 0}, Cluster{{0, 0}, {3, 4}})
	if err != nil || avg != 2.5 {
		t.Errorf("AverageDistance = %v, %v; want 2.5, nil", avg, err)
	}
	if _, err := L2Distance([]float32{1, 2}, []float32{1, 2, 3}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("L2Distance length mismatch error = %v; want ErrInvalidArgument", err)
	}
	if _, err := CosineSimilarity([]float32{0, 0}, []float32{1, 1}); !errors.Is(err, ErrDegenerateInput) {
		t.Errorf("CosineSimilarity zero vector error = %v; want ErrDegenerateInput", err)
	}
}

func TestL2DistanceEmpty(t *testing.T) {
	d, err := L2Distance(nil, []float32{})
	if err != nil || d != 0 {
		t.Errorf("L2Distance(empty, empty) = %v, %v; want 0, nil", d, err)
	}
}

func TestCosineSimilarityErrors(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want error
	}{
		{"length mismatch", []float32{1, 2}, []float32{1}, ErrInvalidArgument},
		{"zero first", []float32{0, 0}, []float32{1, 1}, ErrDegenerateInput},
		{"zero second", []float32{1, 1}, []float32{0, 0}, ErrDegenerateInput},
		{"empty", []float32{}, []float32{}, ErrDegenerateInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := CosineSimilarity(tt.a, tt.b)
			if !errors.Is(err, tt.want) {
				t.Fatalf("CosineSimilarity(%v, %v) error = %v; want %v", tt.a, tt.b, err, tt.want)
			}
			if s != 0 {
				t.Errorf("CosineSimilarity returned %v alongside an error; want 0", s)
			}
		})
	}
}

func TestAverageDistanceErrors(t *testing.T) {
	subject := []float32{1, 2, 3}

	if _, err := AverageDistance(subject, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty cluster error = %v; want ErrInvalidArgument", err)
	}
	cluster := Cluster{{1, 2, 3}, {1, 2}}
	if _, err := AverageDistance(subject, cluster); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("member length mismatch error = %v; want ErrInvalidArgument", err)
	}
}

func TestAverageDistanceDoesNotMutate(t *testing.T) {
	subject := []float32{1, 2, 3}
	cluster := Cluster{{4, 5, 6}, {7, 8, 9}}
	if _, err := AverageDistance(subject, cluster); err != nil {
		t.Fatalf("AverageDistance failed: %v", err)
	}
	if subject[0] != 1 || cluster[0][0] != 4 || cluster[1][2] != 9 {
		t.Errorf("inputs were modified: subject=%v cluster=%v", subject, cluster)
	}
}

func TestProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randVec := func(dim int) []float32 {
		v := make([]float32, dim)
		for i := range v {
			v[i] = float32(rng.NormFloat64())
		}
		return v
	}

	for round := 0; round < 100; round++ {
		x, y, z := randVec(16), randVec(16), randVec(16)

		if d, _ := L2Distance(x, x); d != 0 {
			t.Fatalf("L2Distance(x, x) = %v; want 0", d)
		}
		xy, _ := L2Distance(x, y)
		yx, _ := L2Distance(y, x)
		if xy != yx {
			t.Fatalf("L2Distance not symmetric: %v vs %v", xy, yx)
		}
		xz, _ := L2Distance(x, z)
		yz, _ := L2Distance(y, z)
		if xz > xy+yz+1e-9 {
			t.Fatalf("triangle inequality violated: %v > %v + %v", xz, xy, yz)
		}

		cxx, err := CosineSimilarity(x, x)
		if err != nil || !almostEqual(cxx, 1, 1e-9) {
			t.Fatalf("CosineSimilarity(x, x) = %v, %v; want 1", cxx, err)
		}
		cxy, _ := CosineSimilarity(x, y)
		cyx, _ := CosineSimilarity(y, x)
		if cxy != cyx {
			t.Fatalf("CosineSimilarity not symmetric: %v vs %v", cxy, cyx)
		}
		if cxy < -1-1e-9 || cxy > 1+1e-9 {
			t.Fatalf("CosineSimilarity out of range: %v", cxy)
		}

		if avg, err := AverageDistance(x, Cluster{x}); err != nil || avg != 0 {
			t.Fatalf("AverageDistance(x, [x]) = %v, %v; want 0", avg, err)
		}
		avg, err := AverageDistance(x, Cluster{y, z})
		if err != nil || !almostEqual(avg, (xy+xz)/2, 1e-9) {
			t.Fatalf("AverageDistance(x, [y, z]) = %v, %v; want %v", avg, err, (xy+xz)/2)
		}
	}
}
