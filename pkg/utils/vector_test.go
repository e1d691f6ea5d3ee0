package utils

import (
	"math"
	"reflect"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
	}{
		{
			name:     "identical direction",
			a:        []float32{2, 4, 6},
			b:        []float32{1, 2, 3},
			expected: 1.0,
		},
		{
			name:     "opposite direction",
			a:        []float32{0, 0, 5},
			b:        []float32{0, 0, -1},
			expected: -1.0,
		},
		{
			name:     "orthogonal",
			a:        []float32{1, 0},
			b:        []float32{0, 1},
			expected: 0.0,
		},
		{
			name:     "45 degrees",
			a:        []float32{1, 0},
			b:        []float32{1, 1},
			expected: math.Sqrt2 / 2,
		},
		{
			name:     "length mismatch scores zero",
			a:        []float32{1, 2, 3},
			b:        []float32{1, 2},
			expected: 0.0,
		},
		{
			name:     "zero magnitude scores zero",
			a:        []float32{0, 0, 0},
			b:        []float32{1, 2, 3},
			expected: 0.0,
		},
		{
			name:     "nil inputs score zero",
			a:        nil,
			b:        nil,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("CosineSimilarity(%v, %v) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestMagnitude(t *testing.T) {
	t.Parallel()

	if got := Magnitude([]float32{3, 4}); math.Abs(got-5) > 1e-9 {
		t.Errorf("Magnitude([3 4]) = %v, expected 5", got)
	}
	if got := Magnitude(nil); got != 0 {
		t.Errorf("Magnitude(nil) = %v, expected 0", got)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	normalized := Normalize([]float32{0, 3, 4})
	if normalized == nil {
		t.Fatal("expected a normalized vector, got nil")
	}
	if got := Magnitude(normalized); math.Abs(got-1) > 1e-6 {
		t.Errorf("normalized magnitude = %v, expected 1", got)
	}
	// Direction is preserved
	if got := CosineSimilarity([]float32{0, 3, 4}, normalized); math.Abs(got-1) > 1e-6 {
		t.Errorf("normalize changed direction: similarity %v", got)
	}

	if Normalize(nil) != nil {
		t.Error("expected nil for empty input")
	}
	if Normalize([]float32{0, 0}) != nil {
		t.Error("expected nil for zero-magnitude input")
	}
}

func TestTopKByScore(t *testing.T) {
	t.Parallel()

	items := []ScoredItem[string]{
		{Item: "d", Score: 0.41},
		{Item: "a", Score: 0.97},
		{Item: "e", Score: 0.12},
		{Item: "b", Score: 0.88},
		{Item: "c", Score: 0.55},
	}

	t.Run("k smaller than candidate set", func(t *testing.T) {
		top := TopKByScore(items, 3)

		expected := []ScoredItem[string]{
			{Item: "a", Score: 0.97},
			{Item: "b", Score: 0.88},
			{Item: "c", Score: 0.55},
		}
		if !reflect.DeepEqual(top, expected) {
			t.Errorf("TopKByScore = %v, expected %v", top, expected)
		}
	})

	t.Run("k covers all candidates", func(t *testing.T) {
		top := TopKByScore(items, 10)

		if len(top) != len(items) {
			t.Fatalf("expected %d items, got %d", len(items), len(top))
		}
		for i := 1; i < len(top); i++ {
			if top[i-1].Score < top[i].Score {
				t.Errorf("not sorted descending at %d: %v < %v", i, top[i-1].Score, top[i].Score)
			}
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		before := make([]ScoredItem[string], len(items))
		copy(before, items)

		TopKByScore(items, 2)

		if !reflect.DeepEqual(items, before) {
			t.Error("TopKByScore mutated its input")
		}
	})

	t.Run("non-positive k", func(t *testing.T) {
		if got := TopKByScore(items, 0); got != nil {
			t.Errorf("expected nil for k=0, got %v", got)
		}
		if got := TopKByScore(items, -1); got != nil {
			t.Errorf("expected nil for negative k, got %v", got)
		}
	})

	t.Run("empty candidates", func(t *testing.T) {
		if got := TopKByScore[string](nil, 3); got != nil {
			t.Errorf("expected nil for empty input, got %v", got)
		}
	})
}

func BenchmarkTopKByScore(b *testing.B) {
	items := make([]ScoredItem[int], 10000)
	for i := range items {
		items[i] = ScoredItem[int]{Item: i, Score: float64(i%997) / 997}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		TopKByScore(items, 10)
	}
}
