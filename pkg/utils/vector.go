package utils

import (
	"container/heap"
	"math"
	"sort"
)

// CosineSimilarity scores the angular similarity of two embedding vectors.
// The result is in [-1, 1]: 1 for identical direction, 0 for orthogonal,
// -1 for opposite. Mismatched lengths, empty vectors, and zero-magnitude
// vectors all score 0 rather than erroring, so a single malformed vector
// cannot abort a ranking pass.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Magnitude returns the L2 norm of an embedding vector.
func Magnitude(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Normalize scales an embedding vector to unit length, so a plain dot
// product can stand in for cosine similarity in downstream stores.
// Returns nil for empty or zero-magnitude input.
func Normalize(v []float32) []float32 {
	if len(v) == 0 {
		return nil
	}

	mag := Magnitude(v)
	if mag == 0 {
		return nil
	}

	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / mag)
	}
	return out
}

// ScoredItem pairs a candidate with its similarity score for top-K selection.
type ScoredItem[T any] struct {
	Item  T
	Score float64
}

// scoreHeap is a min-heap over ScoredItem: the lowest score sits at the
// root, so deciding whether a new candidate displaces the current worst
// member is a single comparison.
type scoreHeap[T any] []ScoredItem[T]

func (h scoreHeap[T]) Len() int           { return len(h) }
func (h scoreHeap[T]) Less(i, j int) bool { return h[i].Score < h[j].Score }
func (h scoreHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *scoreHeap[T]) Push(x any) {
	*h = append(*h, x.(ScoredItem[T]))
}

func (h *scoreHeap[T]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TopKByScore returns the k highest-scoring items in descending score
// order. Runs in O(n log k), which beats a full sort when k is much
// smaller than the candidate set (the usual shape of a similarity query).
func TopKByScore[T any](items []ScoredItem[T], k int) []ScoredItem[T] {
	if k <= 0 || len(items) == 0 {
		return nil
	}

	// Small candidate sets skip the heap entirely
	if k >= len(items) {
		out := make([]ScoredItem[T], len(items))
		copy(out, items)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
		return out
	}

	h := make(scoreHeap[T], 0, k)
	heap.Init(&h)
	for _, item := range items {
		switch {
		case h.Len() < k:
			heap.Push(&h, item)
		case item.Score > h[0].Score:
			heap.Pop(&h)
			heap.Push(&h, item)
		}
	}

	// Drain ascending, fill the result back to front for descending order
	out := make([]ScoredItem[T], h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(ScoredItem[T])
	}
	return out
}
