package crossencoder

import (
	"context"
	"math"
	"sort"
)

// MockRerankerClient is a deterministic reranker for testing. Passages are
// ordered by term overlap with the query, then assigned synthetic positional
// scores: the best passage always scores 0.9 and each subsequent passage
// decays by ten percent, so tests can assert on exact values.
type MockRerankerClient struct {
	config Config
}

// NewMockRerankerClient creates a new mock reranker client
func NewMockRerankerClient(config Config) *MockRerankerClient {
	return &MockRerankerClient{config: config}
}

// Rank ranks the given passages deterministically
func (c *MockRerankerClient) Rank(ctx context.Context, query string, passages []string) ([]RankedPassage, error) {
	if len(passages) == 0 {
		return []RankedPassage{}, nil
	}

	queryTerms := termFrequencies(query)

	results := make([]RankedPassage, len(passages))
	for i, passage := range passages {
		results[i] = RankedPassage{
			Passage: passage,
			Score:   termCosine(queryTerms, termFrequencies(passage)),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	// Replace the raw similarities with the positional score ladder
	for i := range results {
		results[i].Score = 0.9 * math.Pow(0.9, float64(i))
	}

	return results, nil
}

// Close cleans up any resources used by the client
func (c *MockRerankerClient) Close() error {
	return nil
}
