package crossencoder

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"
)

// LocalRerankerClient implements cross-encoder functionality using local text
// similarity. Passages are scored by the cosine similarity of their term
// frequency vectors against the query, so no model or network access is
// required. Accuracy is limited to surface-level term overlap.
type LocalRerankerClient struct {
	config Config
}

// NewLocalRerankerClient creates a new local similarity reranker client
func NewLocalRerankerClient(config Config) *LocalRerankerClient {
	return &LocalRerankerClient{config: config}
}

// Rank ranks the given passages by term-frequency cosine similarity to the query
func (c *LocalRerankerClient) Rank(ctx context.Context, query string, passages []string) ([]RankedPassage, error) {
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

	// Stable sort keeps the input order for tied scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// Close cleans up any resources used by the client
func (c *LocalRerankerClient) Close() error {
	return nil
}

// termFrequencies tokenizes text on non-alphanumeric runes, lowercased, and
// counts term occurrences.
func termFrequencies(text string) map[string]float64 {
	terms := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	freqs := make(map[string]float64, len(terms))
	for _, term := range terms {
		freqs[term]++
	}
	return freqs
}

// termCosine calculates the cosine similarity between two term frequency vectors
func termCosine(a, b map[string]float64) float64 {
	var dotProduct, normA, normB float64

	for term, fa := range a {
		if fb, ok := b[term]; ok {
			dotProduct += fa * fb
		}
		normA += fa * fa
	}
	for _, fb := range b {
		normB += fb * fb
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
