package crossencoder

import (
	"context"
	"fmt"
	"sort"

	"github.com/soundprediction/vettore/pkg/embedder"
	"github.com/soundprediction/vettore/pkg/utils"
)

// EmbeddingRerankerClient implements cross-encoder functionality using
// embeddings. The query and all passages are embedded in a single request and
// passages are scored by cosine similarity to the query. While not a true
// cross-encoder (which processes query-document pairs together), it provides
// good reranking performance using bi-encoder embeddings the client already
// has access to.
type EmbeddingRerankerClient struct {
	embedder embedder.Client
	config   EmbeddingConfig
}

// EmbeddingConfig holds embedding-specific configuration
type EmbeddingConfig struct {
	Config
	// SimilarityThreshold is the minimum cosine similarity to consider
	// relevant; passages below it are dropped from the result.
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty"`
	// NormalizeScores rescales the returned scores to the 0-1 range.
	NormalizeScores bool `json:"normalize_scores,omitempty"`
}

// NewEmbeddingRerankerClient creates a new embedding-based reranker client
func NewEmbeddingRerankerClient(embedderClient embedder.Client, config EmbeddingConfig) *EmbeddingRerankerClient {
	if config.SimilarityThreshold == 0 {
		config.SimilarityThreshold = -1.0 // Accept all similarities
	}

	return &EmbeddingRerankerClient{
		embedder: embedderClient,
		config:   config,
	}
}

// Rank ranks the given passages by cosine similarity of their embeddings to
// the query embedding.
func (c *EmbeddingRerankerClient) Rank(ctx context.Context, query string, passages []string) ([]RankedPassage, error) {
	if len(passages) == 0 {
		return []RankedPassage{}, nil
	}

	if c.embedder == nil {
		return nil, fmt.Errorf("embedder client is nil")
	}

	// One request covers the query and every passage
	vectors, err := c.embedder.Embed(ctx, append([]string{query}, passages...))
	if err != nil {
		return nil, fmt.Errorf("failed to embed query and passages: %w", err)
	}
	if len(vectors) != len(passages)+1 {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(passages)+1)
	}

	queryEmbedding := vectors[0]
	if len(queryEmbedding) == 0 {
		return nil, fmt.Errorf("query embedding is empty")
	}

	results := make([]RankedPassage, 0, len(passages))
	for i, passage := range passages {
		similarity := utils.CosineSimilarity(queryEmbedding, vectors[i+1])
		if similarity < c.config.SimilarityThreshold {
			continue
		}
		results = append(results, RankedPassage{
			Passage: passage,
			Score:   similarity,
		})
	}

	if c.config.NormalizeScores {
		normalizeScores(results)
	}

	// Sort by score (descending)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// normalizeScores rescales scores to the 0-1 range in place. When all scores
// are equal they all become 1.0.
func normalizeScores(results []RankedPassage) {
	if len(results) == 0 {
		return
	}

	minScore := results[0].Score
	maxScore := results[0].Score
	for _, result := range results[1:] {
		if result.Score < minScore {
			minScore = result.Score
		}
		if result.Score > maxScore {
			maxScore = result.Score
		}
	}

	if maxScore > minScore {
		scoreRange := maxScore - minScore
		for i := range results {
			results[i].Score = (results[i].Score - minScore) / scoreRange
		}
	} else {
		for i := range results {
			results[i].Score = 1.0
		}
	}
}

// Close cleans up any resources used by the client
func (c *EmbeddingRerankerClient) Close() error {
	if c.embedder != nil {
		return c.embedder.Close()
	}
	return nil
}
