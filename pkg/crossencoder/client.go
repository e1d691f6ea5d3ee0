package crossencoder

import "context"

// Client defines the interface for reranking passages against a query.
type Client interface {
	// Rank scores every passage against the query and returns the passages
	// sorted by descending relevance. Unless an implementation-specific
	// threshold filters some out, the result covers all passages.
	Rank(ctx context.Context, query string, passages []string) ([]RankedPassage, error)

	// Close cleans up any resources.
	Close() error
}

// Config holds configuration for cross-encoder clients.
type Config struct {
	// Model is the reranking model identifier, for providers that use one.
	Model string `json:"model"`
	// BatchSize is the maximum number of passages per request. Values <= 0
	// send all passages in a single request.
	BatchSize int `json:"batch_size"`
	// MaxConcurrency bounds the number of in-flight requests when a ranking
	// call is split into batches.
	MaxConcurrency int `json:"max_concurrency"`
}

// RankedPassage is a passage paired with its relevance score.
type RankedPassage struct {
	Passage string  `json:"passage"`
	Score   float64 `json:"score"`
}
