package embedder

import (
	"context"
	"fmt"

	"github.com/soundprediction/vettore/pkg/utils"
)

// DefaultBatchSize is the maximum number of texts sent in a single embedding
// request. It reflects the provider-imposed per-request ceiling and is used
// whenever Config.BatchSize is unset.
const DefaultBatchSize = 48

// Client defines the interface for generating text embeddings.
type Client interface {
	// Embed generates embeddings for the given texts.
	// The result is index-aligned with texts: result[i] is the embedding of
	// texts[i], regardless of how the call was batched internally.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedSingle generates an embedding for a single text.
	EmbedSingle(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the number of dimensions in the embeddings.
	Dimensions() int

	// Close cleans up any resources.
	Close() error
}

// Config holds configuration for embedding clients.
type Config struct {
	// Model is the embedding model identifier. Empty selects the provider's
	// default model.
	Model string `json:"model"`
	// BatchSize is the maximum number of texts per request. Values <= 0
	// fall back to DefaultBatchSize.
	BatchSize int `json:"batch_size"`
	// Dimensions overrides the embedding dimensionality where the provider
	// supports it, and is otherwise informational.
	Dimensions int `json:"dimensions"`
	// BaseURL points the client at an alternative endpoint, e.g. an
	// OpenAI-compatible server.
	BaseURL string `json:"base_url,omitempty"`
	// Headers are added to every request for providers that use raw HTTP.
	Headers map[string]string `json:"headers,omitempty"`
}

// embedFunc issues one provider request for a single batch of texts and
// returns one vector per text, index-aligned with the batch.
type embedFunc func(ctx context.Context, batch []string) ([][]float32, error)

// embedInBatches partitions texts into consecutive batches of at most
// batchSize entries, issues one call per batch, and reassembles the vectors
// in the original input order. Each call receives only that batch's texts.
// Batches are processed sequentially; the first failure aborts the whole
// operation and no partial result is returned.
func embedInBatches(ctx context.Context, texts []string, batchSize int, fn embedFunc) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	out := make([][]float32, 0, len(texts))
	for _, batch := range utils.Batch(texts, batchSize) {
		vectors, err := fn(ctx, batch)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedding response count mismatch: got %d, want %d", len(vectors), len(batch))
		}
		out = append(out, vectors...)
	}

	return out, nil
}
