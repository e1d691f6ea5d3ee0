package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/soundprediction/vettore/pkg/embedder"
)

// Stats reports cache lookups since the client was created.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// CachedClient wraps an embedding client with a content-addressed cache.
// Each text in a request is looked up individually; only the misses are
// sent to the underlying client, and the results are written back so the
// next request for the same text is served locally.
//
// Cache failures never fail an embedding request. A store that cannot be
// read degrades to a miss, a store that cannot be written is skipped.
type CachedClient struct {
	client embedder.Client
	store  Store
	model  string

	mu    sync.Mutex
	stats Stats
}

// NewCachedClient creates a caching wrapper around client. The model name
// is part of the cache key, so clients for different models can share a
// store.
func NewCachedClient(client embedder.Client, store Store, model string) *CachedClient {
	return &CachedClient{
		client: client,
		store:  store,
		model:  model,
	}
}

// Embed implements embedder.Client. The result is index-aligned with
// texts whether each vector came from the cache or from the underlying
// client.
func (c *CachedClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	dims := c.client.Dimensions()
	out := make([][]float32, len(texts))

	var missing []string
	var missingIdx []int
	for i, text := range texts {
		vector, ok, err := c.store.Get(Key(c.model, dims, text))
		if err != nil {
			fmt.Printf("Warning: Failed to read embedding cache: %v\n", err)
		}
		if ok {
			out[i] = vector
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	c.mu.Lock()
	c.stats.Hits += int64(len(texts) - len(missing))
	c.stats.Misses += int64(len(missing))
	c.mu.Unlock()

	if len(missing) == 0 {
		return out, nil
	}

	vectors, err := c.client.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missing) {
		return nil, fmt.Errorf("embedding response count mismatch: got %d, want %d", len(vectors), len(missing))
	}

	for j, idx := range missingIdx {
		out[idx] = vectors[j]
		if err := c.store.Set(Key(c.model, dims, missing[j]), vectors[j]); err != nil {
			fmt.Printf("Warning: Failed to cache embedding: %v\n", err)
		}
	}

	return out, nil
}

// EmbedSingle implements embedder.Client.
func (c *CachedClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, embedder.ErrEmptyResponse
	}
	return vectors[0], nil
}

// Dimensions implements embedder.Client.
func (c *CachedClient) Dimensions() int {
	return c.client.Dimensions()
}

// Close implements embedder.Client, closing the store as well.
func (c *CachedClient) Close() error {
	if err := c.store.Close(); err != nil {
		fmt.Printf("Warning: Failed to close embedding cache: %v\n", err)
	}
	return c.client.Close()
}

// Stats returns hit and miss counts accumulated so far.
func (c *CachedClient) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
