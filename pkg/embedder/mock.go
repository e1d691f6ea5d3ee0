package embedder

import (
	"context"
	"hash/fnv"
	"math/rand"
	"sync"
)

// MockEmbedder is a deterministic in-memory Client for testing. Scripted
// responses, when queued, are consumed one per provider call; otherwise
// vectors are derived from a hash of the text, so equal inputs always
// produce equal embeddings.
type MockEmbedder struct {
	config Config

	mu        sync.Mutex
	responses [][][]float32
	batches   [][]string
	callCount int
	err       error
}

// NewMockEmbedder creates a new mock embedding client.
func NewMockEmbedder(config Config) *MockEmbedder {
	if config.Model == "" {
		config.Model = "mock"
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.Dimensions <= 0 {
		config.Dimensions = 4
	}
	return &MockEmbedder{config: config}
}

// EnqueueResponse queues the vectors returned by the next provider call.
func (m *MockEmbedder) EnqueueResponse(vectors [][]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, vectors)
}

// SetError makes every subsequent provider call fail with err.
func (m *MockEmbedder) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Batches returns the per-call input batches recorded so far.
func (m *MockEmbedder) Batches() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.batches))
	copy(out, m.batches)
	return out
}

// CallCount returns the number of provider calls made so far.
func (m *MockEmbedder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Embed implements the Client interface.
func (m *MockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return embedInBatches(ctx, texts, m.config.BatchSize, m.embedBatch)
}

// EmbedSingle implements the Client interface.
func (m *MockEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, ErrEmptyResponse
	}
	return vectors[0], nil
}

// Dimensions implements the Client interface.
func (m *MockEmbedder) Dimensions() int {
	return m.config.Dimensions
}

// Close implements the Client interface.
func (m *MockEmbedder) Close() error {
	return nil
}

func (m *MockEmbedder) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++
	recorded := make([]string, len(batch))
	copy(recorded, batch)
	m.batches = append(m.batches, recorded)

	if m.err != nil {
		return nil, m.err
	}

	if len(m.responses) > 0 {
		next := m.responses[0]
		m.responses = m.responses[1:]
		return next, nil
	}

	vectors := make([][]float32, len(batch))
	for i, text := range batch {
		vectors[i] = deterministicVector(text, m.config.Dimensions)
	}
	return vectors, nil
}

// deterministicVector generates a stable pseudo-random vector seeded by
// the text content.
func deterministicVector(text string, dims int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	r := rand.New(rand.NewSource(int64(h.Sum32())))

	vec := make([]float32, dims)
	for i := range vec {
		vec[i] = r.Float32()*2 - 1
	}
	return vec
}
