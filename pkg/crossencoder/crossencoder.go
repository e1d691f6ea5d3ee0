package crossencoder

import (
	"fmt"

	"github.com/soundprediction/vettore/pkg/embedder"
)

// Provider represents the type of cross-encoder provider
type Provider string

const (
	// ProviderLocal uses local text similarity algorithms
	ProviderLocal Provider = "local"

	// ProviderMock uses mock implementation for testing
	ProviderMock Provider = "mock"

	// ProviderReranker uses Jina-compatible reranking APIs (Jina, vLLM, LocalAI, etc.)
	ProviderReranker Provider = "reranker"

	// ProviderEmbedding uses embedding-based similarity for reranking
	ProviderEmbedding Provider = "embedding"

	// ProviderEmbedEverything uses go-embedeverything for local reranking
	ProviderEmbedEverything Provider = "embedeverything"
)

// ClientConfig holds configuration for creating cross-encoder clients
type ClientConfig struct {
	Provider              Provider               `json:"provider"`
	Config                Config                 `json:"config"`
	EmbedderClient        embedder.Client        `json:"-"`                                // Required for embedding provider
	RerankerConfig        *RerankerConfig        `json:"reranker_config,omitempty"`        // Jina-compatible reranker config
	EmbeddingConfig       *EmbeddingConfig       `json:"embedding_config,omitempty"`       // Embedding-specific config
	EmbedEverythingConfig *EmbedEverythingConfig `json:"embedeverything_config,omitempty"` // EmbedEverything-specific config
}

// NewClient creates a new cross-encoder client based on the provider type
func NewClient(clientConfig ClientConfig) (Client, error) {
	switch clientConfig.Provider {
	case ProviderLocal:
		return NewLocalRerankerClient(clientConfig.Config), nil

	case ProviderMock:
		return NewMockRerankerClient(clientConfig.Config), nil

	case ProviderReranker:
		rerankerConfig := RerankerConfig{Config: clientConfig.Config}
		if clientConfig.RerankerConfig != nil {
			rerankerConfig = *clientConfig.RerankerConfig
		}
		return NewRerankerClient(rerankerConfig), nil

	case ProviderEmbedding:
		if clientConfig.EmbedderClient == nil {
			return nil, fmt.Errorf("embedder client is required for embedding provider")
		}
		embeddingConfig := EmbeddingConfig{Config: clientConfig.Config}
		if clientConfig.EmbeddingConfig != nil {
			embeddingConfig = *clientConfig.EmbeddingConfig
		}
		return NewEmbeddingRerankerClient(clientConfig.EmbedderClient, embeddingConfig), nil

	case ProviderEmbedEverything:
		embedEverythingConfig := &EmbedEverythingConfig{Config: &clientConfig.Config}
		if clientConfig.EmbedEverythingConfig != nil {
			embedEverythingConfig = clientConfig.EmbedEverythingConfig
		}
		return NewEmbedEverythingClient(embedEverythingConfig)

	default:
		return nil, fmt.Errorf("unsupported cross-encoder provider: %s", clientConfig.Provider)
	}
}

// DefaultConfig returns a default configuration for the given provider
func DefaultConfig(provider Provider) Config {
	switch provider {
	case ProviderLocal:
		return Config{
			BatchSize: 100, // Local processing can handle larger batches
		}
	case ProviderMock:
		return Config{
			BatchSize: 100,
		}
	case ProviderReranker:
		return Config{
			Model:          "reranker", // Generic default, should be overridden
			BatchSize:      100,        // Jina-compatible APIs can handle large batches
			MaxConcurrency: 3,          // Conservative for external APIs
		}
	case ProviderEmbedding:
		return Config{
			BatchSize:      50, // Moderate batch size for embedding computation
			MaxConcurrency: 10, // Can be higher since embeddings are typically faster
		}
	case ProviderEmbedEverything:
		return Config{
			Model:          DefaultRerankerModel,
			BatchSize:      100, // Local processing can handle large batches
			MaxConcurrency: 1,   // Local processing is typically single-threaded
		}
	default:
		return Config{}
	}
}
