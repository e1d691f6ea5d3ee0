package embedder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the model used when none is configured.
const DefaultOpenAIModel = "text-embedding-3-small"

// openaiModelDimensions maps known OpenAI embedding models to their native
// output dimensionality.
var openaiModelDimensions = map[string]int{
	"text-embedding-ada-002": 1536,
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
}

// OpenAIEmbedder implements the Client interface using the OpenAI embeddings
// API. Supports OpenAI-compatible services through custom BaseURL
// configuration.
type OpenAIEmbedder struct {
	apiKey string
	config Config

	// The SDK client is built lazily on the first embedding call and reused
	// for the lifetime of the embedder.
	initOnce sync.Once
	client   *openai.Client
}

// NewOpenAIEmbedder creates a new OpenAI embedder.
// An API key is required unless a custom BaseURL points at a service that
// does not authenticate; construction fails with AuthenticationError when
// neither is available.
func NewOpenAIEmbedder(apiKey string, config Config) (*OpenAIEmbedder, error) {
	if config.BaseURL != "" {
		if err := validateBaseURL(config.BaseURL); err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
		// Some OpenAI-compatible services don't require authentication
		if apiKey == "" {
			apiKey = "dummy-key"
		}
	} else if apiKey == "" {
		return nil, NewAuthenticationError("no OpenAI API key provided; set one explicitly or via configuration")
	}

	if config.Model == "" {
		config.Model = DefaultOpenAIModel
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.Dimensions <= 0 {
		if dims, ok := openaiModelDimensions[config.Model]; ok {
			config.Dimensions = dims
		} else {
			config.Dimensions = openaiModelDimensions[DefaultOpenAIModel]
		}
	}

	return &OpenAIEmbedder{
		apiKey: apiKey,
		config: config,
	}, nil
}

// initClient builds the underlying SDK client. Called exactly once, on the
// first embedding request.
func (e *OpenAIEmbedder) initClient() {
	if e.config.BaseURL != "" {
		clientConfig := openai.DefaultConfig(e.apiKey)
		clientConfig.BaseURL = e.config.BaseURL

		// Many services expect "/v1" to be appended to the base URL
		if !hasAPIPath(e.config.BaseURL) {
			clientConfig.BaseURL = e.config.BaseURL + "/v1"
		}

		e.client = openai.NewClientWithConfig(clientConfig)
		return
	}
	e.client = openai.NewClient(e.apiKey)
}

// Embed generates embeddings for the given texts. Inputs longer than the
// configured batch size are split into consecutive per-batch requests, each
// carrying only its own texts, and the vectors are returned in input order.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	e.initOnce.Do(e.initClient)

	return embedInBatches(ctx, texts, e.config.BatchSize, func(ctx context.Context, batch []string) ([][]float32, error) {
		req := openai.EmbeddingRequest{
			Input: batch,
			Model: openai.EmbeddingModel(e.config.Model),
		}
		// Only the text-embedding-3 family accepts a dimensions override
		if e.config.Dimensions > 0 && strings.HasPrefix(e.config.Model, "text-embedding-3") {
			req.Dimensions = e.config.Dimensions
		}

		resp, err := e.client.CreateEmbeddings(ctx, req)
		if err != nil {
			if e.config.BaseURL != "" {
				return nil, fmt.Errorf("openai-compatible embeddings failed: %w", wrapOpenAIError(err))
			}
			return nil, fmt.Errorf("openai embeddings failed: %w", wrapOpenAIError(err))
		}

		vectors := make([][]float32, len(batch))
		for i, d := range resp.Data {
			idx := d.Index
			if idx < 0 || idx >= len(vectors) {
				idx = i
			}
			vectors[idx] = d.Embedding
		}
		for i, v := range vectors {
			if v == nil {
				return nil, fmt.Errorf("no embedding returned for input %d", i)
			}
		}
		return vectors, nil
	})
}

// EmbedSingle generates an embedding for a single text.
func (e *OpenAIEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, ErrEmptyResponse
	}
	return embeddings[0], nil
}

// Dimensions returns the number of dimensions in the embeddings.
func (e *OpenAIEmbedder) Dimensions() int {
	return e.config.Dimensions
}

// Close cleans up resources (no-op for OpenAI client).
func (e *OpenAIEmbedder) Close() error {
	return nil
}

// wrapOpenAIError converts SDK rate-limit responses into RateLimitError so
// the retry layer can classify them.
func wrapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return NewRateLimitError(apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return NewRateLimitError(reqErr.Error())
	}
	return err
}

// validateBaseURL validates the base URL format.
func validateBaseURL(baseURL string) error {
	if baseURL == "" {
		return fmt.Errorf("baseURL cannot be empty")
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid baseURL format: %w", err)
	}

	if parsedURL.Scheme == "" {
		return fmt.Errorf("baseURL must include scheme (http:// or https://)")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("baseURL must use http:// or https:// scheme")
	}

	return nil
}

// hasAPIPath checks if the base URL already includes an API path component.
func hasAPIPath(baseURL string) bool {
	commonPaths := []string{"/v1", "/api", "/v1/", "/api/"}
	for _, path := range commonPaths {
		if strings.HasSuffix(baseURL, path) {
			return true
		}
	}
	return false
}
