package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultOllamaModel is the model used when none is configured.
const DefaultOllamaModel = "all-minilm"

const defaultOllamaBaseURL = "http://localhost:11434"

// ollamaModelDimensions maps known Ollama embedding models to their output
// dimensionality.
var ollamaModelDimensions = map[string]int{
	"all-minilm":        384,
	"nomic-embed-text":  768,
	"mxbai-embed-large": 1024,
}

// OllamaEmbedder implements the Client interface using a local Ollama
// server's native /api/embed endpoint. Ollama does not authenticate, so no
// API key is required.
type OllamaEmbedder struct {
	config     Config
	httpClient *http.Client
}

// NewOllamaEmbedder creates a new Ollama embedder.
func NewOllamaEmbedder(config Config) (*OllamaEmbedder, error) {
	if config.BaseURL == "" {
		config.BaseURL = defaultOllamaBaseURL
	}
	if err := validateBaseURL(config.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if config.Model == "" {
		config.Model = DefaultOllamaModel
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.Dimensions <= 0 {
		if dims, ok := ollamaModelDimensions[config.Model]; ok {
			config.Dimensions = dims
		} else {
			config.Dimensions = ollamaModelDimensions[DefaultOllamaModel]
		}
	}

	return &OllamaEmbedder{
		config: config,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// ollamaEmbedRequest represents the request structure for /api/embed.
type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// ollamaEmbedResponse represents the response from /api/embed.
type ollamaEmbedResponse struct {
	Model      string      `json:"model"`
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed generates embeddings for the given texts, one /api/embed request per
// batch of at most Config.BatchSize texts.
func (o *OllamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return embedInBatches(ctx, texts, o.config.BatchSize, o.embedBatch)
}

func (o *OllamaEmbedder) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	reqBody, err := json.Marshal(ollamaEmbedRequest{
		Model: o.config.Model,
		Input: batch,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := o.config.BaseURL + "/api/embed"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range o.config.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var embedResp ollamaEmbedResponse
	if err := json.Unmarshal(body, &embedResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return embedResp.Embeddings, nil
}

// EmbedSingle generates an embedding for a single text.
func (o *OllamaEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := o.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, ErrEmptyResponse
	}
	return embeddings[0], nil
}

// Dimensions returns the number of dimensions in the embeddings.
func (o *OllamaEmbedder) Dimensions() int {
	return o.config.Dimensions
}

// Close cleans up any resources.
func (o *OllamaEmbedder) Close() error {
	return nil
}

// IsAvailable reports whether the Ollama server is reachable.
func (o *OllamaEmbedder) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", o.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
