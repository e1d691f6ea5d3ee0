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

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "text-embedding-004"

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// geminiModelDimensions maps known Gemini embedding models to their native
// output dimensionality.
var geminiModelDimensions = map[string]int{
	"text-embedding-004":   768,
	"gemini-embedding-001": 3072,
}

// GeminiEmbedder implements the Client interface for Google Gemini embedding
// models via the batchEmbedContents API.
type GeminiEmbedder struct {
	apiKey     string
	config     Config
	httpClient *http.Client
}

// NewGeminiEmbedder creates a new Gemini embedder.
// Construction fails with AuthenticationError when no API key is provided.
func NewGeminiEmbedder(apiKey string, config Config) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, NewAuthenticationError("no Gemini API key provided; set one explicitly or via configuration")
	}

	if config.BaseURL == "" {
		config.BaseURL = defaultGeminiBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultGeminiModel
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.Dimensions <= 0 {
		if dims, ok := geminiModelDimensions[config.Model]; ok {
			config.Dimensions = dims
		} else {
			config.Dimensions = geminiModelDimensions[DefaultGeminiModel]
		}
	}

	return &GeminiEmbedder{
		apiKey: apiKey,
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// geminiBatchEmbedRequest represents the request structure for the
// batchEmbedContents API.
type geminiBatchEmbedRequest struct {
	Requests []geminiEmbedContentRequest `json:"requests"`
}

// geminiEmbedContentRequest represents one text to embed.
type geminiEmbedContentRequest struct {
	Model                string             `json:"model"`
	Content              geminiEmbedContent `json:"content"`
	OutputDimensionality int                `json:"outputDimensionality,omitempty"`
}

// geminiEmbedContent wraps the text parts of a single input.
type geminiEmbedContent struct {
	Parts []geminiEmbedPart `json:"parts"`
}

// geminiEmbedPart represents a part of content.
type geminiEmbedPart struct {
	Text string `json:"text"`
}

// geminiBatchEmbedResponse represents the response from batchEmbedContents.
type geminiBatchEmbedResponse struct {
	Embeddings []geminiEmbedding `json:"embeddings"`
	Error      *geminiAPIError   `json:"error,omitempty"`
}

// geminiEmbedding represents a single embedding vector.
type geminiEmbedding struct {
	Values []float32 `json:"values"`
}

// geminiAPIError represents an error response.
type geminiAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Embed generates embeddings for the given texts, issuing one
// batchEmbedContents request per batch of at most Config.BatchSize texts.
func (g *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return embedInBatches(ctx, texts, g.config.BatchSize, g.embedBatch)
}

func (g *GeminiEmbedder) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	req := geminiBatchEmbedRequest{
		Requests: make([]geminiEmbedContentRequest, len(batch)),
	}
	for i, text := range batch {
		req.Requests[i] = geminiEmbedContentRequest{
			Model: "models/" + g.config.Model,
			Content: geminiEmbedContent{
				Parts: []geminiEmbedPart{{Text: text}},
			},
		}
		// Only send a dimensionality override when it deviates from the
		// model's native output size
		if native, ok := geminiModelDimensions[g.config.Model]; ok && g.config.Dimensions != native {
			req.Requests[i].OutputDimensionality = g.config.Dimensions
		}
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:batchEmbedContents?key=%s",
		g.config.BaseURL, g.config.Model, g.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range g.config.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewRateLimitError(fmt.Sprintf("gemini rate limit exceeded: %s", string(body)))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var embedResp geminiBatchEmbedResponse
	if err := json.Unmarshal(body, &embedResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if embedResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", embedResp.Error.Message)
	}

	vectors := make([][]float32, len(embedResp.Embeddings))
	for i, emb := range embedResp.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// EmbedSingle generates an embedding for a single text.
func (g *GeminiEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := g.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, ErrEmptyResponse
	}
	return embeddings[0], nil
}

// Dimensions returns the number of dimensions in the embeddings.
func (g *GeminiEmbedder) Dimensions() int {
	return g.config.Dimensions
}

// Close cleans up any resources.
func (g *GeminiEmbedder) Close() error {
	return nil
}
