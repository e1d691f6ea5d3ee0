package crossencoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/soundprediction/vettore/pkg/utils"
)

// defaultJinaBaseURL is the hosted Jina AI reranking endpoint.
const defaultJinaBaseURL = "https://api.jina.ai/v1"

// RerankerConfig holds configuration for Jina-compatible reranking services.
type RerankerConfig struct {
	Config
	// BaseURL points at the service root, e.g. "http://localhost:8000/v1".
	BaseURL string `json:"base_url"`
	// APIKey is sent as a bearer token when set.
	APIKey string `json:"api_key,omitempty"`
}

// RerankerClient calls a Jina-compatible /rerank endpoint. vLLM, LocalAI and
// Jina AI all implement this API, so one client covers local and hosted
// cross-encoder deployments. Large passage sets are split into batches of at
// most Config.BatchSize and scored concurrently, bounded by
// Config.MaxConcurrency.
type RerankerClient struct {
	config     RerankerConfig
	httpClient *http.Client
}

// NewRerankerClient creates a reranker client for any Jina-compatible service.
func NewRerankerClient(config RerankerConfig) *RerankerClient {
	if config.BaseURL == "" {
		config.BaseURL = defaultJinaBaseURL
	}

	return &RerankerClient{
		config: config,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NewVLLMRerankerClient creates a reranker client for a vLLM server.
func NewVLLMRerankerClient(baseURL, model string) *RerankerClient {
	return NewRerankerClient(RerankerConfig{
		Config:  Config{Model: model},
		BaseURL: baseURL,
	})
}

// NewJinaRerankerClient creates a reranker client for the hosted Jina AI API.
func NewJinaRerankerClient(apiKey, model string) *RerankerClient {
	return NewRerankerClient(RerankerConfig{
		Config: Config{Model: model},
		APIKey: apiKey,
	})
}

// NewLocalAIRerankerClient creates a reranker client for a LocalAI server.
func NewLocalAIRerankerClient(baseURL, model, apiKey string) *RerankerClient {
	return NewRerankerClient(RerankerConfig{
		Config:  Config{Model: model},
		BaseURL: baseURL,
		APIKey:  apiKey,
	})
}

// rerankRequest represents the request structure for /rerank.
type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
}

// rerankResponse represents the response from /rerank.
type rerankResponse struct {
	Results []rerankResult `json:"results"`
}

type rerankResult struct {
	Index          int     `json:"index"`
	RelevanceScore float64 `json:"relevance_score"`
	Document       struct {
		Text string `json:"text"`
	} `json:"document"`
}

// Rank sends the query and passages to the reranking service and returns the
// passages sorted by relevance score, best first.
func (c *RerankerClient) Rank(ctx context.Context, query string, passages []string) ([]RankedPassage, error) {
	if len(passages) == 0 {
		return []RankedPassage{}, nil
	}

	batchSize := c.config.BatchSize
	if batchSize <= 0 {
		batchSize = len(passages)
	}
	batches := utils.Batch(passages, batchSize)

	maxConcurrency := c.config.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	semaphore := make(chan struct{}, maxConcurrency)

	results := make([]RankedPassage, len(passages))
	errs := make([]error, len(batches))
	var wg sync.WaitGroup

	offset := 0
	for i, batch := range batches {
		wg.Add(1)
		go func(batchIndex, offset int, batch []string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			scored, err := c.rankBatch(ctx, query, batch)
			if err != nil {
				errs[batchIndex] = err
				return
			}
			copy(results[offset:], scored)
		}(i, offset, batch)
		offset += len(batch)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("error reranking batch %d: %w", i, err)
		}
	}

	// Sort by score descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// rankBatch scores one batch of passages and returns them in batch order.
func (c *RerankerClient) rankBatch(ctx context.Context, query string, batch []string) ([]RankedPassage, error) {
	reqBody, err := json.Marshal(rerankRequest{
		Model:     c.config.Model,
		Query:     query,
		Documents: batch,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.config.BaseURL, "/") + "/rerank"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rerank request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var rerankResp rerankResponse
	if err := json.Unmarshal(body, &rerankResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(rerankResp.Results) != len(batch) {
		return nil, fmt.Errorf("rerank response count mismatch: got %d, want %d", len(rerankResp.Results), len(batch))
	}

	out := make([]RankedPassage, len(batch))
	for _, result := range rerankResp.Results {
		if result.Index < 0 || result.Index >= len(batch) {
			return nil, fmt.Errorf("rerank result index %d out of range", result.Index)
		}
		// Services may omit the document body; fall back to the input passage
		passage := result.Document.Text
		if passage == "" {
			passage = batch[result.Index]
		}
		out[result.Index] = RankedPassage{
			Passage: passage,
			Score:   result.RelevanceScore,
		}
	}

	return out, nil
}

// Close cleans up any resources used by the client
func (c *RerankerClient) Close() error {
	return nil
}
