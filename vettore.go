package vettore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/soundprediction/vettore/pkg/alert"
	"github.com/soundprediction/vettore/pkg/cache"
	"github.com/soundprediction/vettore/pkg/config"
	"github.com/soundprediction/vettore/pkg/embedder"
	"github.com/soundprediction/vettore/pkg/logger"
	"github.com/soundprediction/vettore/pkg/telemetry"
	"github.com/soundprediction/vettore/pkg/types"
	"github.com/soundprediction/vettore/pkg/utils"
)

// Vettore is the main interface for generating and comparing text embeddings.
// It presents a uniform surface over cloud and local embedding providers,
// with batching, retries, caching and usage accounting handled underneath.
type Vettore interface {
	// Embed generates embeddings for the given texts. The result is
	// index-aligned with texts: result[i] is the embedding of texts[i],
	// regardless of how the call was batched internally.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedSingle generates an embedding for a single text.
	EmbedSingle(ctx context.Context, text string) ([]float32, error)

	// Similarity embeds both texts and returns their cosine similarity,
	// in [-1, 1].
	Similarity(ctx context.Context, a, b string) (float64, error)

	// MostSimilar embeds the query and all candidates, then returns the k
	// candidates closest to the query by cosine similarity, best first.
	// k <= 0 or k greater than len(candidates) returns all candidates.
	MostSimilar(ctx context.Context, query string, candidates []string, k int) ([]Match, error)

	// Dimensions returns the number of dimensions in the embeddings.
	Dimensions() int

	// Usage returns cumulative usage totals since the client was created.
	// Totals stay zero when usage tracking is disabled.
	Usage() types.EmbeddingUsageSummary

	// Close flushes buffered telemetry and releases provider resources.
	Close() error
}

// Match is a candidate text scored against a query by MostSimilar.
type Match struct {
	// Index is the candidate's position in the original slice.
	Index int `json:"index"`
	// Text is the candidate text.
	Text string `json:"text"`
	// Score is the cosine similarity to the query, in [-1, 1].
	Score float64 `json:"score"`
}

// Client is the main implementation of the Vettore interface.
type Client struct {
	embedder embedder.Client
	tracker  *embedder.ParquetUsageTracker
	cached   *cache.CachedClient
	errorLog *telemetry.ParquetHandler
	config   *Config
	logger   *slog.Logger
}

// Config holds configuration for the vettore client.
type Config struct {
	// Provider identifies the embedding provider backing the client.
	Provider string
	// Model is the embedding model identifier, used for usage attribution
	// and cache keys.
	Model string
}

// NewClient creates a new vettore client around an existing embedding client.
// Most callers should use NewClientFromConfig, which assembles the full
// decorator stack from configuration; NewClient is for embedding clients
// built by hand (tests, custom providers, pre-wrapped stacks).
func NewClient(embedderClient embedder.Client, config *Config, logger *slog.Logger) (*Client, error) {
	if embedderClient == nil {
		return nil, ErrNoEmbedder
	}
	if config == nil {
		config = &Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		embedder: embedderClient,
		config:   config,
		logger:   logger,
	}, nil
}

// NewClientFromConfig assembles a client from configuration: the provider
// client wrapped with retries, then circuit breaking, usage tracking and the
// embedding cache as configured. When telemetry is enabled the client's
// logger also persists error records to Parquet; retrieve it with GetLogger.
// A nil cfg loads configuration from defaults and environment variables.
func NewClientFromConfig(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	log := logger.NewLogger(os.Stderr, logger.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	providerID := embedder.ProviderID(cfg.Embedding.Provider)
	embCfg := embedder.DefaultConfig(providerID)
	if cfg.Embedding.Model != "" {
		embCfg.Model = cfg.Embedding.Model
	}
	if cfg.Embedding.BatchSize > 0 {
		embCfg.BatchSize = cfg.Embedding.BatchSize
	}
	if cfg.Embedding.Dimensions > 0 {
		embCfg.Dimensions = cfg.Embedding.Dimensions
	}
	if cfg.Embedding.BaseURL != "" {
		embCfg.BaseURL = cfg.Embedding.BaseURL
	}

	base, err := embedder.NewClient(embedder.ClientConfig{
		Provider: providerID,
		APIKey:   cfg.Embedding.APIKey,
		Config:   embCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	var client embedder.Client = embedder.NewRetryClient(base, &embedder.RetryConfig{
		MaxRetries:        cfg.Retry.MaxRetries,
		InitialDelay:      time.Duration(cfg.Retry.InitialDelay) * time.Millisecond,
		MaxDelay:          time.Duration(cfg.Retry.MaxDelay) * time.Millisecond,
		BackoffMultiplier: cfg.Retry.BackoffMultiplier,
	})

	if cfg.CircuitBreaker.Enabled {
		var alerter alert.Alerter
		if cfg.Alert.Enabled && cfg.Alert.SMTPHost != "" {
			alerter = alert.NewEmailAlerter(cfg.Alert)
		} else {
			alerter = alert.NewLogAlerter(log)
		}
		client = embedder.NewCircuitBreakerClient(client, cfg.CircuitBreaker, alerter, "embedder-"+cfg.Embedding.Provider)
	}

	c := &Client{
		config: &Config{
			Provider: cfg.Embedding.Provider,
			Model:    embCfg.Model,
		},
	}

	// Usage records and error logs share the telemetry directory.
	if cfg.Telemetry.Enabled {
		trackingPath := cfg.Telemetry.ParquetPath
		if trackingPath == "" {
			if home, err := os.UserHomeDir(); err == nil {
				trackingPath = filepath.Join(home, ".vettore", "telemetry")
			}
		}
		if trackingPath != "" {
			if err := os.MkdirAll(trackingPath, 0755); err != nil {
				fmt.Printf("Warning: Failed to create telemetry directory: %v\n", err)
				trackingPath = ""
			}
		}
		if trackingPath != "" {
			tracker, err := embedder.NewUsageTracker(trackingPath)
			if err != nil {
				fmt.Printf("Warning: Failed to initialize usage tracker: %v\n", err)
			} else {
				if cfg.Cost.PricingPath != "" {
					if err := tracker.UsePricingCatalog(cfg.Cost.PricingPath); err != nil {
						fmt.Printf("Warning: Failed to load pricing catalog: %v\n", err)
					}
				}
				client = embedder.NewUsageTrackingClient(client, tracker, c.config.Model)
				c.tracker = tracker
			}

			errorLog, err := telemetry.NewParquetHandler(log.Handler(), trackingPath)
			if err != nil {
				fmt.Printf("Warning: Failed to initialize error telemetry: %v\n", err)
			} else {
				log = slog.New(errorLog)
				c.errorLog = errorLog
				log.Info("Error tracking enabled", "path", trackingPath)
			}
		}
	}

	// The cache sits outermost so fully cached requests are served even
	// when the breaker is open, and usage records count only the texts
	// that actually reach the provider.
	if cfg.Cache.Enabled {
		store, err := cache.NewBadgerStore(cfg.Cache.Path, time.Duration(cfg.Cache.TTL)*time.Second)
		if err != nil {
			fmt.Printf("Warning: Failed to open embedding cache: %v\n", err)
		} else {
			cached := cache.NewCachedClient(client, store, c.config.Model)
			client = cached
			c.cached = cached
		}
	}

	c.embedder = client
	c.logger = log

	fmt.Printf("Vettore initialized successfully with provider: %s\n", cfg.Embedding.Provider)
	fmt.Printf("Embedding model: %s, batch size: %d\n", embCfg.Model, embCfg.BatchSize)

	return c, nil
}

// Embed implements Vettore
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return c.embedder.Embed(ctx, texts)
}

// EmbedSingle implements Vettore
func (c *Client) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return c.embedder.EmbedSingle(ctx, text)
}

// Similarity implements Vettore
func (c *Client) Similarity(ctx context.Context, a, b string) (float64, error) {
	vectors, err := c.embedder.Embed(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("embedding response count mismatch: got %d, want 2", len(vectors))
	}
	return utils.CosineSimilarity(vectors[0], vectors[1]), nil
}

// MostSimilar implements Vettore
func (c *Client) MostSimilar(ctx context.Context, query string, candidates []string, k int) ([]Match, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if k <= 0 || k > len(candidates) {
		k = len(candidates)
	}

	// One request covers the query and every candidate.
	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, query)
	texts = append(texts, candidates...)

	vectors, err := c.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding response count mismatch: got %d, want %d", len(vectors), len(texts))
	}

	queryVec := vectors[0]
	scored := make([]utils.ScoredItem[int], len(candidates))
	for i := range candidates {
		scored[i] = utils.ScoredItem[int]{
			Item:  i,
			Score: utils.CosineSimilarity(queryVec, vectors[i+1]),
		}
	}

	matches := make([]Match, 0, k)
	for _, item := range utils.TopKByScore(scored, k) {
		matches = append(matches, Match{
			Index: item.Item,
			Text:  candidates[item.Item],
			Score: item.Score,
		})
	}
	return matches, nil
}

// Dimensions implements Vettore
func (c *Client) Dimensions() int {
	return c.embedder.Dimensions()
}

// Usage implements Vettore
func (c *Client) Usage() types.EmbeddingUsageSummary {
	if c.tracker == nil {
		return types.EmbeddingUsageSummary{}
	}
	return c.tracker.Summary()
}

// CacheStats returns hit and miss counts for the embedding cache. Counts
// stay zero when caching is disabled.
func (c *Client) CacheStats() cache.Stats {
	if c.cached == nil {
		return cache.Stats{}
	}
	return c.cached.Stats()
}

// Close implements Vettore
func (c *Client) Close() error {
	err := c.embedder.Close()
	if c.errorLog != nil {
		if flushErr := c.errorLog.Flush(); flushErr != nil {
			fmt.Printf("Warning: Failed to flush error telemetry: %v\n", flushErr)
		}
	}
	return err
}

// GetEmbedder returns the underlying embedding client with its decorators.
func (c *Client) GetEmbedder() embedder.Client {
	return c.embedder
}

// GetLogger returns the client's logger. After NewClientFromConfig with
// telemetry enabled, this logger persists error records to Parquet; callers
// embedding vettore in a larger program should adopt it rather than create
// their own.
func (c *Client) GetLogger() *slog.Logger {
	return c.logger
}

var (
	// ErrNoEmbedder is returned when NewClient is called without an embedding client.
	ErrNoEmbedder = errors.New("embedding client is required")
	// ErrNoCandidates is returned when MostSimilar has no candidate texts to rank.
	ErrNoCandidates = errors.New("no candidate texts provided")
)
