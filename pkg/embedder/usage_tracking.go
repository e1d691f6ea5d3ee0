package embedder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/soundprediction/vettore/pkg/cost"
	"github.com/soundprediction/vettore/pkg/types"
)

// EmbeddingUsageRecord represents a single log entry for embedding usage
type EmbeddingUsageRecord struct {
	ID              string    `parquet:"id"`
	Timestamp       time.Time `parquet:"timestamp"`
	Model           string    `parquet:"model"`
	TextCount       int       `parquet:"text_count"`
	Characters      int       `parquet:"characters"`
	EstimatedTokens int       `parquet:"estimated_tokens"`
	EstimatedCost   float64   `parquet:"estimated_cost"`
	UserID          string    `parquet:"user_id"`
	SessionID       string    `parquet:"session_id"`
	RequestSource   string    `parquet:"request_source"`
}

// ParquetUsageTracker handles persistence of embedding usage stats to Parquet files
type ParquetUsageTracker struct {
	outputDir      string
	costCalculator *cost.CostCalculator
	mu             sync.Mutex
	buffer         []EmbeddingUsageRecord
	batchSize      int
	summary        types.EmbeddingUsageSummary
}

// NewUsageTracker creates a new usage tracker writing to a directory
func NewUsageTracker(outputDir string) (*ParquetUsageTracker, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create usage tracking directory: %w", err)
	}

	tracker := &ParquetUsageTracker{
		outputDir:      outputDir,
		costCalculator: cost.NewCostCalculator(),
		buffer:         make([]EmbeddingUsageRecord, 0, 100),
		batchSize:      100,
	}

	return tracker, nil
}

// AddUsage adds usage to the tracker
func (t *ParquetUsageTracker) AddUsage(ctx context.Context, usage *types.EmbeddingUsage, model string) error {
	if usage == nil {
		return nil
	}

	costUSD := t.costCalculator.CalculateEmbeddingCost(model, usage.EstimatedTokens)

	record := EmbeddingUsageRecord{
		ID:              uuid.New().String(),
		Timestamp:       time.Now().UTC(),
		Model:           model,
		TextCount:       usage.TextCount,
		Characters:      usage.Characters,
		EstimatedTokens: usage.EstimatedTokens,
		EstimatedCost:   costUSD,
	}

	// Extract context
	if v, ok := ctx.Value(types.ContextKeyUserID).(string); ok {
		record.UserID = v
	}
	if v, ok := ctx.Value(types.ContextKeySessionID).(string); ok {
		record.SessionID = v
	}
	if v, ok := ctx.Value(types.ContextKeyRequestSource).(string); ok {
		record.RequestSource = v
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.buffer = append(t.buffer, record)

	t.summary.Requests++
	t.summary.Texts += usage.TextCount
	t.summary.Characters += usage.Characters
	t.summary.EstimatedTokens += usage.EstimatedTokens
	t.summary.EstimatedCost += costUSD

	if len(t.buffer) >= t.batchSize {
		return t.flush()
	}

	return nil
}

// UsePricingCatalog replaces the built-in pricing catalog with one loaded
// from a YAML file, for deployments with negotiated pricing.
func (t *ParquetUsageTracker) UsePricingCatalog(path string) error {
	calculator, err := cost.NewCostCalculatorFromFile(path)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.costCalculator = calculator
	return nil
}

// Summary returns cumulative usage totals since the tracker was created.
func (t *ParquetUsageTracker) Summary() types.EmbeddingUsageSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary
}

// Flush writes any buffered records to disk.
func (t *ParquetUsageTracker) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flush()
}

// flush writes the current buffer to a new Parquet file
// Caller must hold the lock
func (t *ParquetUsageTracker) flush() error {
	if len(t.buffer) == 0 {
		return nil
	}

	filename := fmt.Sprintf("embedding_usage_%s_%d.parquet", time.Now().Format("20060102_150405"), time.Now().UnixNano())
	filepath := filepath.Join(t.outputDir, filename)

	err := parquet.WriteFile(filepath, t.buffer)
	if err != nil {
		fmt.Printf("Failed to write embedding usage parquet file: %v\n", err)
		return err
	}

	// Clear buffer
	t.buffer = t.buffer[:0]
	return nil
}

// UsageTrackingClient wraps a Client to track usage. The embeddings API
// reports no token counts, so usage is estimated from the input texts.
type UsageTrackingClient struct {
	client  Client
	tracker *ParquetUsageTracker
	model   string
}

// NewUsageTrackingClient creates a wrapper client recording usage under
// the given model name.
func NewUsageTrackingClient(client Client, tracker *ParquetUsageTracker, model string) *UsageTrackingClient {
	if model == "" {
		model = "unknown"
	}
	return &UsageTrackingClient{
		client:  client,
		tracker: tracker,
		model:   model,
	}
}

// Embed implements Client
func (c *UsageTrackingClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := c.client.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	if len(texts) > 0 {
		if err := c.tracker.AddUsage(ctx, estimateUsage(texts), c.model); err != nil {
			fmt.Printf("Warning: Failed to log embedding usage: %v\n", err)
		}
	}

	return vectors, nil
}

// EmbedSingle implements Client
func (c *UsageTrackingClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vector, err := c.client.EmbedSingle(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.tracker.AddUsage(ctx, estimateUsage([]string{text}), c.model); err != nil {
		fmt.Printf("Warning: Failed to log embedding usage: %v\n", err)
	}

	return vector, nil
}

// Dimensions implements Client
func (c *UsageTrackingClient) Dimensions() int {
	return c.client.Dimensions()
}

// Close implements Client, flushing any buffered usage records first.
func (c *UsageTrackingClient) Close() error {
	if err := c.tracker.Flush(); err != nil {
		fmt.Printf("Warning: Failed to flush embedding usage records: %v\n", err)
	}
	return c.client.Close()
}

// estimateUsage derives usage figures from the input texts. Roughly four
// characters per token for English text.
func estimateUsage(texts []string) *types.EmbeddingUsage {
	chars := 0
	for _, t := range texts {
		chars += len(t)
	}
	return &types.EmbeddingUsage{
		TextCount:       len(texts),
		Characters:      chars,
		EstimatedTokens: chars / 4,
	}
}
