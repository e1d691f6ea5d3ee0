package checkpoint

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"
)

// NewCheckpoint creates a new checkpoint for a job that has not processed
// any batches yet
func NewCheckpoint(jobID, inputPath, outputDir, model string, batchSize, totalTexts, totalBatches int) *JobCheckpoint {
	now := time.Now()
	return &JobCheckpoint{
		JobID:         jobID,
		InputPath:     inputPath,
		OutputDir:     outputDir,
		Model:         model,
		BatchSize:     batchSize,
		TotalTexts:    totalTexts,
		TotalBatches:  totalBatches,
		NextBatch:     0,
		CreatedAt:     now,
		LastUpdatedAt: now,
		AttemptCount:  0,
	}
}

// IsComplete reports whether every batch of the job has been processed
func (c *JobCheckpoint) IsComplete() bool {
	return c.TotalBatches > 0 && c.NextBatch >= c.TotalBatches
}

// CanRetry determines if a checkpoint should be retried based on attempt count and age
func (c *JobCheckpoint) CanRetry(maxAttempts int, maxAge time.Duration) bool {
	if c.AttemptCount >= maxAttempts {
		return false
	}

	age := time.Since(c.CreatedAt)
	if age > maxAge {
		return false
	}

	return true
}

// GetProgress returns a human-readable progress description
func (c *JobCheckpoint) GetProgress() string {
	if c.TotalBatches <= 0 {
		return "0% (batch 0/0)"
	}

	percentage := (float64(c.NextBatch) / float64(c.TotalBatches)) * 100
	return fmt.Sprintf("%.0f%% (batch %d/%d)", percentage, c.NextBatch, c.TotalBatches)
}

// SaveWithError is a helper that records an error and saves in one operation
func (m *CheckpointManager) SaveWithError(ctx context.Context, checkpoint *JobCheckpoint, err error) error {
	checkpoint.AttemptCount++
	checkpoint.LastError = err.Error()
	checkpoint.LastErrorStack = string(debug.Stack())
	return m.Save(ctx, checkpoint)
}

// LoadOrCreate loads an existing checkpoint or creates a new one.
// The boolean result reports whether an existing checkpoint was found.
func (m *CheckpointManager) LoadOrCreate(ctx context.Context, jobID, inputPath, outputDir, model string, batchSize, totalTexts, totalBatches int) (*JobCheckpoint, bool, error) {
	existing, err := m.Load(ctx, jobID)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		return existing, true, nil
	}

	// Create new checkpoint
	checkpoint := NewCheckpoint(jobID, inputPath, outputDir, model, batchSize, totalTexts, totalBatches)
	if err := m.Save(ctx, checkpoint); err != nil {
		return nil, false, err
	}

	return checkpoint, false, nil
}

// Summary provides a human-readable summary of the checkpoint
func (c *JobCheckpoint) Summary() string {
	summary := fmt.Sprintf("Job: %s\n", c.JobID)
	summary += fmt.Sprintf("Input: %s\n", c.InputPath)
	summary += fmt.Sprintf("Model: %s\n", c.Model)
	summary += fmt.Sprintf("Progress: %s\n", c.GetProgress())
	summary += fmt.Sprintf("Texts: %d\n", c.TotalTexts)
	summary += fmt.Sprintf("Created: %s\n", c.CreatedAt.Format(time.RFC3339))
	summary += fmt.Sprintf("Last Updated: %s\n", c.LastUpdatedAt.Format(time.RFC3339))
	summary += fmt.Sprintf("Attempts: %d\n", c.AttemptCount)

	if c.LastError != "" {
		summary += fmt.Sprintf("Last Error: %s\n", c.LastError)
	}

	return summary
}
