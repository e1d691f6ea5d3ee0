package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
)

// ParquetEmbedding represents the schema for one embedded text in Parquet
type ParquetEmbedding struct {
	ID          string    `parquet:"id"`
	ContentHash string    `parquet:"content_hash"`
	Text        string    `parquet:"text"`
	Model       string    `parquet:"model"`
	Dimensions  int       `parquet:"dimensions"`
	Vector      []float32 `parquet:"vector"`
	CreatedAt   time.Time `parquet:"created_at"`
}

// ParquetEmbeddingWriter writes embedding batches to Parquet files, one
// file per batch. Filenames are derived from the job ID and batch index,
// so re-running a batch overwrites its own file and a resumed job never
// duplicates output.
type ParquetEmbeddingWriter struct {
	outputDir string
}

// NewParquetEmbeddingWriter creates a new Parquet writer
// outputDir is the directory where the batch files will be stored
func NewParquetEmbeddingWriter(outputDir string) (*ParquetEmbeddingWriter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &ParquetEmbeddingWriter{outputDir: outputDir}, nil
}

// BatchPath returns the output file path for a batch of a job
func (w *ParquetEmbeddingWriter) BatchPath(jobID string, batchIndex int) string {
	filename := fmt.Sprintf("embeddings_%s_%06d.parquet", jobID, batchIndex)
	return filepath.Join(w.outputDir, filename)
}

// WriteBatch writes one batch of embedding rows to its Parquet file
func (w *ParquetEmbeddingWriter) WriteBatch(ctx context.Context, jobID string, batchIndex int, rows []ParquetEmbedding) error {
	if len(rows) == 0 {
		return nil
	}

	return parquet.WriteFile(w.BatchPath(jobID, batchIndex), rows)
}

// NewEmbeddingRows builds Parquet rows from index-aligned texts and
// vectors. hash derives the content hash recorded for each text.
func NewEmbeddingRows(texts []string, vectors [][]float32, model string, dimensions int, hash func(text string) string) ([]ParquetEmbedding, error) {
	if len(texts) != len(vectors) {
		return nil, fmt.Errorf("texts and vectors are not aligned: %d texts, %d vectors", len(texts), len(vectors))
	}

	now := time.Now().UTC()
	rows := make([]ParquetEmbedding, len(texts))
	for i, text := range texts {
		contentHash := ""
		if hash != nil {
			contentHash = hash(text)
		}
		rows[i] = ParquetEmbedding{
			ID:          GenerateUUID(),
			ContentHash: contentHash,
			Text:        text,
			Model:       model,
			Dimensions:  dimensions,
			Vector:      vectors[i],
			CreatedAt:   now,
		}
	}

	return rows, nil
}

// Close implements a closer interface, currently no-op as we write file-per-call
func (w *ParquetEmbeddingWriter) Close() error {
	return nil
}
