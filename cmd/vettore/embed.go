package vettore

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/soundprediction/vettore"
	"github.com/soundprediction/vettore/pkg/cache"
	"github.com/soundprediction/vettore/pkg/checkpoint"
	"github.com/soundprediction/vettore/pkg/config"
	"github.com/soundprediction/vettore/pkg/utils"
	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed [input-file]",
	Short: "Embed a file of texts into Parquet files",
	Long: `Embed every line of the input file and write the vectors to Parquet,
one output file per batch.

Progress is checkpointed after each batch. If a run is interrupted or a
batch fails, re-running the same job resumes from the first incomplete
batch instead of re-embedding (and re-paying for) the whole input.`,
	Args: cobra.ExactArgs(1),
	RunE: runEmbed,
}

var (
	embedOutputDir     string
	embedJobID         string
	embedCheckpointDir string
	embedRestart       bool
)

func init() {
	rootCmd.AddCommand(embedCmd)

	embedCmd.Flags().StringVarP(&embedOutputDir, "output", "o", "./embeddings", "Directory for the Parquet output files")
	embedCmd.Flags().StringVar(&embedJobID, "job-id", "", "Job identifier (default is derived from the input filename)")
	embedCmd.Flags().StringVar(&embedCheckpointDir, "checkpoint-dir", "", "Directory for job checkpoints")
	embedCmd.Flags().BoolVar(&embedRestart, "restart", false, "Discard any existing checkpoint and start over")

	// Embedding flags
	embedCmd.Flags().String("embedding-provider", "openai", "Embedding provider (openai, gemini, ollama, embedeverything, openai_compatible, mock)")
	embedCmd.Flags().String("embedding-model", "text-embedding-3-small", "Embedding model")
	embedCmd.Flags().String("embedding-api-key", "", "Embedding API key")
	embedCmd.Flags().String("embedding-base-url", "", "Embedding base URL")
	embedCmd.Flags().Int("embedding-batch-size", 0, "Texts per provider request (0 uses the provider default)")

	// Cache flags
	embedCmd.Flags().Bool("cache-enabled", false, "Enable the local embedding cache")
	embedCmd.Flags().String("cache-path", "", "Path to the cache directory")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	overrideEmbedConfigWithFlags(cmd, cfg)

	texts, err := readInputTexts(inputPath)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return fmt.Errorf("input file %s contains no texts", inputPath)
	}

	// Cancel in-flight provider calls on Ctrl-C; the checkpoint keeps the
	// completed batches.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := vettore.NewClientFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize Vettore: %w", err)
	}
	defer closeClient(client)

	batchSize := cfg.Embedding.BatchSize
	if batchSize <= 0 {
		batchSize = 48
	}
	batches := utils.Batch(texts, batchSize)

	jobID := embedJobID
	if jobID == "" {
		jobID = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	}

	manager, err := checkpoint.NewCheckpointManager(embedCheckpointDir)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint manager: %w", err)
	}

	if embedRestart {
		if err := manager.Delete(ctx, jobID); err != nil {
			return fmt.Errorf("failed to discard checkpoint: %w", err)
		}
	}

	ckpt, resumed, err := manager.LoadOrCreate(ctx, jobID, inputPath, embedOutputDir,
		cfg.Embedding.Model, batchSize, len(texts), len(batches))
	if err != nil {
		return fmt.Errorf("failed to load checkpoint: %w", err)
	}

	if resumed {
		if ckpt.TotalTexts != len(texts) || ckpt.BatchSize != batchSize {
			return fmt.Errorf("checkpoint for job %s does not match the input (%d texts, batch size %d); re-run with --restart",
				jobID, ckpt.TotalTexts, ckpt.BatchSize)
		}
		fmt.Printf("Resuming job %s: %s\n", jobID, ckpt.GetProgress())
	}

	writer, err := utils.NewParquetEmbeddingWriter(embedOutputDir)
	if err != nil {
		return fmt.Errorf("failed to create output writer: %w", err)
	}

	model := cfg.Embedding.Model
	dimensions := client.Dimensions()
	hash := func(text string) string {
		return cache.Key(model, dimensions, text)
	}

	for i, batch := range batches {
		// Batches below NextBatch were written by a previous run
		if i < ckpt.NextBatch {
			continue
		}

		if err := embedBatch(ctx, client, writer, jobID, i, batch, model, dimensions, hash); err != nil {
			if saveErr := manager.SaveWithError(ctx, ckpt, err); saveErr != nil {
				fmt.Printf("Warning: Failed to record error in checkpoint: %v\n", saveErr)
			}
			return fmt.Errorf("batch %d failed: %w", i, err)
		}

		ckpt.NextBatch = i + 1
		if err := manager.Save(ctx, ckpt); err != nil {
			return fmt.Errorf("failed to save checkpoint after batch %d: %w", i, err)
		}

		fmt.Printf("Batch %d/%d embedded (%d texts)\n", i+1, len(batches), len(batch))
	}

	// The job is complete, the checkpoint is no longer needed
	if err := manager.Delete(ctx, jobID); err != nil {
		fmt.Printf("Warning: Failed to remove checkpoint: %v\n", err)
	}

	fmt.Printf("Embedded %d texts in %d batches\n", len(texts), len(batches))
	fmt.Printf("Output written to: %s\n", embedOutputDir)

	usage := client.Usage()
	if usage.Requests > 0 {
		fmt.Printf("Estimated tokens: %d, estimated cost: $%.4f\n", usage.EstimatedTokens, usage.EstimatedCost)
	}

	return nil
}

// embedBatch embeds one batch and writes its Parquet file. Panics from
// provider SDKs are converted into errors so the checkpoint survives them.
func embedBatch(ctx context.Context, client *vettore.Client, writer *utils.ParquetEmbeddingWriter,
	jobID string, batchIndex int, batch []string, model string, dimensions int,
	hash func(string) string) (err error) {
	defer utils.RecoverAsError(&err)

	vectors, err := client.Embed(ctx, batch)
	if err != nil {
		return err
	}

	rows, err := utils.NewEmbeddingRows(batch, vectors, model, dimensions, hash)
	if err != nil {
		return err
	}

	return writer.WriteBatch(ctx, jobID, batchIndex, rows)
}

// readInputTexts reads one text per line, skipping blank lines.
func readInputTexts(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var texts []string
	scanner := bufio.NewScanner(file)
	// The default 64KB token limit is too small for document-sized lines
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		texts = append(texts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	return texts, nil
}

func overrideEmbedConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("embedding-provider") {
		cfg.Embedding.Provider, _ = cmd.Flags().GetString("embedding-provider")
	}
	if cmd.Flags().Changed("embedding-model") {
		cfg.Embedding.Model, _ = cmd.Flags().GetString("embedding-model")
	}
	if cmd.Flags().Changed("embedding-api-key") {
		cfg.Embedding.APIKey, _ = cmd.Flags().GetString("embedding-api-key")
	}
	if cmd.Flags().Changed("embedding-base-url") {
		cfg.Embedding.BaseURL, _ = cmd.Flags().GetString("embedding-base-url")
	}
	if cmd.Flags().Changed("embedding-batch-size") {
		cfg.Embedding.BatchSize, _ = cmd.Flags().GetInt("embedding-batch-size")
	}
	if cmd.Flags().Changed("cache-enabled") {
		cfg.Cache.Enabled, _ = cmd.Flags().GetBool("cache-enabled")
	}
	if cmd.Flags().Changed("cache-path") {
		cfg.Cache.Path, _ = cmd.Flags().GetString("cache-path")
	}
}
