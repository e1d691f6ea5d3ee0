package vettore

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soundprediction/vettore"
	"github.com/soundprediction/vettore/pkg/config"
	"github.com/soundprediction/vettore/pkg/server"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the Vettore HTTP server",
	Long: `Start the Vettore HTTP server to provide REST API access to embeddings.

The server provides endpoints for:
- Embedding batches of texts
- Scoring the similarity of text pairs
- Ranking candidate texts against a query
- An OpenAI-compatible /v1/embeddings route
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "debug", "Server mode (debug, release, test)")

	// Embedding flags
	serverCmd.Flags().String("embedding-provider", "openai", "Embedding provider (openai, gemini, ollama, embedeverything, openai_compatible, mock)")
	serverCmd.Flags().String("embedding-model", "text-embedding-3-small", "Embedding model")
	serverCmd.Flags().String("embedding-api-key", "", "Embedding API key")
	serverCmd.Flags().String("embedding-base-url", "", "Embedding base URL")
	serverCmd.Flags().Int("embedding-batch-size", 0, "Texts per provider request (0 uses the provider default)")
	serverCmd.Flags().Int("embedding-dimensions", 0, "Requested vector dimensions (0 uses the model default)")

	// Cache flags
	serverCmd.Flags().Bool("cache-enabled", false, "Enable the local embedding cache")
	serverCmd.Flags().String("cache-path", "", "Path to the cache directory")
	serverCmd.Flags().Int("cache-ttl", 0, "Cache entry TTL in seconds (0 means no expiry)")

	// Circuit breaker flags
	serverCmd.Flags().Bool("circuit-breaker", false, "Enable the provider circuit breaker")

	// Telemetry flags
	serverCmd.Flags().String("telemetry-parquet-path", "", "Path to directory for telemetry (errors and usage)")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	overrideConfigWithFlags(cmd, cfg)

	// Validate configuration
	if err := validateServerConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize the embedding client
	fmt.Println("Initializing Vettore...")
	client, err := vettore.NewClientFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize Vettore: %w", err)
	}

	// Create and setup server
	srv := server.New(cfg, client)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrChan:
		closeClient(client)
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal: %v\n", sig)

		// Create shutdown context with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Shutdown server
		if err := srv.Stop(shutdownCtx); err != nil {
			closeClient(client)
			return fmt.Errorf("server shutdown error: %w", err)
		}

		// Flush usage records and close the cache
		closeClient(client)

		fmt.Println("Server stopped gracefully")
		return nil
	}
}

func closeClient(client *vettore.Client) {
	if err := client.Close(); err != nil {
		fmt.Printf("Warning: Failed to close embedding client: %v\n", err)
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	// Server flags
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}

	// Embedding flags
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
	if cmd.Flags().Changed("embedding-dimensions") {
		cfg.Embedding.Dimensions, _ = cmd.Flags().GetInt("embedding-dimensions")
	}

	// Cache flags
	if cmd.Flags().Changed("cache-enabled") {
		cfg.Cache.Enabled, _ = cmd.Flags().GetBool("cache-enabled")
	}
	if cmd.Flags().Changed("cache-path") {
		cfg.Cache.Path, _ = cmd.Flags().GetString("cache-path")
	}
	if cmd.Flags().Changed("cache-ttl") {
		cfg.Cache.TTL, _ = cmd.Flags().GetInt("cache-ttl")
	}

	// Circuit breaker flags
	if cmd.Flags().Changed("circuit-breaker") {
		cfg.CircuitBreaker.Enabled, _ = cmd.Flags().GetBool("circuit-breaker")
	}

	// Telemetry flags
	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
	}
}

func validateServerConfig(cfg *config.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}

	if cfg.Embedding.Provider == "" {
		return fmt.Errorf("embedding provider is required")
	}
	return nil
}
