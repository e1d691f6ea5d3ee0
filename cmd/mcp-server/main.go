package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/firebase/genkit/go/genkit"
	"github.com/soundprediction/vettore"
	"github.com/soundprediction/vettore/pkg/config"
	vettoreLogger "github.com/soundprediction/vettore/pkg/logger"
)

// Default configuration values
const (
	DefaultProvider      = "openai"
	DefaultEmbedderModel = "text-embedding-3-small"
)

// Config holds all configuration for the MCP server
type Config struct {
	// Embedder Configuration
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	BatchSize int

	// Cache Configuration
	CacheEnabled bool
	CachePath    string

	// Telemetry Configuration
	TelemetryParquetPath string

	// MCP Server Configuration
	Transport string
	Host      string
	Port      int
}

// MCPServer wraps the embedding client for MCP operations
type MCPServer struct {
	config *Config
	client *vettore.Client
	logger *slog.Logger
}

// NewConfig creates a new configuration from environment variables and command line flags
func NewConfig() *Config {
	config := &Config{
		Provider:             getEnv("EMBEDDING_PROVIDER", DefaultProvider),
		Model:                getEnv("EMBEDDER_MODEL_NAME", DefaultEmbedderModel),
		APIKey:               getEnv("EMBEDDING_API_KEY", getEnv("OPENAI_API_KEY", "")),
		BaseURL:              getEnv("EMBEDDING_BASE_URL", ""),
		BatchSize:            getEnvInt("EMBEDDING_BATCH_SIZE", 0),
		CacheEnabled:         getEnvBool("CACHE_ENABLED", false),
		CachePath:            getEnv("CACHE_PATH", ""),
		TelemetryParquetPath: getEnv("TELEMETRY_PARQUET_PATH", ""),
		Transport:            getEnv("MCP_TRANSPORT", "stdio"),
		Host:                 getEnv("MCP_HOST", "localhost"),
		Port:                 getEnvInt("MCP_PORT", 3000),
	}

	return config
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(cfg *Config) (*MCPServer, error) {
	logger := slog.New(vettoreLogger.NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Build the embedding client configuration
	clientConfig := &config.Config{
		Embedding: config.EmbeddingConfig{
			Provider:  cfg.Provider,
			Model:     cfg.Model,
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			BatchSize: cfg.BatchSize,
		},
		Cache: config.CacheConfig{
			Enabled: cfg.CacheEnabled,
			Path:    cfg.CachePath,
		},
		Telemetry: config.TelemetryConfig{
			Enabled:     true,
			ParquetPath: cfg.TelemetryParquetPath,
		},
	}

	client, err := vettore.NewClientFromConfig(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	return &MCPServer{
		config: cfg,
		client: client,
		logger: logger,
	}, nil
}

// Initialize sets up the MCP server and embedding client
func (s *MCPServer) Initialize(ctx context.Context) error {
	s.logger.Info("Initializing Vettore MCP server...")

	// Verify the client is ready
	if s.client == nil {
		return fmt.Errorf("embedding client not initialized")
	}

	s.logger.Info("Embedding client initialized successfully")
	s.logger.Info("MCP server configuration",
		"provider", s.config.Provider,
		"model", s.config.Model,
		"cache_enabled", s.config.CacheEnabled,
		"transport", s.config.Transport,
	)

	return nil
}

// RegisterTools registers all MCP tools with Genkit
func (s *MCPServer) RegisterTools(g *genkit.Genkit) {
	// Register embed_text tool
	genkit.DefineTool(g, "embed_text",
		"Embed a single text and return its vector.",
		s.EmbedTextTool)

	// Register embed_texts tool
	genkit.DefineTool(g, "embed_texts",
		"Embed a batch of texts and return index-aligned vectors.",
		s.EmbedTextsTool)

	// Register similarity tool
	genkit.DefineTool(g, "similarity",
		"Score the semantic similarity of two texts between -1 and 1.",
		s.SimilarityTool)

	// Register rank tool
	genkit.DefineTool(g, "rank",
		"Rank candidate texts by semantic similarity to a query.",
		s.RankTool)

	// Register usage_report tool
	genkit.DefineTool(g, "usage_report",
		"Report cumulative embedding usage and estimated cost for this session.",
		s.UsageReportTool)
}

// Run starts the MCP server
func (s *MCPServer) Run(ctx context.Context) error {
	s.logger.Info("Starting Genkit MCP server", "transport", s.config.Transport)

	// Initialize Genkit
	g := genkit.Init(ctx)

	// Register all tools
	s.RegisterTools(g)

	// Start the server (this would typically be handled by Genkit's runtime)
	s.logger.Info("MCP server is ready to accept requests")

	// Keep the server running
	select {
	case <-ctx.Done():
		return ctx.Err()
	}
}

func main() {
	// Parse command line flags
	var (
		provider  = flag.String("provider", "", fmt.Sprintf("Embedding provider (default: %s)", DefaultProvider))
		model     = flag.String("model", "", fmt.Sprintf("Embedding model name (default: %s)", DefaultEmbedderModel))
		baseURL   = flag.String("base-url", "", "Embedding base URL (for OpenAI-compatible services)")
		transport = flag.String("transport", "stdio", "Transport to use (stdio or sse)")
		host      = flag.String("host", "", "Host to bind the MCP server to")
		port      = flag.Int("port", 0, "Port to bind the MCP server to")
		useCache  = flag.Bool("cache", false, "Enable the local embedding cache")
	)
	flag.Parse()

	// Create configuration
	config := NewConfig()

	// Apply command line overrides
	if *provider != "" {
		config.Provider = *provider
	}
	if *model != "" {
		config.Model = *model
	}
	if *baseURL != "" {
		config.BaseURL = *baseURL
	}
	if *transport != "" {
		config.Transport = *transport
	}
	if *host != "" {
		config.Host = *host
	}
	if *port != 0 {
		config.Port = *port
	}
	if *useCache {
		config.CacheEnabled = true
	}

	// Validate required configuration. Hosted providers need a credential;
	// local providers (ollama, mock) and custom base URLs do not.
	switch config.Provider {
	case "openai", "gemini":
		if config.APIKey == "" && config.BaseURL == "" {
			log.Fatalf("EMBEDDING_API_KEY or OPENAI_API_KEY must be set for provider %s", config.Provider)
		}
	}

	// Create and initialize server
	server, err := NewMCPServer(config)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	ctx := context.Background()
	if err := server.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize MCP server: %v", err)
	}

	// Run the server
	if err := server.Run(ctx); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
