// Package embedder provides text embedding clients for vector representations.
//
// This package defines the Client interface and provides implementations for
// various embedding providers including OpenAI, Gemini, Ollama and local
// embedding models.
//
// # Supported Providers
//
//   - OpenAI: text-embedding-3-small, text-embedding-3-large, text-embedding-ada-002,
//     plus any OpenAI-compatible server via a custom BaseURL (vLLM, LocalAI, Ollama)
//   - Gemini: text-embedding-004 via the batchEmbedContents API
//   - Ollama: native /api/embed endpoint for local models
//   - EmbedEverything: local in-process models via go-embedeverything
//
// # Usage
//
//	// Create an OpenAI embedder
//	client, err := embedder.NewOpenAIEmbedder(apiKey, embedder.Config{
//	    Model:     "text-embedding-3-small",
//	    BatchSize: 48,
//	})
//
//	// Embed text
//	embeddings, err := client.Embed(ctx, []string{"hello world"})
//
// # Batch Processing
//
// The Client interface supports batch embedding for efficiency:
//   - Embed(): Embed multiple texts, batched internally per provider limits
//   - EmbedSingle(): Convenience method for single text
//
// Inputs of any length are split into consecutive batches of at most
// Config.BatchSize texts, one request per batch, and the resulting vectors
// are reassembled in input order.
//
// # Decorators
//
// Clients compose with decorators that add cross-cutting behavior:
//   - RetryClient: bounded retries with exponential backoff
//   - CircuitBreakerClient: trips after repeated failures, optional alerting
//   - UsageTrackingClient: persists per-request usage records to Parquet
package embedder
