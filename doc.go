// Package vettore provides a uniform text embedding client for Go.
//
// Vettore wraps cloud and local embedding providers (OpenAI, Gemini, Ollama,
// EmbedEverything, and any OpenAI-compatible server) behind one interface,
// handling request batching, retries with exponential backoff, circuit
// breaking, on-disk caching, and usage accounting so callers only deal with
// texts and vectors.
//
// # Basic Usage
//
// Assemble a client from configuration (defaults plus environment variables
// such as OPENAI_API_KEY):
//
//	client, err := vettore.NewClientFromConfig(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	vectors, err := client.Embed(ctx, []string{"first text", "second text"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Or build the embedding client by hand and wrap it:
//
//	embCfg := embedder.DefaultConfig(embedder.ProviderOpenAI)
//	emb, err := embedder.NewOpenAIEmbedder("your-api-key", embCfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	client, err := vettore.NewClient(emb, nil, nil)
//
// # Batching
//
// Embed accepts any number of texts. Inputs are partitioned into consecutive
// batches of at most the configured batch size (48 by default), one provider
// request per batch, and the vectors are reassembled in input order. A
// failure in any batch fails the whole call; there are no partial results.
//
// # Similarity
//
// The client exposes cosine similarity helpers on top of Embed:
//
//	score, err := client.Similarity(ctx, "coffee", "espresso")
//
//	matches, err := client.MostSimilar(ctx, "database", candidates, 3)
//	for _, m := range matches {
//		fmt.Printf("%s: %.3f\n", m.Text, m.Score)
//	}
//
// # Caching and Usage
//
// With caching enabled, vectors are stored in a local Badger database keyed
// by model, dimensions and text, so repeated texts skip the provider
// entirely. Usage tracking estimates token counts and cost per request and
// persists records to Parquet for offline analysis. Both are configured
// through the config package and report through CacheStats and Usage.
//
// # Error Handling
//
// The embedder package provides typed errors for common scenarios:
//
//   - AuthenticationError: the provider rejected the credential
//   - DependencyMissingError: a required backing library or setting is absent
//   - ProviderCallError: the provider call failed after retries
//   - RateLimitError: the provider throttled the request
//
// # Architecture
//
// The library follows a modular architecture:
//
//   - pkg/embedder: provider clients, batching, retry and breaker decorators
//   - pkg/cache: content-addressed embedding cache
//   - pkg/checkpoint: resumable state for bulk embedding jobs
//   - pkg/telemetry: Parquet persistence for error logs
//   - pkg/cost: pricing catalog for usage estimates
//   - pkg/config: configuration loading and defaults
//
// This design allows easy extension with additional embedding providers and
// storage backends.
package vettore
