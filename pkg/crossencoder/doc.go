/*
Package crossencoder provides cross-encoder functionality for ranking passages
based on their relevance to a query.

# Overview

Cross-encoders are neural models used in information retrieval to compute
relevance scores between a query and candidate passages. Unlike bi-encoders
that encode queries and documents separately, cross-encoders process
query-document pairs together, often resulting in better ranking accuracy at
the cost of increased computational overhead.

# Implementations

This package provides several implementations:

## Jina-Compatible Reranker (RerankerClient)

Calls any service implementing the Jina reranking API: vLLM, LocalAI, Jina AI
and others. Large passage sets are split into batches and scored concurrently.

	reranker := crossencoder.NewVLLMRerankerClient("http://localhost:8000/v1", "BAAI/bge-reranker-large")
	results, err := reranker.Rank(ctx, "search query", passages)

## Embedding Reranker (EmbeddingRerankerClient)

Embeds the query and all passages in a single request and scores passages by
cosine similarity. Not a true cross-encoder, but it reuses an existing
embedding client and needs no additional service.

	reranker := crossencoder.NewEmbeddingRerankerClient(embedderClient, crossencoder.EmbeddingConfig{
		NormalizeScores: true,
	})
	results, err := reranker.Rank(ctx, query, passages)

## EmbedEverything Reranker (EmbedEverythingClient)

Runs a cross-encoder model in-process via go-embedeverything. Works offline
once the model files are downloaded.

	reranker, err := crossencoder.NewEmbedEverythingClient(&crossencoder.EmbedEverythingConfig{
		Config: &crossencoder.Config{Model: "BAAI/bge-reranker-base"},
	})
	results, err := reranker.Rank(ctx, query, passages)

## Local Reranker (LocalRerankerClient)

Uses cosine similarity of term frequency vectors. This implementation doesn't
require external API calls and provides reasonable results for basic text
matching scenarios.

	reranker := crossencoder.NewLocalRerankerClient(crossencoder.Config{})
	results, err := reranker.Rank(ctx, query, passages)

## Mock Reranker (MockRerankerClient)

Provides a deterministic mock implementation for testing purposes. Passages
are ordered by term overlap with the query and assigned fixed positional
scores.

	reranker := crossencoder.NewMockRerankerClient(crossencoder.Config{})
	results, err := reranker.Rank(ctx, query, passages)

# Factory Function

The NewClient function provides a convenient way to create clients based on provider type:

	client, err := crossencoder.NewClient(crossencoder.ClientConfig{
		Provider: crossencoder.ProviderReranker,
		Config:   crossencoder.DefaultConfig(crossencoder.ProviderReranker),
	})

# Usage in Retrieval

Cross-encoders are typically used as rerankers in multi-stage retrieval
systems:

1. Initial retrieval using fast methods (e.g., BM25, vector similarity)
2. Reranking top candidates using a cross-encoder for improved relevance

The root vettore client's MostSimilar covers the first stage with bi-encoder
embeddings; this package covers the second.

# Performance Considerations

- Jina-compatible reranker: Higher accuracy but requires a running service
- Embedding reranker: Reuses the embedding stack, one request per ranking call
- EmbedEverything reranker: Offline neural reranking, slower on CPU
- Local reranker: Fast and no external dependencies but lower accuracy
- Mock reranker: Fastest, suitable for testing and development

Choose the implementation based on your accuracy requirements, latency
constraints, and available resources.
*/
package crossencoder
