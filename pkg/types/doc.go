// Package types defines the core shared data types for vettore.
//
// This package contains the fundamental types used throughout vettore:
//   - ContextKey: Typed keys for request-scoped metadata carried in a
//     context.Context and recorded alongside usage
//   - EmbeddingUsage: Usage figures for a single embedding request
//   - EmbeddingUsageSummary: Cumulative usage totals across requests
//
// # Request Metadata
//
// Callers attach attribution metadata to a context before embedding:
//
//	ctx = context.WithValue(ctx, types.ContextKeyUserID, "user-42")
//	ctx = context.WithValue(ctx, types.ContextKeySessionID, "sess-7")
//
// Usage tracking reads these keys back when recording per-request usage.
//
// # JSON Serialization
//
// All types are designed to be JSON-serializable with appropriate struct tags.
package types
