// Package utils provides utility functions for the vettore library.
//
// This package contains helper functions for various operations including:
//   - Vector math for similarity scoring (vector.go)
//   - Input batching (batch.go)
//   - Parquet export of embedding batches (parquet_writer.go)
//   - Panic recovery (recovery.go)
//
// The utilities are deliberately free of provider knowledge so they can be
// shared by the client decorators, the HTTP service, and the CLI.
package utils
