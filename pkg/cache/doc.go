// Package cache provides a content-addressed store for embedding vectors
// and a client decorator that serves repeated texts from it.
//
// Keys are derived from the model, the dimensionality, and the text itself,
// so a cache survives provider restarts but never serves a vector produced
// by a different model. The default store is backed by Badger.
package cache
