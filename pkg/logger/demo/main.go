package main

import (
	"log/slog"

	"github.com/soundprediction/vettore/pkg/logger"
)

func main() {
	// Create a colored logger
	log := logger.NewDefaultLogger(slog.LevelDebug)

	log.Info("============================================")
	log.Info("    Vettore Colored Logger Demo")
	log.Info("============================================")
	log.Info("")

	log.Debug("Debug message - standard color")
	log.Info("Info message - standard color")
	log.Info("Persisting usage records - green!")
	log.Info("Embeddings persisted successfully - also green!")
	log.Warn("Warning message - yellow!")
	log.Error("Error message - red!")

	log.Info("")
	log.Info("Disk writes are highlighted in green:")
	log.Info("Persisting embedding batch", "count", 48, "model", "text-embedding-3-small")
	log.Info("Embedding batch persisted", "duration", "1.2s")
	log.Info("Persisting usage records", "count", 100)
	log.Info("Usage records persisted", "duration", "0.3s")

	log.Info("")
	log.Warn("Warnings appear in yellow for attention")
	log.Error("Errors appear in red for immediate visibility")

	log.Info("")
	log.Info("Demo complete!")
}
