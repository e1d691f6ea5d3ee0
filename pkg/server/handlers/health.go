package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/vettore"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// HealthHandler handles health check requests
type HealthHandler struct {
	client vettore.Vettore
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(client vettore.Vettore) *HealthHandler {
	return &HealthHandler{
		client: client,
	}
}

// HealthCheck handles GET /health - basic liveness check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "vettore",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// LivenessCheck handles GET /live - Kubernetes liveness probe endpoint
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	// Simple liveness check - just confirm the service is running
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"service":   "vettore",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck handles GET /ready. It reports whether the embedding client
// is wired up without calling the provider; probing the provider on every
// Kubernetes poll would bill a request each time. Use /health/detailed for a
// real provider round trip.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	response := gin.H{
		"status":    "ready",
		"service":   "vettore",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    gin.H{},
	}

	allHealthy := true
	checks := response["checks"].(gin.H)

	if h.client != nil {
		checks["embedder"] = gin.H{
			"status":     "healthy",
			"dimensions": h.client.Dimensions(),
		}
	} else {
		checks["embedder"] = gin.H{
			"status": "unhealthy",
			"error":  "embedding client not initialized",
		}
		allHealthy = false
	}

	checks["system"] = gin.H{
		"status":     "healthy",
		"goroutines": runtime.NumGoroutine(),
	}

	if !allHealthy {
		response["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DetailedHealthCheck handles GET /health/detailed - comprehensive health
// information including a live provider probe. The probe embeds one short
// text, so this endpoint costs a provider request per call.
func (h *HealthHandler) DetailedHealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	startTime := time.Now()
	response := gin.H{
		"status":  "healthy",
		"service": "vettore",
		"version": Version,
		"build_info": gin.H{
			"git_commit": GitCommit,
			"build_time": BuildTime,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"environment": gin.H{
			"go_version": GoVersion,
		},
		"checks": gin.H{},
		"metrics": gin.H{
			"response_time_ms": 0, // Will be set at the end
		},
	}

	allHealthy := true
	checks := response["checks"].(gin.H)

	if h.client != nil {
		probeStartTime := time.Now()
		vector, err := h.client.EmbedSingle(ctx, "health check probe")
		probeDuration := time.Since(probeStartTime)

		probeStatus := gin.H{
			"status":      "healthy",
			"duration_ms": probeDuration.Milliseconds(),
			"operation":   "EmbedSingle",
		}

		if err != nil {
			probeStatus["status"] = "unhealthy"
			if ctx.Err() != nil {
				probeStatus["error"] = "provider timeout"
			} else {
				probeStatus["error"] = err.Error()
			}
			allHealthy = false
		} else {
			probeStatus["dimensions"] = len(vector)
		}

		checks["provider"] = probeStatus

		// Cumulative usage since the service started
		usage := h.client.Usage()
		checks["usage"] = gin.H{
			"status":           "healthy",
			"requests":         usage.Requests,
			"texts":            usage.Texts,
			"estimated_tokens": usage.EstimatedTokens,
			"estimated_cost":   usage.EstimatedCost,
		}
	} else {
		checks["embedder"] = gin.H{
			"status": "unhealthy",
			"error":  "embedding client not initialized",
		}
		allHealthy = false
	}

	// Add system health metrics
	systemMetrics := h.getSystemMetrics()
	checks["system"] = gin.H{
		"status":       "healthy",
		"memory_usage": systemMetrics.MemoryUsage,
		"goroutines":   systemMetrics.Goroutines,
		"gc_cycles":    systemMetrics.GCCycles,
		"heap_objects": systemMetrics.HeapObjects,
		"stack_usage":  systemMetrics.StackUsage,
	}

	// Set final response
	totalDuration := time.Since(startTime)
	response["metrics"].(gin.H)["response_time_ms"] = totalDuration.Milliseconds()

	if !allHealthy {
		response["status"] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SystemMetrics holds system runtime metrics
type SystemMetrics struct {
	MemoryUsage string `json:"memory_usage"`
	Goroutines  int    `json:"goroutines"`
	GCCycles    uint32 `json:"gc_cycles"`
	HeapObjects uint64 `json:"heap_objects"`
	StackUsage  string `json:"stack_usage"`
}

// getSystemMetrics collects current system runtime metrics
func (h *HealthHandler) getSystemMetrics() SystemMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// Convert bytes to human-readable format
	memoryUsage := fmt.Sprintf("%.2f MB", float64(m.Alloc)/(1024*1024))
	stackUsage := fmt.Sprintf("%.2f MB", float64(m.StackSys)/(1024*1024))

	return SystemMetrics{
		MemoryUsage: memoryUsage,
		Goroutines:  runtime.NumGoroutine(),
		GCCycles:    m.NumGC,
		HeapObjects: m.HeapObjects,
		StackUsage:  stackUsage,
	}
}
