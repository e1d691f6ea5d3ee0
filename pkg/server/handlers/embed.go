package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker"

	"github.com/soundprediction/vettore"
	"github.com/soundprediction/vettore/pkg/embedder"
	"github.com/soundprediction/vettore/pkg/server/dto"
)

// EmbedHandler handles embedding generation requests
type EmbedHandler struct {
	client vettore.Vettore
	model  string
}

// NewEmbedHandler creates a new embed handler reporting the given model name
// in responses.
func NewEmbedHandler(client vettore.Vettore, model string) *EmbedHandler {
	return &EmbedHandler{
		client: client,
		model:  model,
	}
}

// Embed handles POST /api/v1/embeddings
func (h *EmbedHandler) Embed(c *gin.Context) {
	var req dto.EmbedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	vectors, err := h.client.Embed(c.Request.Context(), req.Texts)
	if err != nil {
		status, code := mapProviderError(err)
		c.JSON(status, dto.ErrorResponse{Error: code, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.EmbedResponse{
		Embeddings: vectors,
		Model:      h.model,
		Dimensions: h.client.Dimensions(),
		Count:      len(vectors),
	})
}

// Similarity handles POST /api/v1/similarity
func (h *EmbedHandler) Similarity(c *gin.Context) {
	var req dto.SimilarityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	score, err := h.client.Similarity(c.Request.Context(), req.TextA, req.TextB)
	if err != nil {
		status, code := mapProviderError(err)
		c.JSON(status, dto.ErrorResponse{Error: code, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.SimilarityResponse{
		Score: score,
		Model: h.model,
	})
}

// Rank handles POST /api/v1/rank
func (h *EmbedHandler) Rank(c *gin.Context) {
	var req dto.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	matches, err := h.client.MostSimilar(c.Request.Context(), req.Query, req.Candidates, req.TopK)
	if err != nil {
		status, code := mapProviderError(err)
		c.JSON(status, dto.ErrorResponse{Error: code, Message: err.Error()})
		return
	}

	out := make([]dto.RankMatch, len(matches))
	for i, m := range matches {
		out[i] = dto.RankMatch{
			Index: m.Index,
			Text:  m.Text,
			Score: m.Score,
		}
	}

	c.JSON(http.StatusOK, dto.RankResponse{
		Matches: out,
		Model:   h.model,
	})
}

// OpenAIEmbed handles POST /v1/embeddings in the OpenAI wire format, so
// off-the-shelf OpenAI SDK clients can talk to this server.
func (h *EmbedHandler) OpenAIEmbed(c *gin.Context) {
	var req dto.OpenAIEmbedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if req.EncodingFormat != "" && req.EncodingFormat != "float" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: "encoding_format " + req.EncodingFormat + " is not supported",
		})
		return
	}

	texts, err := req.Texts()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if err := (&dto.EmbedRequest{Texts: texts}).Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	vectors, err := h.client.Embed(c.Request.Context(), texts)
	if err != nil {
		status, code := mapProviderError(err)
		c.JSON(status, dto.ErrorResponse{Error: code, Message: err.Error()})
		return
	}

	data := make([]dto.OpenAIEmbedding, len(vectors))
	for i, vector := range vectors {
		data[i] = dto.OpenAIEmbedding{
			Object:    "embedding",
			Embedding: vector,
			Index:     i,
		}
	}

	// Roughly four characters per token, matching the usage tracker.
	chars := 0
	for _, text := range texts {
		chars += len(text)
	}
	tokens := chars / 4

	c.JSON(http.StatusOK, dto.OpenAIEmbedResponse{
		Object: "list",
		Data:   data,
		Model:  h.model,
		Usage: dto.OpenAIUsage{
			PromptTokens: tokens,
			TotalTokens:  tokens,
		},
	})
}

// mapProviderError translates embedding errors into an HTTP status and a
// stable error code.
func mapProviderError(err error) (int, string) {
	var authErr *embedder.AuthenticationError
	if errors.As(err, &authErr) {
		return http.StatusUnauthorized, "authentication_failed"
	}

	var rateErr *embedder.RateLimitError
	if errors.As(err, &rateErr) {
		return http.StatusTooManyRequests, "rate_limited"
	}
	if errors.Is(err, embedder.ErrRateLimit) {
		return http.StatusTooManyRequests, "rate_limited"
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return http.StatusServiceUnavailable, "provider_unavailable"
	}

	var depErr *embedder.DependencyMissingError
	if errors.As(err, &depErr) {
		return http.StatusServiceUnavailable, "provider_unavailable"
	}

	var callErr *embedder.ProviderCallError
	if errors.As(err, &callErr) {
		return http.StatusBadGateway, "provider_call_failed"
	}

	return http.StatusInternalServerError, "embedding_failed"
}
