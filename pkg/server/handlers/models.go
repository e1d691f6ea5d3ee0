package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/vettore/pkg/embedder"
	"github.com/soundprediction/vettore/pkg/server/dto"
)

// ModelsHandler serves the embedding model catalog
type ModelsHandler struct {
	provider string
	model    string
	started  int64
}

// NewModelsHandler creates a models handler. provider and model identify the
// configuration this server embeds with, so listings can mark it active.
func NewModelsHandler(provider, model string) *ModelsHandler {
	return &ModelsHandler{
		provider: provider,
		model:    model,
		started:  time.Now().Unix(),
	}
}

// List handles GET /api/v1/models - the built-in model catalog, with the
// model this server embeds with marked active
func (h *ModelsHandler) List(c *gin.Context) {
	models := make([]dto.ModelInfo, 0, len(embedder.BuiltInModels))
	for _, m := range embedder.BuiltInModels {
		info := dto.ModelInfo{
			ID:           m.ID,
			Name:         m.Name,
			Provider:     string(m.ProviderID),
			Dimensions:   m.Dimensions,
			MaxBatchSize: m.MaxBatchSize,
			Description:  m.Description,
			Active:       m.ID == h.model && string(m.ProviderID) == h.provider,
		}
		if p, ok := embedder.GetProvider(m.ProviderID); ok {
			info.Local = p.IsLocal
		}
		models = append(models, info)
	}

	c.JSON(http.StatusOK, dto.ModelsResponse{Models: models})
}

// OpenAIList handles GET /v1/models in the OpenAI wire format. Only the
// configured model is listed; POST /v1/embeddings serves that model
// regardless of the model field in requests.
func (h *ModelsHandler) OpenAIList(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OpenAIModelsResponse{
		Object: "list",
		Data: []dto.OpenAIModel{
			{
				ID:      h.model,
				Object:  "model",
				Created: h.started,
				OwnedBy: h.provider,
			},
		},
	})
}
