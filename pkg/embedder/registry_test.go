package embedder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soundprediction/vettore/pkg/embedder"
)

func TestGetProvider(t *testing.T) {
	tests := []struct {
		id      embedder.ProviderID
		want    embedder.Provider
		wantErr bool
	}{
		{
			id: embedder.ProviderOllama,
			want: embedder.Provider{
				ID:          embedder.ProviderOllama,
				Name:        "Ollama",
				Description: "Local embedding models served by Ollama",
				IsLocal:     true,
				RequiresKey: false,
			},
			wantErr: false,
		},
		{
			id: embedder.ProviderOpenAI,
			want: embedder.Provider{
				ID:          embedder.ProviderOpenAI,
				Name:        "OpenAI",
				Description: "Cloud-based embedding models (text-embedding-3, etc.)",
				IsLocal:     false,
				RequiresKey: true,
			},
			wantErr: false,
		},
		{
			id:      "nonexistent",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			got, found := embedder.GetProvider(tt.id)
			if tt.wantErr {
				assert.False(t, found)
			} else {
				assert.True(t, found)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGetModel(t *testing.T) {
	// Pick a few representative models
	t.Run("OpenAI Model", func(t *testing.T) {
		id := "text-embedding-3-small"
		got, found := embedder.GetModel(id)
		assert.True(t, found)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, embedder.ProviderOpenAI, got.ProviderID)
		assert.Equal(t, 1536, got.Dimensions)
	})

	t.Run("Ollama Model", func(t *testing.T) {
		id := "nomic-embed-text"
		got, found := embedder.GetModel(id)
		assert.True(t, found)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, embedder.ProviderOllama, got.ProviderID)
		assert.Equal(t, 768, got.Dimensions)
	})

	t.Run("EmbedEverything Model", func(t *testing.T) {
		id := "sentence-transformers/all-MiniLM-L6-v2"
		got, found := embedder.GetModel(id)
		assert.True(t, found)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, 384, got.Dimensions)
	})

	t.Run("Nonexistent Model", func(t *testing.T) {
		_, found := embedder.GetModel("fake-model")
		assert.False(t, found)
	})
}

func TestGetModelsByProvider(t *testing.T) {
	models := embedder.GetModelsByProvider(embedder.ProviderOpenAI)
	assert.NotEmpty(t, models)
	for _, m := range models {
		assert.Equal(t, embedder.ProviderOpenAI, m.ProviderID)
	}

	assert.Len(t, embedder.GetModelsByProvider(embedder.ProviderOllama), 3)
}

func TestModelDimensions(t *testing.T) {
	assert.Equal(t, 3072, embedder.ModelDimensions("text-embedding-3-large"))
	assert.Equal(t, 0, embedder.ModelDimensions("fake-model"))
}

func TestEveryModelHasAKnownProvider(t *testing.T) {
	for _, m := range embedder.BuiltInModels {
		_, found := embedder.GetProvider(m.ProviderID)
		assert.True(t, found, "model %s references unknown provider %s", m.ID, m.ProviderID)
		assert.Greater(t, m.Dimensions, 0, "model %s has no dimensions", m.ID)
	}
}
