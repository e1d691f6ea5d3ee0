package embedder

// ProviderID represents a unique identifier for an embedding provider.
type ProviderID string

const (
	// ProviderOpenAI is the ID for OpenAI.
	ProviderOpenAI ProviderID = "openai"
	// ProviderOpenAICompatible is the ID for generic OpenAI-compatible providers.
	ProviderOpenAICompatible ProviderID = "openai_compatible"
	// ProviderGemini is the ID for Google Gemini.
	ProviderGemini ProviderID = "gemini"
	// ProviderOllama is the ID for a local Ollama server.
	ProviderOllama ProviderID = "ollama"
	// ProviderEmbedEverything is the ID for the EmbedEverything local provider.
	ProviderEmbedEverything ProviderID = "embedeverything"
	// ProviderMock is the ID for the deterministic mock provider.
	ProviderMock ProviderID = "mock"
)

// Provider represents an embedding model provider.
type Provider struct {
	ID          ProviderID
	Name        string
	Description string
	IsLocal     bool
	// RequiresKey indicates whether the provider needs an API credential.
	RequiresKey bool
}

// Model represents a specific embedding model.
type Model struct {
	ID         string
	Name       string
	ProviderID ProviderID
	// Dimensions is the native output dimensionality of the model.
	Dimensions int
	// MaxBatchSize is the provider-documented cap on inputs per request,
	// or 0 when the provider publishes no limit.
	MaxBatchSize int
	Description  string
}

// BuiltInProviders contains the standard set of supported providers.
var BuiltInProviders = map[ProviderID]Provider{
	ProviderOpenAI: {
		ID:          ProviderOpenAI,
		Name:        "OpenAI",
		Description: "Cloud-based embedding models (text-embedding-3, etc.)",
		IsLocal:     false,
		RequiresKey: true,
	},
	ProviderOpenAICompatible: {
		ID:          ProviderOpenAICompatible,
		Name:        "OpenAI Compatible",
		Description: "Generic provider compatible with the OpenAI embeddings API (e.g. vLLM, LocalAI)",
		IsLocal:     false, // Can be local or remote, but treating as generic API
		RequiresKey: false,
	},
	ProviderGemini: {
		ID:          ProviderGemini,
		Name:        "Google Gemini",
		Description: "Cloud-based Gemini embedding models",
		IsLocal:     false,
		RequiresKey: true,
	},
	ProviderOllama: {
		ID:          ProviderOllama,
		Name:        "Ollama",
		Description: "Local embedding models served by Ollama",
		IsLocal:     true,
		RequiresKey: false,
	},
	ProviderEmbedEverything: {
		ID:          ProviderEmbedEverything,
		Name:        "EmbedEverything",
		Description: "Local generic embedding models via Rust bindings",
		IsLocal:     true,
		RequiresKey: false,
	},
	ProviderMock: {
		ID:          ProviderMock,
		Name:        "Mock",
		Description: "Deterministic in-memory embeddings for testing",
		IsLocal:     true,
		RequiresKey: false,
	},
}

// BuiltInModels contains a curated list of built-in models.
var BuiltInModels = []Model{
	// --- OpenAI ---
	{
		ID:           "text-embedding-3-small",
		Name:         "Text Embedding 3 Small",
		ProviderID:   ProviderOpenAI,
		Dimensions:   1536,
		MaxBatchSize: 2048,
		Description:  "Fast, inexpensive general-purpose embedding model",
	},
	{
		ID:           "text-embedding-3-large",
		Name:         "Text Embedding 3 Large",
		ProviderID:   ProviderOpenAI,
		Dimensions:   3072,
		MaxBatchSize: 2048,
		Description:  "Highest quality OpenAI embedding model",
	},
	{
		ID:           "text-embedding-ada-002",
		Name:         "Text Embedding Ada 002",
		ProviderID:   ProviderOpenAI,
		Dimensions:   1536,
		MaxBatchSize: 2048,
		Description:  "Legacy OpenAI embedding model",
	},

	// --- Gemini ---
	{
		ID:           "text-embedding-004",
		Name:         "Text Embedding 004",
		ProviderID:   ProviderGemini,
		Dimensions:   768,
		MaxBatchSize: 100,
		Description:  "Gemini general-purpose embedding model",
	},
	{
		ID:           "gemini-embedding-001",
		Name:         "Gemini Embedding 001",
		ProviderID:   ProviderGemini,
		Dimensions:   3072,
		MaxBatchSize: 100,
		Description:  "High-dimensional Gemini embedding model with Matryoshka truncation",
	},

	// --- Ollama ---
	{
		ID:          "all-minilm",
		Name:        "all-MiniLM",
		ProviderID:  ProviderOllama,
		Dimensions:  384,
		Description: "Fast local sentence embedding model",
	},
	{
		ID:          "nomic-embed-text",
		Name:        "Nomic Embed Text",
		ProviderID:  ProviderOllama,
		Dimensions:  768,
		Description: "High quality local embedding model with long context",
	},
	{
		ID:          "mxbai-embed-large",
		Name:        "MixedBread Embed Large",
		ProviderID:  ProviderOllama,
		Dimensions:  1024,
		Description: "Large local embedding model",
	},

	// --- EmbedEverything ---
	{
		ID:          "sentence-transformers/all-MiniLM-L6-v2",
		Name:        "all-MiniLM-L6-v2",
		ProviderID:  ProviderEmbedEverything,
		Dimensions:  384,
		Description: "Fast and effective general-purpose sentence embedding model",
	},
	{
		ID:          "sentence-transformers/all-mpnet-base-v2",
		Name:        "all-mpnet-base-v2",
		ProviderID:  ProviderEmbedEverything,
		Dimensions:  768,
		Description: "Higher quality, slightly slower general-purpose sentence embedding model",
	},
}

// GetProvider returns the provider with the given ID.
func GetProvider(id ProviderID) (Provider, bool) {
	p, ok := BuiltInProviders[id]
	return p, ok
}

// GetModel returns the model with the given ID.
func GetModel(id string) (Model, bool) {
	for _, m := range BuiltInModels {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// GetModelsByProvider returns all models for a specific provider.
func GetModelsByProvider(providerID ProviderID) []Model {
	var models []Model
	for _, m := range BuiltInModels {
		if m.ProviderID == providerID {
			models = append(models, m)
		}
	}
	return models
}

// ModelDimensions returns the native dimensionality of a known model,
// or 0 when the model is not in the registry.
func ModelDimensions(id string) int {
	if m, ok := GetModel(id); ok {
		return m.Dimensions
	}
	return 0
}
