package embedder

// ClientConfig holds configuration for creating embedding clients.
type ClientConfig struct {
	Provider ProviderID `json:"provider"`
	// APIKey is the credential for cloud providers. Resolution from the
	// environment is the caller's responsibility; this package never
	// reads environment variables.
	APIKey string `json:"-"`
	Config Config `json:"config"`
}

// NewClient creates a new embedding client based on the provider type.
// An unrecognized provider yields a DependencyMissingError.
func NewClient(clientConfig ClientConfig) (Client, error) {
	switch clientConfig.Provider {
	case ProviderOpenAI:
		return NewOpenAIEmbedder(clientConfig.APIKey, clientConfig.Config)

	case ProviderOpenAICompatible:
		if clientConfig.Config.BaseURL == "" {
			return nil, NewDependencyMissingError("base URL is required for the OpenAI-compatible provider")
		}
		return NewOpenAIEmbedder(clientConfig.APIKey, clientConfig.Config)

	case ProviderGemini:
		return NewGeminiEmbedder(clientConfig.APIKey, clientConfig.Config)

	case ProviderOllama:
		return NewOllamaEmbedder(clientConfig.Config)

	case ProviderEmbedEverything:
		return NewEmbedEverythingClient(clientConfig.Config)

	case ProviderMock:
		return NewMockEmbedder(clientConfig.Config), nil

	default:
		return nil, NewDependencyMissingError("unsupported embedding provider: " + string(clientConfig.Provider))
	}
}

// DefaultConfig returns a default configuration for the given provider.
func DefaultConfig(provider ProviderID) Config {
	switch provider {
	case ProviderOpenAI, ProviderOpenAICompatible:
		return Config{
			Model:      DefaultOpenAIModel,
			BatchSize:  DefaultBatchSize,
			Dimensions: openaiModelDimensions[DefaultOpenAIModel],
		}
	case ProviderGemini:
		return Config{
			Model:      DefaultGeminiModel,
			BatchSize:  DefaultBatchSize,
			Dimensions: geminiModelDimensions[DefaultGeminiModel],
		}
	case ProviderOllama:
		return Config{
			Model:      DefaultOllamaModel,
			BatchSize:  DefaultBatchSize,
			BaseURL:    defaultOllamaBaseURL,
			Dimensions: ollamaModelDimensions[DefaultOllamaModel],
		}
	case ProviderEmbedEverything:
		return Config{
			Model:      DefaultEmbedEverythingModel,
			BatchSize:  DefaultBatchSize,
			Dimensions: embedEverythingModelDimensions[DefaultEmbedEverythingModel],
		}
	case ProviderMock:
		return Config{
			Model:      "mock",
			BatchSize:  DefaultBatchSize,
			Dimensions: 4,
		}
	default:
		return Config{}
	}
}
