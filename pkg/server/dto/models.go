package dto

// ModelInfo describes one embedding model from the built-in catalog
type ModelInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Provider     string `json:"provider"`
	Dimensions   int    `json:"dimensions"`
	MaxBatchSize int    `json:"max_batch_size,omitempty"`
	Local        bool   `json:"local"`
	Active       bool   `json:"active,omitempty"`
	Description  string `json:"description,omitempty"`
}

// ModelsResponse lists the models in the built-in catalog
type ModelsResponse struct {
	Models []ModelInfo `json:"models"`
}
