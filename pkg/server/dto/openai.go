package dto

import (
	"encoding/json"
	"errors"
)

// OpenAIEmbedRequest mirrors the OpenAI embeddings request body, so existing
// OpenAI SDK clients can point at this server. Input is either a single
// string or an array of strings.
type OpenAIEmbedRequest struct {
	Input          json.RawMessage `json:"input" binding:"required"`
	Model          string          `json:"model,omitempty"`
	EncodingFormat string          `json:"encoding_format,omitempty"`
}

// Texts normalizes Input into a slice of texts.
func (r *OpenAIEmbedRequest) Texts() ([]string, error) {
	if len(r.Input) == 0 {
		return nil, ErrEmptyTexts
	}

	var single string
	if err := json.Unmarshal(r.Input, &single); err == nil {
		return []string{single}, nil
	}

	var many []string
	if err := json.Unmarshal(r.Input, &many); err == nil {
		if len(many) == 0 {
			return nil, ErrEmptyTexts
		}
		return many, nil
	}

	return nil, errors.New("input must be a string or an array of strings")
}

// OpenAIEmbedding is one row of an OpenAI-compatible response
type OpenAIEmbedding struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

// OpenAIUsage reports token usage in the OpenAI response shape. The counts
// are estimates; the upstream providers report none for embeddings.
type OpenAIUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// OpenAIEmbedResponse mirrors the OpenAI embeddings response body
type OpenAIEmbedResponse struct {
	Object string            `json:"object"`
	Data   []OpenAIEmbedding `json:"data"`
	Model  string            `json:"model"`
	Usage  OpenAIUsage       `json:"usage"`
}

// OpenAIModel is one row of an OpenAI-compatible model listing
type OpenAIModel struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// OpenAIModelsResponse mirrors the OpenAI models response body
type OpenAIModelsResponse struct {
	Object string        `json:"object"`
	Data   []OpenAIModel `json:"data"`
}
