package dto

import (
	"fmt"
	"strings"
)

// EmbedRequest represents a request to embed a batch of texts
type EmbedRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

// Validate performs validation on EmbedRequest
func (r *EmbedRequest) Validate() error {
	if len(r.Texts) == 0 {
		return ErrEmptyTexts
	}
	if len(r.Texts) > MaxTextsCount {
		return ErrTooManyTexts
	}
	for i, text := range r.Texts {
		if len(text) > MaxTextLength {
			return fmt.Errorf("text %d: %w", i, ErrTextTooLong)
		}
	}
	return nil
}

// EmbedResponse carries one vector per input text, index-aligned with the
// request
type EmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Model      string      `json:"model"`
	Dimensions int         `json:"dimensions"`
	Count      int         `json:"count"`
}

// SimilarityRequest represents a request to compare two texts
type SimilarityRequest struct {
	TextA string `json:"text_a" binding:"required"`
	TextB string `json:"text_b" binding:"required"`
}

// Validate performs validation on SimilarityRequest
func (r *SimilarityRequest) Validate() error {
	if strings.TrimSpace(r.TextA) == "" || strings.TrimSpace(r.TextB) == "" {
		return ErrEmptyText
	}
	if len(r.TextA) > MaxTextLength || len(r.TextB) > MaxTextLength {
		return ErrTextTooLong
	}
	return nil
}

// SimilarityResponse carries the cosine similarity of the two texts
type SimilarityResponse struct {
	Score float64 `json:"score"`
	Model string  `json:"model"`
}

// RankRequest represents a request to rank candidates against a query
type RankRequest struct {
	Query      string   `json:"query" binding:"required"`
	Candidates []string `json:"candidates" binding:"required"`
	// TopK limits the number of matches returned. Zero or negative
	// returns all candidates.
	TopK int `json:"top_k,omitempty"`
}

// Validate performs validation on RankRequest
func (r *RankRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	if len(r.Candidates) == 0 {
		return ErrEmptyCandidates
	}
	if len(r.Candidates) > MaxTextsCount {
		return ErrTooManyTexts
	}
	if len(r.Query) > MaxTextLength {
		return ErrTextTooLong
	}
	for i, candidate := range r.Candidates {
		if len(candidate) > MaxTextLength {
			return fmt.Errorf("candidate %d: %w", i, ErrTextTooLong)
		}
	}
	return nil
}

// RankMatch is one scored candidate, best matches first
type RankMatch struct {
	Index int     `json:"index"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// RankResponse carries the ranked matches for a query
type RankResponse struct {
	Matches []RankMatch `json:"matches"`
	Model   string      `json:"model"`
}
