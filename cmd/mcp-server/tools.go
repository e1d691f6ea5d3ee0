package main

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
)

// Tool request/response types

// EmbedTextRequest represents the parameters for embedding one text
type EmbedTextRequest struct {
	Text string `json:"text"`
}

// EmbedTextsRequest represents the parameters for embedding a batch of texts
type EmbedTextsRequest struct {
	Texts []string `json:"texts"`
}

// SimilarityRequest represents the parameters for scoring two texts
type SimilarityRequest struct {
	TextA string `json:"text_a"`
	TextB string `json:"text_b"`
}

// RankRequest represents the parameters for ranking candidates against a query
type RankRequest struct {
	Query      string   `json:"query"`
	Candidates []string `json:"candidates"`
	TopK       int      `json:"top_k,omitempty"`
}

// UsageReportRequest has no parameters
type UsageReportRequest struct{}

// Response types

// ToolResponse is a generic response wrapper
type ToolResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// EmbedTextTool embeds a single text and returns its vector
func (s *MCPServer) EmbedTextTool(ctx *ai.ToolContext, input *EmbedTextRequest) (*ToolResponse, error) {
	// Validate required fields
	if input.Text == "" {
		return &ToolResponse{
			Success: false,
			Error:   "Text is required",
		}, nil
	}

	vector, err := s.client.EmbedSingle(context.Background(), input.Text)
	if err != nil {
		s.logger.Error("Failed to embed text", "error", err)
		return &ToolResponse{
			Success: false,
			Error:   fmt.Sprintf("Failed to embed text: %v", err),
		}, nil
	}

	return &ToolResponse{
		Success: true,
		Message: "Text embedded successfully",
		Data: map[string]interface{}{
			"embedding":  vector,
			"dimensions": len(vector),
			"model":      s.config.Model,
		},
	}, nil
}

// EmbedTextsTool embeds a batch of texts and returns index-aligned vectors
func (s *MCPServer) EmbedTextsTool(ctx *ai.ToolContext, input *EmbedTextsRequest) (*ToolResponse, error) {
	// Validate required fields
	if len(input.Texts) == 0 {
		return &ToolResponse{
			Success: false,
			Error:   "Texts is required",
		}, nil
	}

	vectors, err := s.client.Embed(context.Background(), input.Texts)
	if err != nil {
		s.logger.Error("Failed to embed texts", "error", err, "count", len(input.Texts))
		return &ToolResponse{
			Success: false,
			Error:   fmt.Sprintf("Failed to embed texts: %v", err),
		}, nil
	}

	s.logger.Info("Texts embedded successfully", "count", len(vectors))
	return &ToolResponse{
		Success: true,
		Message: fmt.Sprintf("Embedded %d texts", len(vectors)),
		Data: map[string]interface{}{
			"embeddings": vectors,
			"count":      len(vectors),
			"model":      s.config.Model,
		},
	}, nil
}

// SimilarityTool scores the semantic similarity of two texts
func (s *MCPServer) SimilarityTool(ctx *ai.ToolContext, input *SimilarityRequest) (*ToolResponse, error) {
	// Validate required fields
	if input.TextA == "" || input.TextB == "" {
		return &ToolResponse{
			Success: false,
			Error:   "Both TextA and TextB are required",
		}, nil
	}

	score, err := s.client.Similarity(context.Background(), input.TextA, input.TextB)
	if err != nil {
		s.logger.Error("Failed to score similarity", "error", err)
		return &ToolResponse{
			Success: false,
			Error:   fmt.Sprintf("Failed to score similarity: %v", err),
		}, nil
	}

	return &ToolResponse{
		Success: true,
		Message: "Similarity scored successfully",
		Data: map[string]interface{}{
			"score": score,
			"model": s.config.Model,
		},
	}, nil
}

// RankTool ranks candidate texts by similarity to a query
func (s *MCPServer) RankTool(ctx *ai.ToolContext, input *RankRequest) (*ToolResponse, error) {
	// Validate required fields
	if input.Query == "" {
		return &ToolResponse{
			Success: false,
			Error:   "Query is required",
		}, nil
	}
	if len(input.Candidates) == 0 {
		return &ToolResponse{
			Success: false,
			Error:   "Candidates is required",
		}, nil
	}

	matches, err := s.client.MostSimilar(context.Background(), input.Query, input.Candidates, input.TopK)
	if err != nil {
		s.logger.Error("Failed to rank candidates", "error", err)
		return &ToolResponse{
			Success: false,
			Error:   fmt.Sprintf("Failed to rank candidates: %v", err),
		}, nil
	}

	// Format results
	results := make([]map[string]interface{}, len(matches))
	for i, match := range matches {
		results[i] = map[string]interface{}{
			"index": match.Index,
			"text":  match.Text,
			"score": match.Score,
		}
	}

	return &ToolResponse{
		Success: true,
		Message: fmt.Sprintf("Ranked %d candidates", len(matches)),
		Data: map[string]interface{}{
			"matches": results,
			"model":   s.config.Model,
		},
	}, nil
}

// UsageReportTool reports cumulative embedding usage for this session
func (s *MCPServer) UsageReportTool(ctx *ai.ToolContext, input *UsageReportRequest) (*ToolResponse, error) {
	usage := s.client.Usage()

	return &ToolResponse{
		Success: true,
		Message: "Usage retrieved successfully",
		Data: map[string]interface{}{
			"requests":         usage.Requests,
			"texts":            usage.Texts,
			"characters":       usage.Characters,
			"estimated_tokens": usage.EstimatedTokens,
			"estimated_cost":   usage.EstimatedCost,
		},
	}, nil
}
