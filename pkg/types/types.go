package types

// ContextKey is a typed key for request-scoped metadata carried in a
// context.Context. A dedicated type avoids collisions with keys defined
// by other packages.
type ContextKey string

const (
	// ContextKeyUserID attributes a request to an end user.
	ContextKeyUserID ContextKey = "user_id"
	// ContextKeySessionID groups requests belonging to one session.
	ContextKeySessionID ContextKey = "session_id"
	// ContextKeyRequestSource records where a request originated
	// (e.g. "api", "cli", "mcp").
	ContextKeyRequestSource ContextKey = "request_source"
)

// EmbeddingUsage holds usage figures for a single embedding request. The
// embeddings APIs report no token counts for inputs, so token figures are
// estimates derived from the text.
type EmbeddingUsage struct {
	TextCount       int `json:"text_count"`
	Characters      int `json:"characters"`
	EstimatedTokens int `json:"estimated_tokens"`
}

// EmbeddingUsageSummary holds cumulative usage totals across requests.
type EmbeddingUsageSummary struct {
	Requests        int     `json:"requests"`
	Texts           int     `json:"texts"`
	Characters      int     `json:"characters"`
	EstimatedTokens int     `json:"estimated_tokens"`
	EstimatedCost   float64 `json:"estimated_cost"`
}
