package types

import (
	"context"
	"encoding/json"
	"testing"
)

func TestContextKeys(t *testing.T) {
	ctx := context.Background()
	ctx = context.WithValue(ctx, ContextKeyUserID, "user-42")
	ctx = context.WithValue(ctx, ContextKeySessionID, "sess-7")
	ctx = context.WithValue(ctx, ContextKeyRequestSource, "api")

	if v, ok := ctx.Value(ContextKeyUserID).(string); !ok || v != "user-42" {
		t.Errorf("expected user-42, got %v", ctx.Value(ContextKeyUserID))
	}
	if v, ok := ctx.Value(ContextKeySessionID).(string); !ok || v != "sess-7" {
		t.Errorf("expected sess-7, got %v", ctx.Value(ContextKeySessionID))
	}
	if v, ok := ctx.Value(ContextKeyRequestSource).(string); !ok || v != "api" {
		t.Errorf("expected api, got %v", ctx.Value(ContextKeyRequestSource))
	}

	// A plain string key must not collide with the typed key
	if v := ctx.Value("user_id"); v != nil {
		t.Errorf("expected nil for untyped key, got %v", v)
	}
}

func TestEmbeddingUsageSerialization(t *testing.T) {
	usage := EmbeddingUsage{
		TextCount:       3,
		Characters:      120,
		EstimatedTokens: 30,
	}

	data, err := json.Marshal(usage)
	if err != nil {
		t.Fatalf("failed to marshal usage: %v", err)
	}

	var decoded EmbeddingUsage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal usage: %v", err)
	}

	if decoded != usage {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, usage)
	}
}

func TestEmbeddingUsageSummaryFields(t *testing.T) {
	summary := EmbeddingUsageSummary{
		Requests:        2,
		Texts:           5,
		Characters:      200,
		EstimatedTokens: 50,
		EstimatedCost:   0.000001,
	}

	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("failed to marshal summary: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("failed to unmarshal summary: %v", err)
	}

	for _, field := range []string{"requests", "texts", "characters", "estimated_tokens", "estimated_cost"} {
		if _, ok := m[field]; !ok {
			t.Errorf("expected field %q in JSON output", field)
		}
	}
}
