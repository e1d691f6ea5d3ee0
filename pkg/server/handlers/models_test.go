package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/soundprediction/vettore/pkg/server/dto"
)

func TestModelsList(t *testing.T) {
	handler := NewModelsHandler("openai", "text-embedding-3-small")

	w := serveJSON(http.MethodGet, "/models", handler.List, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.ModelsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Models) == 0 {
		t.Fatal("expected a non-empty model catalog")
	}

	var active *dto.ModelInfo
	for i := range resp.Models {
		if resp.Models[i].Active {
			if active != nil {
				t.Fatalf("expected one active model, found %q and %q", active.ID, resp.Models[i].ID)
			}
			active = &resp.Models[i]
		}
		if resp.Models[i].Dimensions <= 0 {
			t.Errorf("model %q has no dimensions", resp.Models[i].ID)
		}
	}
	if active == nil {
		t.Fatal("expected the configured model to be marked active")
	}
	if active.ID != "text-embedding-3-small" || active.Provider != "openai" {
		t.Errorf("unexpected active model: %+v", active)
	}
}

func TestModelsListUnknownModelNotActive(t *testing.T) {
	handler := NewModelsHandler("openai_compatible", "my-finetuned-model")

	w := serveJSON(http.MethodGet, "/models", handler.List, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp dto.ModelsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, m := range resp.Models {
		if m.Active {
			t.Errorf("expected no catalog entry active for a custom model, got %q", m.ID)
		}
	}
}

func TestModelsOpenAIList(t *testing.T) {
	handler := NewModelsHandler("ollama", "all-minilm")

	w := serveJSON(http.MethodGet, "/v1/models", handler.OpenAIList, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.OpenAIModelsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Object != "list" {
		t.Errorf("expected object list, got %q", resp.Object)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected exactly the configured model, got %d entries", len(resp.Data))
	}
	if resp.Data[0].ID != "all-minilm" || resp.Data[0].Object != "model" {
		t.Errorf("unexpected model row: %+v", resp.Data[0])
	}
	if resp.Data[0].OwnedBy != "ollama" {
		t.Errorf("expected owned_by ollama, got %q", resp.Data[0].OwnedBy)
	}
}
