package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/vettore"
	"github.com/soundprediction/vettore/pkg/embedder"
	"github.com/soundprediction/vettore/pkg/server/dto"
)

func newTestEmbedHandler(t *testing.T) (*EmbedHandler, *embedder.MockEmbedder) {
	t.Helper()

	mock := embedder.NewMockEmbedder(embedder.Config{})
	client, err := vettore.NewClient(mock, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewEmbedHandler(client, "mock-model"), mock
}

// serveJSON routes one request through a fresh gin engine and returns the
// recorded response.
func serveJSON(method, path string, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Handle(method, path, handler)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEmbedReturnsVectors(t *testing.T) {
	handler, mock := newTestEmbedHandler(t)

	w := serveJSON(http.MethodPost, "/embeddings", handler.Embed, `{"texts":["first","second"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.EmbedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Count != 2 || len(resp.Embeddings) != 2 {
		t.Errorf("expected 2 embeddings, got count=%d len=%d", resp.Count, len(resp.Embeddings))
	}
	if resp.Dimensions != 4 || len(resp.Embeddings[0]) != 4 {
		t.Errorf("expected 4 dimensions, got %d and %d", resp.Dimensions, len(resp.Embeddings[0]))
	}
	if resp.Model != "mock-model" {
		t.Errorf("expected model mock-model, got %q", resp.Model)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 provider call, got %d", mock.CallCount())
	}
}

func TestEmbedRejectsEmptyTexts(t *testing.T) {
	handler, mock := newTestEmbedHandler(t)

	for _, body := range []string{`{"texts":[]}`, `{}`, `not json`} {
		w := serveJSON(http.MethodPost, "/embeddings", handler.Embed, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected status 400, got %d", body, w.Code)
		}
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no provider calls for rejected requests, got %d", mock.CallCount())
	}
}

func TestEmbedMapsProviderErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"authentication", embedder.NewAuthenticationError("bad key"), http.StatusUnauthorized, "authentication_failed"},
		{"rate limit", embedder.NewRateLimitError(), http.StatusTooManyRequests, "rate_limited"},
		{"provider call", embedder.NewProviderCallError("failed after 3 retries", 4, nil), http.StatusBadGateway, "provider_call_failed"},
		{"dependency missing", embedder.NewDependencyMissingError("no backend"), http.StatusServiceUnavailable, "provider_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mock := newTestEmbedHandler(t)
			mock.SetError(tt.err)

			w := serveJSON(http.MethodPost, "/embeddings", handler.Embed, `{"texts":["a"]}`)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}

			var resp dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error != tt.wantCode {
				t.Errorf("expected error code %q, got %q", tt.wantCode, resp.Error)
			}
		})
	}
}

func TestSimilarityScoresTexts(t *testing.T) {
	handler, mock := newTestEmbedHandler(t)
	mock.EnqueueResponse([][]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
	})

	w := serveJSON(http.MethodPost, "/similarity", handler.Similarity, `{"text_a":"x","text_b":"y"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.SimilarityResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if math.Abs(resp.Score) > 1e-6 {
		t.Errorf("expected score 0 for orthogonal vectors, got %v", resp.Score)
	}
	if resp.Model != "mock-model" {
		t.Errorf("expected model mock-model, got %q", resp.Model)
	}
}

func TestSimilarityRejectsBlankText(t *testing.T) {
	handler, _ := newTestEmbedHandler(t)

	w := serveJSON(http.MethodPost, "/similarity", handler.Similarity, `{"text_a":"  ","text_b":"y"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestRankReturnsOrderedMatches(t *testing.T) {
	handler, mock := newTestEmbedHandler(t)
	mock.EnqueueResponse([][]float32{
		{1, 0, 0, 0}, // query
		{0, 1, 0, 0}, // orthogonal
		{1, 1, 0, 0}, // 45 degrees
		{1, 0, 0, 0}, // parallel
	})

	w := serveJSON(http.MethodPost, "/rank", handler.Rank,
		`{"query":"q","candidates":["far","near","exact"],"top_k":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.RankResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(resp.Matches))
	}
	if resp.Matches[0].Text != "exact" || resp.Matches[0].Index != 2 {
		t.Errorf("expected the parallel candidate first, got %+v", resp.Matches[0])
	}
	if resp.Matches[1].Text != "near" {
		t.Errorf("expected the 45 degree candidate second, got %+v", resp.Matches[1])
	}
}

func TestRankRejectsMissingCandidates(t *testing.T) {
	handler, _ := newTestEmbedHandler(t)

	w := serveJSON(http.MethodPost, "/rank", handler.Rank, `{"query":"q"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestOpenAIEmbedSingleString(t *testing.T) {
	handler, _ := newTestEmbedHandler(t)

	w := serveJSON(http.MethodPost, "/v1/embeddings", handler.OpenAIEmbed,
		`{"input":"hello","model":"text-embedding-3-small"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.OpenAIEmbedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Object != "list" {
		t.Errorf("expected object list, got %q", resp.Object)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 embedding, got %d", len(resp.Data))
	}
	if resp.Data[0].Object != "embedding" || resp.Data[0].Index != 0 {
		t.Errorf("unexpected data row: %+v", resp.Data[0])
	}
	if len(resp.Data[0].Embedding) != 4 {
		t.Errorf("expected 4 dimensions, got %d", len(resp.Data[0].Embedding))
	}
	if resp.Usage.PromptTokens != len("hello")/4 {
		t.Errorf("expected %d prompt tokens, got %d", len("hello")/4, resp.Usage.PromptTokens)
	}
}

func TestOpenAIEmbedArray(t *testing.T) {
	handler, mock := newTestEmbedHandler(t)

	w := serveJSON(http.MethodPost, "/v1/embeddings", handler.OpenAIEmbed, `{"input":["a","b"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp dto.OpenAIEmbedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 embeddings, got %d", len(resp.Data))
	}
	if resp.Data[1].Index != 1 {
		t.Errorf("expected index 1 on second row, got %d", resp.Data[1].Index)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 provider call, got %d", mock.CallCount())
	}
}

func TestOpenAIEmbedRejectsBase64(t *testing.T) {
	handler, _ := newTestEmbedHandler(t)

	w := serveJSON(http.MethodPost, "/v1/embeddings", handler.OpenAIEmbed,
		`{"input":"a","encoding_format":"base64"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
