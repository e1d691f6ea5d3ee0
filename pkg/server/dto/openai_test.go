package dto

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestOpenAIEmbedRequestTexts(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"single string", `"hello"`, []string{"hello"}, false},
		{"array of strings", `["a", "b"]`, []string{"a", "b"}, false},
		{"empty array", `[]`, nil, true},
		{"number", `42`, nil, true},
		{"array of numbers", `[1, 2]`, nil, true},
		{"object", `{"text": "hello"}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := OpenAIEmbedRequest{Input: json.RawMessage(tt.input)}

			got, err := req.Texts()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for input %s", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d texts, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("text %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestOpenAIEmbedRequestTextsMissingInput(t *testing.T) {
	req := OpenAIEmbedRequest{}

	if _, err := req.Texts(); !errors.Is(err, ErrEmptyTexts) {
		t.Fatalf("expected ErrEmptyTexts, got %v", err)
	}
}
