package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateUUID(t *testing.T) {
	a := GenerateUUID()
	b := GenerateUUID()

	if a == b {
		t.Error("expected distinct UUIDs")
	}

	parsed, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("generated UUID does not parse: %v", err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected UUID version 7, got %d", parsed.Version())
	}
}
