package alert

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/soundprediction/vettore/pkg/config"
)

func TestEmailAlerter_Disabled(t *testing.T) {
	alerter := NewEmailAlerter(config.AlertConfig{Enabled: false})
	if err := alerter.Alert("subject", "message"); err != nil {
		t.Errorf("disabled alerter should be a no-op, got error: %v", err)
	}
}

func TestLogAlerter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	alerter := NewLogAlerter(logger)
	if err := alerter.Alert("Circuit Breaker Tripped", "too many failures"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Circuit Breaker Tripped") {
		t.Errorf("expected subject in log output, got: %s", out)
	}
	if !strings.Contains(out, "too many failures") {
		t.Errorf("expected message in log output, got: %s", out)
	}
}

func TestLogAlerter_NilLogger(t *testing.T) {
	alerter := NewLogAlerter(nil)
	if err := alerter.Alert("subject", "message"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNoOpAlerter(t *testing.T) {
	var alerter Alerter = &NoOpAlerter{}
	if err := alerter.Alert("subject", "message"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
