package policy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/redhat-et/zos-passticket/pkg/logger"
)

const testPolicy = `package passticket.authorization

default decision := {"allow": false, "reason": "application not permitted"}

decision := {"allow": true, "reason": "chat bot application"} if {
	input.application_id == "ZWECHATP"
	input.user_id != ""
}
`

func TestEvaluate(t *testing.T) {
	ctx := context.Background()
	gate, err := New(ctx, "test.rego", testPolicy, logger.Discard())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name   string
		input  Input
		allow  bool
		reason string
	}{
		{"allowed", Input{UserID: "IBMUSER", ApplicationID: "ZWECHATP"}, true, "chat bot application"},
		{"other application", Input{UserID: "IBMUSER", ApplicationID: "CICSPROD"}, false, "application not permitted"},
		{"empty user", Input{ApplicationID: "ZWECHATP"}, false, "application not permitted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := gate.Evaluate(ctx, tt.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if d.Allow != tt.allow || d.Reason != tt.reason {
				t.Fatalf("Expected allow=%t reason=%q, got allow=%t reason=%q", tt.allow, tt.reason, d.Allow, d.Reason)
			}
		})
	}
}

func TestEvaluateUndefinedDecisionDenies(t *testing.T) {
	ctx := context.Background()
	src := `package passticket.authorization

decision := {"allow": true} if {
	input.user_id == "NOBODY"
}
`
	gate, err := New(ctx, "partial.rego", src, logger.Discard())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	d, err := gate.Evaluate(ctx, Input{UserID: "IBMUSER", ApplicationID: "APPL"})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if d.Allow {
		t.Fatalf("Expected deny when no decision is produced")
	}
}

func TestEvaluateMalformedDecisionDenies(t *testing.T) {
	ctx := context.Background()
	src := `package passticket.authorization

decision := "yes"
`
	gate, err := New(ctx, "malformed.rego", src, logger.Discard())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	d, err := gate.Evaluate(ctx, Input{UserID: "IBMUSER", ApplicationID: "APPL"})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if d.Allow || d.Reason != "Invalid policy result format" {
		t.Fatalf("Expected deny for malformed result, got %+v", d)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passticket.rego")
	if err := os.WriteFile(path, []byte(testPolicy), 0o600); err != nil {
		t.Fatalf("Failed to write policy: %v", err)
	}
	if _, err := Load(context.Background(), path, logger.Discard()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := Load(context.Background(), path+".missing", logger.Discard()); err == nil {
		t.Fatalf("Expected error for missing policy file")
	}
}

func TestNewRejectsInvalidRego(t *testing.T) {
	if _, err := New(context.Background(), "bad.rego", "package passticket.authorization\n\ndecision := {", logger.Discard()); err == nil {
		t.Fatalf("Expected compile error")
	}
}

func TestShippedPolicy(t *testing.T) {
	ctx := context.Background()
	gate, err := Load(ctx, filepath.Join("..", "..", "genptkt", "policies", "passticket.rego"), logger.Discard())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	d, err := gate.Evaluate(ctx, Input{UserID: "IBMUSER", ApplicationID: "ZWECHATP"})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !d.Allow {
		t.Fatalf("Expected ZWECHATP to be permitted, got %+v", d)
	}

	d, err = gate.Evaluate(ctx, Input{UserID: "IBMUSER", ApplicationID: "TSO"})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if d.Allow {
		t.Fatalf("Expected TSO to be refused, got %+v", d)
	}
}
