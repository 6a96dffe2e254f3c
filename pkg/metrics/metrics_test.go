package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestWriteTextfile(t *testing.T) {
	Generations.WithLabelValues(ResultIssued, "ZWECHATP").Inc()
	AuthorityStatus.WithLabelValues("0").Inc()

	path := filepath.Join(t.TempDir(), "passticket.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `passticket_generations_total{application="ZWECHATP",result="issued"}`) {
		t.Fatalf("Expected generations counter, got:\n%s", out)
	}
	if strings.Contains(out, "go_goroutines") {
		t.Fatalf("Expected no runtime collectors in registry, got:\n%s", out)
	}
}

func TestWriteTextfileBadPath(t *testing.T) {
	if err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "passticket.prom")); err == nil {
		t.Fatalf("Expected error for unwritable path")
	}
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(PolicyDecisions.WithLabelValues("deny"))
	PolicyDecisions.WithLabelValues("deny").Inc()
	if got := testutil.ToFloat64(PolicyDecisions.WithLabelValues("deny")); got != before+1 {
		t.Fatalf("Expected %v, got %v", before+1, got)
	}
}
