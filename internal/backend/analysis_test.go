package backend

import (
	"context"
	"errors"
	"testing"

	"modelmon/internal/monitor"
)

func TestFetchAnalysis(t *testing.T) {
	src := NewMockSource(0)
	b, err := FetchAnalysis(context.Background(), src, "ACQ-RET-001", "", "")
	if err != nil {
		t.Fatalf("FetchAnalysis failed: %v", err)
	}
	if b.Trends == nil || b.Detail == nil || b.Stability == nil {
		t.Errorf("Bundle is incomplete: %+v", b)
	}
}

// A failing sub-fetch must fail the whole bundle. For an unknown model
// the trend fetch succeeds with an empty series while the detail fetch
// returns not-found, so this exercises the partial-failure path.
func TestFetchAnalysisFailsAsAWhole(t *testing.T) {
	src := NewMockSource(0)
	b, err := FetchAnalysis(context.Background(), src, "NO-SUCH-MODEL", "", "")
	var nf *monitor.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected NotFoundError for an unknown model, got %v", err)
	}
	if b != nil {
		t.Errorf("Expected a nil bundle on failure, got %+v", b)
	}
}
