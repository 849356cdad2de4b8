package monitor

import (
	"reflect"
	"testing"
)

func row(modelID, portfolio, vintage, segment string, ks, psi float64) MetricRow {
	return MetricRow{
		ModelID:   modelID,
		Portfolio: portfolio,
		Vintage:   vintage,
		Segment:   segment,
		Metrics:   map[string]float64{"KS": ks, "PSI": psi},
	}
}

func TestOneRowPerModelPrefersSelectedVintage(t *testing.T) {
	rows := []MetricRow{
		row("M1", "Retail", "2025-Q1", "", 0.45, 0.02),
		row("M1", "Retail", "2024-Q4", "", 0.44, 0.02),
	}
	out := OneRowPerModel(rows, "2024-Q4")
	if len(out) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(out))
	}
	if out[0].Vintage != "2024-Q4" {
		t.Errorf("Expected selected vintage 2024-Q4, got %s", out[0].Vintage)
	}
}

func TestOneRowPerModelFallsBackToLatestVintage(t *testing.T) {
	rows := []MetricRow{
		row("M1", "Retail", "2024-Q4", "", 0.44, 0.02),
		row("M1", "Retail", "2025-Q1", "", 0.45, 0.02),
	}
	// Selected vintage absent from the data: latest wins.
	out := OneRowPerModel(rows, "2023-Q1")
	if len(out) != 1 || out[0].Vintage != "2025-Q1" {
		t.Fatalf("Expected single 2025-Q1 row, got %+v", out)
	}
	// No selection at all: latest wins too.
	out = OneRowPerModel(rows, "")
	if len(out) != 1 || out[0].Vintage != "2025-Q1" {
		t.Fatalf("Expected single 2025-Q1 row, got %+v", out)
	}
}

func TestOneRowPerModelIsOrderIndependent(t *testing.T) {
	rows := []MetricRow{
		row("M1", "Retail", "2025-Q1", "thin_file", 0.39, 0.03),
		row("M1", "Retail", "2025-Q1", "", 0.45, 0.02),
		row("M1", "Retail", "2024-Q4", "", 0.44, 0.02),
		row("M2", "SME", "2025-Q1", "", 0.31, 0.05),
	}
	want := OneRowPerModel(rows, "")

	// Reversed input must produce the identical result.
	reversed := make([]MetricRow, len(rows))
	for i, r := range rows {
		reversed[len(rows)-1-i] = r
	}
	got := OneRowPerModel(reversed, "")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduction depends on input order:\n fwd %+v\n rev %+v", want, got)
	}
	if want[0].Segment != "" {
		t.Errorf("Unsegmented row should win the vintage tie, got segment %q", want[0].Segment)
	}
}

func TestPortfolioAggregate(t *testing.T) {
	rows := []MetricRow{
		row("M1", "Retail", "2025-Q1", "", 0.45, 0.02), // green
		row("M2", "Retail", "2025-Q1", "", 0.22, 0.22), // amber
		row("M3", "SME", "2025-Q1", "", 0.15, 0.30),    // red
		row("M1", "Retail", "2024-Q4", "", 0.44, 0.02), // older vintage, collapsed away
	}
	out := PortfolioAggregate(rows, nil)
	if len(out) != 2 {
		t.Fatalf("Expected 2 portfolios, got %d", len(out))
	}
	if out[0].Portfolio != "Retail" || out[1].Portfolio != "SME" {
		t.Errorf("Expected portfolios sorted by name, got %v then %v", out[0].Portfolio, out[1].Portfolio)
	}
	retail := out[0]
	if retail.ModelCount != 2 || retail.Green != 1 || retail.Amber != 1 || retail.Red != 0 {
		t.Errorf("Retail rollup wrong: %+v", retail)
	}
	sme := out[1]
	if sme.ModelCount != 1 || sme.Red != 1 {
		t.Errorf("SME rollup wrong: %+v", sme)
	}
}

func TestPortfolioAggregateIsPermutationInvariant(t *testing.T) {
	rows := []MetricRow{
		row("M1", "Retail", "2025-Q1", "", 0.45, 0.02),
		row("M2", "Retail", "2025-Q1", "", 0.22, 0.22),
		row("M3", "SME", "2025-Q1", "", 0.15, 0.30),
		row("M3", "SME", "2024-Q4", "", 0.35, 0.05),
	}
	want := PortfolioAggregate(rows, nil)

	perms := [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, p := range perms {
		shuffled := make([]MetricRow, len(rows))
		for i, idx := range p {
			shuffled[i] = rows[idx]
		}
		got := PortfolioAggregate(shuffled, nil)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Aggregate depends on input order for permutation %v", p)
		}
	}
}

func TestPortfolioAggregateCommentary(t *testing.T) {
	rows := []MetricRow{row("M1", "Retail", "2025-Q1", "", 0.45, 0.02)}
	out := PortfolioAggregate(rows, func(portfolio string, modelCount, green, amber, red int) string {
		if portfolio != "Retail" || modelCount != 1 || green != 1 {
			t.Errorf("Commentary called with wrong tallies: %s %d %d/%d/%d", portfolio, modelCount, green, amber, red)
		}
		return "ok"
	})
	if out[0].Commentary != "ok" {
		t.Errorf("Commentary not attached: %+v", out[0])
	}
}
