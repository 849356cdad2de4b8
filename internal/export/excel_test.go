package export

import (
	"reflect"
	"testing"

	"modelmon/internal/monitor"
)

func summaryRow(id, portfolio, vintage string, ks, psi float64) monitor.MetricRow {
	return monitor.MetricRow{
		ModelID:   id,
		Portfolio: portfolio,
		ModelType: "Scorecard",
		Vintage:   vintage,
		Metrics:   map[string]float64{"KS": ks, "PSI": psi, "AUC": 0.8, "bad_rate": 0.05},
	}
}

func TestWorkbookEmptyViewGetsPlaceholder(t *testing.T) {
	f, err := Workbook(ViewData{})
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}
	sheets := f.GetSheetList()
	if !reflect.DeepEqual(sheets, []string{"Model Summary"}) {
		t.Fatalf("Empty view should produce exactly one sheet, got %v", sheets)
	}
	got, err := f.GetCellValue("Model Summary", "A1")
	if err != nil || got != "No data" {
		t.Errorf("Expected No data placeholder, got %q (%v)", got, err)
	}
}

func TestWorkbookSheets(t *testing.T) {
	view := ViewData{
		SummaryRows: []monitor.MetricRow{
			summaryRow("M1", "Retail", "2025-Q1", 0.45, 0.02),
			summaryRow("M1", "Retail", "2024-Q4", 0.44, 0.02),
			summaryRow("M2", "SME", "2025-Q1", 0.15, 0.30),
		},
		Portfolios: []monitor.PortfolioSummary{
			{Portfolio: "Retail", ModelCount: 1, Green: 1, Commentary: "fine"},
			{Portfolio: "SME", ModelCount: 1, Red: 1, Commentary: "review"},
		},
	}
	f, err := Workbook(view)
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}
	sheets := f.GetSheetList()
	if !reflect.DeepEqual(sheets, []string{"Model Summary", "Portfolio Summary"}) {
		t.Fatalf("Sheets wrong: %v", sheets)
	}

	// Collapsed to one row per model: header plus two records.
	if v, _ := f.GetCellValue("Model Summary", "A2"); v != "M1" {
		t.Errorf("A2 = %q, want M1", v)
	}
	if v, _ := f.GetCellValue("Model Summary", "D2"); v != "2025-Q1" {
		t.Errorf("Latest vintage should win, got %q", v)
	}
	if v, _ := f.GetCellValue("Model Summary", "A3"); v != "M2" {
		t.Errorf("A3 = %q, want M2", v)
	}
	if v, _ := f.GetCellValue("Model Summary", "A4"); v != "" {
		t.Errorf("Expected only two data rows, found %q in A4", v)
	}
	if v, _ := f.GetCellValue("Model Summary", "F3"); v != "red" {
		t.Errorf("M2 status should be red, got %q", v)
	}

	if v, _ := f.GetCellValue("Portfolio Summary", "A2"); v != "Retail" {
		t.Errorf("Portfolio row wrong: %q", v)
	}
	if v, _ := f.GetCellValue("Portfolio Summary", "F3"); v != "review" {
		t.Errorf("Commentary cell wrong: %q", v)
	}
}

func TestWorkbookPortfoliosOnly(t *testing.T) {
	view := ViewData{
		Portfolios: []monitor.PortfolioSummary{{Portfolio: "Retail", ModelCount: 2, Green: 2}},
	}
	f, err := Workbook(view)
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}
	sheets := f.GetSheetList()
	if !reflect.DeepEqual(sheets, []string{"Portfolio Summary"}) {
		t.Fatalf("Sheets wrong: %v", sheets)
	}
}

func TestOtherMetricsCell(t *testing.T) {
	r := summaryRow("M1", "Retail", "2025-Q1", 0.45, 0.02)
	r.Metrics["recovery_rate"] = 0.6234
	got := otherMetricsCell(r)
	want := "bad_rate=0.0500, recovery_rate=0.6234"
	if got != want {
		t.Errorf("otherMetricsCell = %q, want %q", got, want)
	}
}
