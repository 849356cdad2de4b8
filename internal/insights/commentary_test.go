package insights

import (
	"strings"
	"testing"

	"modelmon/internal/monitor"
)

func TestPortfolioCommentaryHealthy(t *testing.T) {
	got := PortfolioCommentary("Retail", 3, 2, 1, 0)
	if !strings.Contains(got, "Distribution: 67% Green, 33% Amber, 0% Red (3 models).") {
		t.Errorf("Distribution line wrong: %s", got)
	}
	if !strings.Contains(got, "Assessment: Healthy") {
		t.Errorf("Expected healthy assessment with 67%% green: %s", got)
	}
	if strings.Contains(got, "Risk:") {
		t.Errorf("No red models, should not include risk callout: %s", got)
	}
	if !strings.Contains(got, "Review: 1 Amber model need") {
		t.Errorf("Expected singular amber callout: %s", got)
	}
}

func TestPortfolioCommentaryElevatedRisk(t *testing.T) {
	got := PortfolioCommentary("SME", 3, 1, 0, 2)
	if !strings.Contains(got, "Risk: 2 models in Red require immediate review (KS < 0.2 or PSI > 0.25).") {
		t.Errorf("Risk callout wrong: %s", got)
	}
	if !strings.Contains(got, "Assessment: Elevated risk") {
		t.Errorf("Expected elevated risk with 67%% red: %s", got)
	}
}

func TestPortfolioCommentaryMixed(t *testing.T) {
	got := PortfolioCommentary("ECM", 5, 2, 2, 1)
	if !strings.Contains(got, "Assessment: Mixed") {
		t.Errorf("40%% green / 20%% red should assess mixed: %s", got)
	}
}

func TestPortfolioCommentaryEmpty(t *testing.T) {
	got := PortfolioCommentary("Retail", 0, 0, 0, 0)
	if got != "No model data for this portfolio." {
		t.Errorf("Unexpected empty-portfolio text: %s", got)
	}
}

func TestTrendCommentaryStable(t *testing.T) {
	c := TrendCommentary(monitor.TrendSeries{
		Vintages: []string{"2024-Q1", "2025-Q1"},
		KS:       []float64{0.45, 0.46},
		PSI:      []float64{0.020, 0.0205},
		Volume:   []int{15000, 15234},
		BadRate:  []float64{0.045, 0.046},
	})
	if !strings.Contains(c.KS, "KS trend: stable across vintages") {
		t.Errorf("KS commentary: %s", c.KS)
	}
	if c.Volume != "Volume trend: stable across vintages (latest 15,234)." {
		t.Errorf("Volume commentary: %s", c.Volume)
	}
	if !strings.Contains(c.BadRate, "stable") {
		t.Errorf("Bad rate commentary: %s", c.BadRate)
	}
}

func TestTrendCommentaryDirections(t *testing.T) {
	c := TrendCommentary(monitor.TrendSeries{
		Vintages: []string{"2024-Q1", "2025-Q1"},
		KS:       []float64{0.40, 0.50},
		PSI:      []float64{0.02, 0.05},
		Volume:   []int{10000, 12000},
		BadRate:  []float64{0.06, 0.04},
	})
	if c.KS != "KS trend: improving (+25.0)." {
		t.Errorf("KS commentary: %s", c.KS)
	}
	if !strings.Contains(c.PSI, "worsening (higher than desired)") {
		t.Errorf("Rising PSI should read as worsening: %s", c.PSI)
	}
	if c.Volume != "Volume trend: increased by 20.0% from first to latest vintage (latest: 12,000)." {
		t.Errorf("Volume commentary: %s", c.Volume)
	}
	if !strings.Contains(c.BadRate, "improving (lower is better)") {
		t.Errorf("Falling bad rate should read as improving: %s", c.BadRate)
	}
}

func TestTrendCommentaryTooShort(t *testing.T) {
	c := TrendCommentary(monitor.TrendSeries{Vintages: []string{"2025-Q1"}, KS: []float64{0.4}})
	if c.KS != "Not enough vintages to comment on KS trend." {
		t.Errorf("Single-point series: %s", c.KS)
	}
}

func TestDecileCommentary(t *testing.T) {
	good := []monitor.Decile{
		{Decile: 1, BadRate: 0.13},
		{Decile: 10, BadRate: 0.005},
	}
	got := DecileCommentary(good)
	if !strings.Contains(got, "Good separation across score deciles.") {
		t.Errorf("12.5pp gap should be good separation: %s", got)
	}

	moderate := []monitor.Decile{
		{Decile: 1, BadRate: 0.05},
		{Decile: 10, BadRate: 0.03},
	}
	got = DecileCommentary(moderate)
	if !strings.Contains(got, "Moderate separation") {
		t.Errorf("2pp gap should be moderate: %s", got)
	}

	if got := DecileCommentary(nil); got != "No decile data available for this model/vintage." {
		t.Errorf("Empty deciles: %s", got)
	}
}

func TestKSTriggerInsight(t *testing.T) {
	deciles := []monitor.Decile{
		{Decile: 1, BadRate: 0.13},
		{Decile: 10, BadRate: 0.01},
	}
	ks := 0.45
	if got := KSTriggerInsight(&ks, deciles); !strings.Contains(got, "above 0.3 threshold") {
		t.Errorf("Healthy KS: %s", got)
	}
	ks = 0.25
	if got := KSTriggerInsight(&ks, deciles); !strings.Contains(got, "amber: between 0.2 and 0.3") {
		t.Errorf("Amber KS: %s", got)
	}
	ks = 0.15
	if got := KSTriggerInsight(&ks, deciles); !strings.Contains(got, "red trigger: below 0.2") {
		t.Errorf("Red KS: %s", got)
	}
	if got := KSTriggerInsight(nil, deciles); got != "KS not available for this model/vintage." {
		t.Errorf("Missing KS: %s", got)
	}
}

func TestPSITriggerInsight(t *testing.T) {
	vars := []monitor.VariableRow{
		{Variable: "Age", PSI: 0.05, Status: monitor.StatusGreen},
		{Variable: "Income", PSI: 0.15, Status: monitor.StatusAmber},
		{Variable: "Utilization", PSI: 0.25, Status: monitor.StatusRed},
	}
	got := PSITriggerInsight(vars)
	if got != "PSI trigger is primarily driven by: Income, Utilization." {
		t.Errorf("Driver list wrong: %s", got)
	}
	allGreen := []monitor.VariableRow{{Variable: "Age", Status: monitor.StatusGreen}}
	if got := PSITriggerInsight(allGreen); got != "All variables are within acceptable PSI range (green)." {
		t.Errorf("All-green insight wrong: %s", got)
	}
}
