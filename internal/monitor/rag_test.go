package monitor

import "testing"

func f(v float64) *float64 { return &v }

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		ks   *float64
		psi  *float64
		want Status
	}{
		{"healthy", f(0.45), f(0.02), StatusGreen},
		{"green boundary", f(0.3), f(0.19), StatusGreen},
		{"psi at green limit drops to amber", f(0.35), f(0.2), StatusAmber},
		{"amber boundary", f(0.2), f(0.24), StatusAmber},
		{"ks on amber floor", f(0.25), f(0.22), StatusAmber},
		{"low ks", f(0.19), f(0.01), StatusRed},
		{"high psi", f(0.5), f(0.25), StatusRed},
		{"both missing", nil, nil, StatusRed},
		{"missing psi defaults worst case", f(0.9), nil, StatusRed},
		{"missing ks defaults worst case", nil, f(0.01), StatusRed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.ks, tc.psi); got != tc.want {
				t.Errorf("Classify(%v, %v) = %v, want %v", tc.ks, tc.psi, got, tc.want)
			}
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	// Every input must land on exactly one of the three statuses.
	for ks := -0.1; ks <= 1.0; ks += 0.05 {
		for psi := -0.1; psi <= 1.0; psi += 0.05 {
			got := Classify(f(ks), f(psi))
			if got != StatusGreen && got != StatusAmber && got != StatusRed {
				t.Fatalf("Classify(%v, %v) returned unknown status %q", ks, psi, got)
			}
		}
	}
}

func TestRowStatus(t *testing.T) {
	green := MetricRow{ModelID: "M1", Metrics: map[string]float64{"KS": 0.45, "PSI": 0.02}}
	if got := RowStatus(green); got != StatusGreen {
		t.Errorf("Expected green, got %v", got)
	}
	noMetrics := MetricRow{ModelID: "M2", Metrics: map[string]float64{"recovery_rate": 0.6}}
	if got := RowStatus(noMetrics); got != StatusRed {
		t.Errorf("Row without KS/PSI should be red, got %v", got)
	}
}

func TestVariableStatus(t *testing.T) {
	cases := []struct {
		psi  float64
		want Status
	}{
		{0.05, StatusGreen},
		{0.0999, StatusGreen},
		{0.1, StatusAmber},
		{0.19, StatusAmber},
		{0.2, StatusRed},
		{0.4, StatusRed},
	}
	for _, tc := range cases {
		if got := VariableStatus(tc.psi); got != tc.want {
			t.Errorf("VariableStatus(%v) = %v, want %v", tc.psi, got, tc.want)
		}
	}
}
