package web

import "testing"

func TestFormatSegMetric(t *testing.T) {
	metrics := map[string]float64{"KS": 0.0, "PSI": 0.1234}
	cases := []struct {
		name string
		want string
	}{
		{"KS", "0.0000"}, // zero is a real value, not an absent one
		{"PSI", "0.1234"},
		{"AUC", "-"},
	}
	for _, tc := range cases {
		if got := formatSegMetric(metrics, tc.name); got != tc.want {
			t.Errorf("formatSegMetric(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
