package export

import (
	"bytes"
	"testing"
)

func TestLineChartPNG(t *testing.T) {
	png, err := LineChartPNG("KS trend", []string{"2024-Q4", "2025-Q1"}, []float64{0.44, 0.45})
	if err != nil {
		t.Fatalf("LineChartPNG failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("Output is not a PNG")
	}
}

func TestLineChartPNGRejectsShortSeries(t *testing.T) {
	if _, err := LineChartPNG("KS", []string{"2025-Q1"}, []float64{0.4}); err == nil {
		t.Error("Single point should not render a line")
	}
	if _, err := LineChartPNG("KS", []string{"a", "b"}, []float64{0.4}); err == nil {
		t.Error("Mismatched labels should be rejected")
	}
}

func TestBarChartPNG(t *testing.T) {
	png, err := BarChartPNG("Volume", []string{"2025-Q1"}, []float64{15234})
	if err != nil {
		t.Fatalf("BarChartPNG failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("Output is not a PNG")
	}
	if _, err := BarChartPNG("Volume", nil, nil); err == nil {
		t.Error("Empty bars should be rejected")
	}
}

func TestRAGPiePNG(t *testing.T) {
	png, err := RAGPiePNG(4, 1, 1)
	if err != nil {
		t.Fatalf("RAGPiePNG failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("Output is not a PNG")
	}
}

func TestRAGPiePNGAllZero(t *testing.T) {
	if _, err := RAGPiePNG(0, 0, 0); err == nil {
		t.Error("All-zero tallies cannot be drawn")
	}
}
