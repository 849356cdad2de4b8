package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"modelmon/internal/monitor"
)

func TestWriteDeckNoCharts(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDeck(&buf, "Model Monitoring", "", nil)
	if !errors.Is(err, ErrNoCharts) {
		t.Fatalf("Expected ErrNoCharts, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("No file should be written when there are no charts")
	}
}

func deckEntries(t *testing.T, buf *bytes.Buffer) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Deck is not a readable zip: %v", err)
	}
	entries := make(map[string]string, len(zr.File))
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			t.Fatalf("Cannot open %s: %v", zf.Name, err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		entries[zf.Name] = string(data)
	}
	return entries
}

func TestWriteDeckStructure(t *testing.T) {
	png, err := RAGPiePNG(3, 1, 1)
	if err != nil {
		t.Fatalf("RAGPiePNG failed: %v", err)
	}
	slides := []Slide{{Title: "Portfolio RAG distribution", PNG: png}}

	var buf bytes.Buffer
	if err := WriteDeck(&buf, "Model Monitoring", "Stable quarter.", slides); err != nil {
		t.Fatalf("WriteDeck failed: %v", err)
	}
	entries := deckEntries(t, &buf)

	// Title slide, commentary slide, one chart slide.
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/slide3.xml",
		"ppt/media/image3.png",
	} {
		if _, ok := entries[name]; !ok {
			t.Errorf("Deck missing part %s", name)
		}
	}
	if _, ok := entries["ppt/slides/slide4.xml"]; ok {
		t.Error("Unexpected fourth slide")
	}
	if !strings.Contains(entries["ppt/slides/slide1.xml"], "Model Monitoring") {
		t.Error("Title slide should carry the deck title")
	}
	if !strings.Contains(entries["ppt/slides/slide2.xml"], "Stable quarter.") {
		t.Error("Commentary slide should carry the commentary text")
	}
	if !strings.Contains(entries["ppt/slides/_rels/slide3.xml.rels"], "image3.png") {
		t.Error("Chart slide rels should reference its image")
	}
	if !strings.Contains(entries["ppt/presentation.xml"], `<p:sldId id="258"`) {
		t.Errorf("Presentation should list three slides: %s", entries["ppt/presentation.xml"])
	}
}

func TestWriteDeckSkipsCommentarySlideWhenEmpty(t *testing.T) {
	png, err := RAGPiePNG(1, 0, 0)
	if err != nil {
		t.Fatalf("RAGPiePNG failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteDeck(&buf, "Deck", "   ", []Slide{{Title: "Chart", PNG: png}}); err != nil {
		t.Fatalf("WriteDeck failed: %v", err)
	}
	entries := deckEntries(t, &buf)
	if _, ok := entries["ppt/slides/slide3.xml"]; ok {
		t.Error("Blank commentary must not produce a slide")
	}
	if !strings.Contains(entries["ppt/slides/slide2.xml"], "rId2") {
		t.Error("Second slide should be the chart slide")
	}
}

func TestWriteDeckEscapesTitles(t *testing.T) {
	png, err := RAGPiePNG(1, 0, 0)
	if err != nil {
		t.Fatalf("RAGPiePNG failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteDeck(&buf, `KS & PSI <review>`, "", []Slide{{Title: "Chart", PNG: png}}); err != nil {
		t.Fatalf("WriteDeck failed: %v", err)
	}
	entries := deckEntries(t, &buf)
	slide1 := entries["ppt/slides/slide1.xml"]
	if !strings.Contains(slide1, "KS &amp; PSI &lt;review&gt;") {
		t.Errorf("Title not escaped: %s", slide1)
	}
}

func TestChartSlides(t *testing.T) {
	view := ViewData{
		Portfolios: []monitor.PortfolioSummary{{Portfolio: "Retail", ModelCount: 3, Green: 2, Amber: 1}},
		Trends: &monitor.TrendSeries{
			ModelID:  "ACQ-RET-001",
			Vintages: []string{"2024-Q4", "2025-Q1"},
			KS:       []float64{0.44, 0.45},
			PSI:      []float64{0.02, 0.023},
			Volume:   []int{15000, 15234},
			BadRate:  []float64{0.044, 0.046},
		},
	}
	slides := ChartSlides(view)
	if len(slides) != 5 {
		t.Fatalf("Expected 5 slides (pie + 4 trends), got %d", len(slides))
	}
	for _, s := range slides {
		if len(s.PNG) == 0 {
			t.Errorf("Slide %q has no image", s.Title)
		}
		if !bytes.HasPrefix(s.PNG, []byte("\x89PNG")) {
			t.Errorf("Slide %q image is not a PNG", s.Title)
		}
	}
}

func TestChartSlidesSkipsUnrenderable(t *testing.T) {
	// No portfolio tallies and a single-point trend: only the volume bar
	// chart remains renderable.
	view := ViewData{
		Trends: &monitor.TrendSeries{
			ModelID:  "M1",
			Vintages: []string{"2025-Q1"},
			KS:       []float64{0.4},
			PSI:      []float64{0.02},
			Volume:   []int{1000},
			BadRate:  []float64{0.05},
		},
	}
	slides := ChartSlides(view)
	if len(slides) != 1 || slides[0].Title != "Volume trend" {
		t.Errorf("Expected only the volume chart, got %+v", len(slides))
	}

	if got := ChartSlides(ViewData{}); len(got) != 0 {
		t.Errorf("Empty view should yield no slides, got %d", len(got))
	}
}
