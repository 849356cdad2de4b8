// Package export turns the dashboard's view state into downloadable
// artifacts: an Excel workbook and a PNG-chart slide deck.
package export

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"modelmon/internal/monitor"
)

// RAG palette shared by the pie chart and the dashboard badges.
var (
	colorGreen = drawing.Color{R: 0x2e, G: 0x7d, B: 0x32, A: 255}
	colorAmber = drawing.Color{R: 0xf9, G: 0xa8, B: 0x25, A: 255}
	colorRed   = drawing.Color{R: 0xc6, G: 0x28, B: 0x28, A: 255}
	colorLine  = drawing.Color{R: 0x1e, G: 0x3a, B: 0x5f, A: 255}
)

// LineChartPNG renders one metric series across vintages. At least two
// points are required to draw a line.
func LineChartPNG(title string, vintages []string, values []float64) ([]byte, error) {
	if len(values) < 2 || len(vintages) != len(values) {
		return nil, fmt.Errorf("line chart %q needs at least 2 labelled points", title)
	}
	xs := make([]float64, len(values))
	ticks := make([]chart.Tick, len(values))
	for i := range values {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: vintages[i]}
	}
	ch := chart.Chart{
		Title:      title,
		Width:      900,
		Height:     480,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 8}},
		XAxis:      chart.XAxis{Ticks: ticks},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: values,
				Style: chart.Style{
					StrokeColor: colorLine,
					StrokeWidth: 2.5,
					DotColor:    colorLine,
					DotWidth:    4,
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BarChartPNG renders one bar per vintage; used for volume.
func BarChartPNG(title string, vintages []string, values []float64) ([]byte, error) {
	if len(values) == 0 || len(vintages) != len(values) {
		return nil, fmt.Errorf("bar chart %q needs labelled values", title)
	}
	bars := make([]chart.Value, len(values))
	for i, v := range values {
		bars[i] = chart.Value{Value: v, Label: vintages[i], Style: chart.Style{FillColor: colorLine, StrokeColor: colorLine}}
	}
	ch := chart.BarChart{
		Title:      title,
		Width:      900,
		Height:     480,
		BarWidth:   60,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 8}},
		Bars:       bars,
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RAGPiePNG renders the green/amber/red distribution. Zero-count slices
// are dropped; an all-zero distribution cannot be drawn.
func RAGPiePNG(green, amber, red int) ([]byte, error) {
	type slice struct {
		label string
		count int
		color drawing.Color
	}
	var values []chart.Value
	for _, s := range []slice{
		{"Green", green, colorGreen},
		{"Amber", amber, colorAmber},
		{"Red", red, colorRed},
	} {
		if s.count > 0 {
			values = append(values, chart.Value{
				Value: float64(s.count),
				Label: fmt.Sprintf("%s (%d)", s.label, s.count),
				Style: chart.Style{FillColor: s.color},
			})
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("rag pie needs at least one non-zero tally")
	}
	ch := chart.PieChart{
		Title:  "RAG distribution",
		Width:  600,
		Height: 600,
		Values: values,
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Slide is a rendered chart destined for one deck slide.
type Slide struct {
	Title string
	PNG   []byte
}

// ChartSlides renders the fixed chart list from the view state. Charts
// that cannot be drawn from the available data are skipped, not errors.
func ChartSlides(view ViewData) []Slide {
	var slides []Slide
	add := func(title string, png []byte, err error) {
		if err == nil {
			slides = append(slides, Slide{Title: title, PNG: png})
		}
	}

	var green, amber, red int
	for _, p := range view.Portfolios {
		green += p.Green
		amber += p.Amber
		red += p.Red
	}
	png, err := RAGPiePNG(green, amber, red)
	add("Portfolio RAG distribution", png, err)

	if t := view.Trends; t != nil {
		png, err = LineChartPNG("KS trend: "+t.ModelID, t.Vintages, t.KS)
		add("KS trend", png, err)
		png, err = LineChartPNG("PSI trend: "+t.ModelID, t.Vintages, t.PSI)
		add("PSI trend", png, err)
		png, err = LineChartPNG("Bad rate trend: "+t.ModelID, t.Vintages, t.BadRate)
		add("Bad rate trend", png, err)
		vols := make([]float64, len(t.Volume))
		for i, v := range t.Volume {
			vols[i] = float64(v)
		}
		png, err = BarChartPNG("Volume trend: "+t.ModelID, t.Vintages, vols)
		add("Volume trend", png, err)
	}
	return slides
}

// ViewData is the mutex-guarded snapshot the web layer maintains for the
// export endpoints: the last fetched summary, portfolio rollup, trend
// series and the analyst's free-text commentary.
type ViewData struct {
	SummaryRows     []monitor.MetricRow
	SelectedVintage string
	Portfolios      []monitor.PortfolioSummary
	Trends          *monitor.TrendSeries
	Commentary      string
}
