package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"modelmon/internal/monitor"
)

const (
	sheetModels     = "Model Summary"
	sheetPortfolios = "Portfolio Summary"
)

// Workbook builds the spreadsheet export: the one-row-per-model view of
// the last summary fetch plus the portfolio rollup. With nothing to
// export it still produces a single placeholder sheet, never a zero-sheet
// file.
func Workbook(view ViewData) (*excelize.File, error) {
	f := excelize.NewFile()
	rows := monitor.OneRowPerModel(view.SummaryRows, view.SelectedVintage)

	if len(rows) == 0 && len(view.Portfolios) == 0 {
		f.SetSheetName("Sheet1", sheetModels)
		if err := f.SetCellValue(sheetModels, "A1", "No data"); err != nil {
			return nil, err
		}
		return f, nil
	}

	first := true
	addSheet := func(name string) error {
		if first {
			first = false
			return f.SetSheetName("Sheet1", name)
		}
		_, err := f.NewSheet(name)
		return err
	}

	if len(rows) > 0 {
		if err := addSheet(sheetModels); err != nil {
			return nil, err
		}
		if err := writeModelSheet(f, rows); err != nil {
			return nil, err
		}
	}
	if len(view.Portfolios) > 0 {
		if err := addSheet(sheetPortfolios); err != nil {
			return nil, err
		}
		if err := writePortfolioSheet(f, view.Portfolios); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeModelSheet(f *excelize.File, rows []monitor.MetricRow) error {
	header := []any{"Model ID", "Portfolio", "Model type", "Vintage", "Segment", "Status", "KS", "PSI", "AUC", "Other metrics"}
	if err := f.SetSheetRow(sheetModels, "A1", &header); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		record := []any{
			r.ModelID,
			r.Portfolio,
			r.ModelType,
			r.Vintage,
			r.Segment,
			string(monitor.RowStatus(r)),
			metricCell(r, "KS"),
			metricCell(r, "PSI"),
			metricCell(r, "AUC"),
			otherMetricsCell(r),
		}
		if err := f.SetSheetRow(sheetModels, cell, &record); err != nil {
			return err
		}
	}
	return nil
}

func writePortfolioSheet(f *excelize.File, portfolios []monitor.PortfolioSummary) error {
	header := []any{"Portfolio", "Models", "Green", "Amber", "Red", "Commentary"}
	if err := f.SetSheetRow(sheetPortfolios, "A1", &header); err != nil {
		return err
	}
	for i, p := range portfolios {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		record := []any{p.Portfolio, p.ModelCount, p.Green, p.Amber, p.Red, p.Commentary}
		if err := f.SetSheetRow(sheetPortfolios, cell, &record); err != nil {
			return err
		}
	}
	return nil
}

// metricCell returns the metric value, or nil for a blank cell when the
// model does not report it.
func metricCell(r monitor.MetricRow, name string) any {
	if v, ok := r.Metric(name); ok {
		return v
	}
	return nil
}

// Metrics every model reports through dedicated columns; the rest are
// folded into the pass-through column.
var primaryMetrics = map[string]bool{"KS": true, "PSI": true, "AUC": true}

func otherMetricsCell(r monitor.MetricRow) string {
	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		if !primaryMetrics[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := ""
	for i, name := range names {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%.4f", name, r.Metrics[name])
	}
	return out
}
