package monitor

import "sort"

// OneRowPerModel collapses metric rows to a single row per model. When
// selectedVintage is non-empty a row matching it wins; otherwise the
// lexically greatest vintage wins (vintage labels sort chronologically).
// Output is sorted by model id, so the result does not depend on input
// order.
func OneRowPerModel(rows []MetricRow, selectedVintage string) []MetricRow {
	byModel := make(map[string]MetricRow, len(rows))
	for _, r := range rows {
		cur, ok := byModel[r.ModelID]
		if !ok || preferRow(r, cur, selectedVintage) {
			byModel[r.ModelID] = r
		}
	}
	out := make([]MetricRow, 0, len(byModel))
	for _, r := range byModel {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ModelID < out[j].ModelID
	})
	return out
}

// preferRow reports whether candidate should replace current for the same
// model. Ties on vintage break on the segment label so that the overall
// (unsegmented) row wins over segment slices regardless of input order.
func preferRow(candidate, current MetricRow, selectedVintage string) bool {
	if selectedVintage != "" {
		candSel := candidate.Vintage == selectedVintage
		curSel := current.Vintage == selectedVintage
		if candSel != curSel {
			return candSel
		}
	}
	if candidate.Vintage != current.Vintage {
		return candidate.Vintage > current.Vintage
	}
	return candidate.Segment < current.Segment
}

// PortfolioSummary is the per-portfolio RAG rollup shown on the dashboard
// and exported to the workbook.
type PortfolioSummary struct {
	Portfolio  string `json:"portfolio"`
	ModelCount int    `json:"model_count"`
	Green      int    `json:"green"`
	Amber      int    `json:"amber"`
	Red        int    `json:"red"`
	Commentary string `json:"commentary,omitempty"`
}

// CommentaryFunc produces the commentary line for one portfolio rollup.
type CommentaryFunc func(portfolio string, modelCount, green, amber, red int) string

// PortfolioAggregate groups rows by portfolio, collapses each group to one
// row per model (latest vintage) and tallies RAG statuses. The result is
// sorted by portfolio name and independent of input order. commentary may
// be nil.
func PortfolioAggregate(rows []MetricRow, commentary CommentaryFunc) []PortfolioSummary {
	byPortfolio := make(map[string][]MetricRow)
	for _, r := range rows {
		byPortfolio[r.Portfolio] = append(byPortfolio[r.Portfolio], r)
	}

	out := make([]PortfolioSummary, 0, len(byPortfolio))
	for name, group := range byPortfolio {
		s := PortfolioSummary{Portfolio: name}
		for _, r := range OneRowPerModel(group, "") {
			s.ModelCount++
			switch RowStatus(r) {
			case StatusGreen:
				s.Green++
			case StatusAmber:
				s.Amber++
			default:
				s.Red++
			}
		}
		if commentary != nil {
			s.Commentary = commentary(name, s.ModelCount, s.Green, s.Amber, s.Red)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Portfolio < out[j].Portfolio
	})
	return out
}
