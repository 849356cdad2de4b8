package backend

import (
	"context"

	"golang.org/x/sync/errgroup"

	"modelmon/internal/monitor"
)

// AnalysisBundle is the combined payload behind the analysis view: trend
// series, model detail and variable stability for one model/vintage.
type AnalysisBundle struct {
	Trends    *monitor.TrendSeries
	Detail    *monitor.DetailRecord
	Stability *monitor.StabilityReport
}

// FetchAnalysis loads the three analysis payloads concurrently. Any
// failure cancels the remaining calls and fails the whole fetch; the view
// never renders a partial bundle.
func FetchAnalysis(ctx context.Context, src DataSource, modelID, vintage, segment string) (*AnalysisBundle, error) {
	g, ctx := errgroup.WithContext(ctx)
	var b AnalysisBundle

	g.Go(func() error {
		t, err := src.Trends(ctx, TrendParams{ModelID: modelID, Segment: segment})
		if err != nil {
			return err
		}
		b.Trends = t
		return nil
	})
	g.Go(func() error {
		d, err := src.Detail(ctx, DetailParams{ModelID: modelID, Vintage: vintage, Segment: segment})
		if err != nil {
			return err
		}
		b.Detail = d
		return nil
	})
	g.Go(func() error {
		s, err := src.VariableStability(ctx, StabilityParams{ModelID: modelID, Vintage: vintage})
		if err != nil {
			return err
		}
		b.Stability = s
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &b, nil
}
