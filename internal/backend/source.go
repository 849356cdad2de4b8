// Package backend provides access to the model-monitoring metrics API:
// a live HTTP client, a deterministic mock provider for demo/offline use,
// and a fallback decorator that switches between the two.
package backend

import (
	"context"

	"modelmon/internal/monitor"
)

// SummaryParams filters the summary endpoint. Empty fields are omitted
// from the request.
type SummaryParams struct {
	Portfolio string
	ModelType string
	Vintage   string
	Segment   string
}

// DetailParams identifies one model/vintage drill-down.
type DetailParams struct {
	ModelID string
	Vintage string
	Segment string
}

// TrendParams identifies one model's trend series.
type TrendParams struct {
	ModelID string
	Segment string
}

// StabilityParams identifies a variable-stability report.
type StabilityParams struct {
	ModelID string
	Vintage string
}

// SegmentParams identifies a segment-level metrics report.
type SegmentParams struct {
	ModelID string
	Vintage string
}

// IngestRequest is a dataset upload: model coordinates plus the raw rows.
type IngestRequest struct {
	Portfolio string           `json:"portfolio"`
	ModelType string           `json:"model_type"`
	ModelID   string           `json:"model_id"`
	Vintage   string           `json:"vintage"`
	Data      []map[string]any `json:"data"`
}

// DataSource is the full surface the dashboard consumes. LiveSource,
// MockSource and FallbackSource all implement it.
type DataSource interface {
	FilterOptions(ctx context.Context) (*monitor.FilterOptions, error)
	Summary(ctx context.Context, p SummaryParams) ([]monitor.MetricRow, error)
	Detail(ctx context.Context, p DetailParams) (*monitor.DetailRecord, error)
	Models(ctx context.Context) ([]monitor.ModelInfo, error)
	Trends(ctx context.Context, p TrendParams) (*monitor.TrendSeries, error)
	VariableStability(ctx context.Context, p StabilityParams) (*monitor.StabilityReport, error)
	SegmentMetrics(ctx context.Context, p SegmentParams) (*monitor.SegmentReport, error)
	Chat(ctx context.Context, message string) (string, error)
	Ingest(ctx context.Context, req IngestRequest) (*monitor.IngestResult, error)
	GetDataset(ctx context.Context, id string) (*monitor.Dataset, error)
	RunQC(ctx context.Context, id string) (*monitor.QCResult, error)
	ScoreDataset(ctx context.Context, id string) (*monitor.ScoreResult, error)
	ComputeMetrics(ctx context.Context, datasetID, modelType string) (*monitor.ComputeResult, error)
}
