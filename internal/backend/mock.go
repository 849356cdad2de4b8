package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"modelmon/internal/insights"
	"modelmon/internal/monitor"
)

// Simulated latencies, so demo mode feels like a real backend. Scaled by
// the configured factor (zero disables them entirely).
const (
	mockBaseDelay    = 300 * time.Millisecond
	mockQCDelay      = 800 * time.Millisecond
	mockScoreDelay   = 1000 * time.Millisecond
	mockComputeDelay = 1200 * time.Millisecond
	mockChatDelay    = 500 * time.Millisecond
)

// MockSource serves deterministic demo fixtures plus an in-memory dataset
// registry for the upload workflow. Safe for concurrent use.
type MockSource struct {
	delayScale float64

	mu       sync.Mutex
	datasets map[string]*monitor.Dataset
	nextID   int
}

// NewMockSource creates a mock provider. delayScale multiplies the
// simulated latencies; pass 0 for instant responses in tests.
func NewMockSource(delayScale float64) *MockSource {
	return &MockSource{
		delayScale: delayScale,
		datasets:   make(map[string]*monitor.Dataset),
		nextID:     1,
	}
}

func (m *MockSource) wait(ctx context.Context, base time.Duration) error {
	d := time.Duration(float64(base) * m.delayScale)
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func (m *MockSource) FilterOptions(ctx context.Context) (*monitor.FilterOptions, error) {
	if err := m.wait(ctx, mockBaseDelay); err != nil {
		return nil, err
	}
	out := fixtureFilterOptions
	return &out, nil
}

func (m *MockSource) Summary(ctx context.Context, p SummaryParams) ([]monitor.MetricRow, error) {
	if err := m.wait(ctx, mockBaseDelay); err != nil {
		return nil, err
	}
	out := make([]monitor.MetricRow, 0, len(fixtureSummary))
	for _, r := range fixtureSummary {
		if p.Portfolio != "" && r.Portfolio != p.Portfolio {
			continue
		}
		if p.ModelType != "" && r.ModelType != p.ModelType {
			continue
		}
		if p.Vintage != "" && r.Vintage != p.Vintage {
			continue
		}
		if p.Segment != "" && r.Segment != p.Segment {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *MockSource) Detail(ctx context.Context, p DetailParams) (*monitor.DetailRecord, error) {
	if err := m.wait(ctx, mockBaseDelay); err != nil {
		return nil, err
	}
	rec, ok := fixtureDetail[p.ModelID]
	if !ok {
		return nil, &monitor.NotFoundError{Kind: "model", ID: p.ModelID}
	}
	if rec.KSTriggerInsight == "" {
		var ks *float64
		if v, found := rec.Metrics["KS"]; found {
			ks = &v
		}
		rec.KSTriggerInsight = insights.KSTriggerInsight(ks, rec.Deciles)
	}
	return &rec, nil
}

func (m *MockSource) Models(ctx context.Context) ([]monitor.ModelInfo, error) {
	if err := m.wait(ctx, mockBaseDelay); err != nil {
		return nil, err
	}
	out := make([]monitor.ModelInfo, len(fixtureModels))
	copy(out, fixtureModels)
	return out, nil
}

func (m *MockSource) Trends(ctx context.Context, p TrendParams) (*monitor.TrendSeries, error) {
	if err := m.wait(ctx, mockBaseDelay); err != nil {
		return nil, err
	}
	series := &monitor.TrendSeries{ModelID: p.ModelID}
	for _, pt := range fixtureTrends[p.ModelID] {
		series.Vintages = append(series.Vintages, pt.vintage)
		series.KS = append(series.KS, pt.ks)
		series.PSI = append(series.PSI, pt.psi)
		series.Volume = append(series.Volume, pt.volume)
		series.BadRate = append(series.BadRate, pt.badRate)
	}
	if len(series.Vintages) > 0 {
		series.Commentary = insights.TrendCommentary(*series)
	}
	return series, nil
}

func (m *MockSource) VariableStability(ctx context.Context, p StabilityParams) (*monitor.StabilityReport, error) {
	if err := m.wait(ctx, mockBaseDelay); err != nil {
		return nil, err
	}
	report := &monitor.StabilityReport{
		ModelID: p.ModelID,
		Vintage: p.Vintage,
	}
	for _, v := range fixtureVariableStability[p.ModelID] {
		v.Status = monitor.VariableStatus(v.PSI)
		report.Variables = append(report.Variables, v)
	}
	report.PSITriggerInsight = insights.PSITriggerInsight(report.Variables)
	return report, nil
}

func (m *MockSource) SegmentMetrics(ctx context.Context, p SegmentParams) (*monitor.SegmentReport, error) {
	if err := m.wait(ctx, mockBaseDelay); err != nil {
		return nil, err
	}
	report, ok := fixtureSegments[p.ModelID]
	if !ok {
		return nil, &monitor.NotFoundError{Kind: "segment data for model", ID: p.ModelID}
	}
	report.Vintage = p.Vintage
	return &report, nil
}

func (m *MockSource) Chat(ctx context.Context, message string) (string, error) {
	if err := m.wait(ctx, mockChatDelay); err != nil {
		return "", err
	}
	return chatReply(message), nil
}

func (m *MockSource) Ingest(ctx context.Context, req IngestRequest) (*monitor.IngestResult, error) {
	if err := m.wait(ctx, mockBaseDelay); err != nil {
		return nil, err
	}
	m.mu.Lock()
	id := fmt.Sprintf("DS-%d", m.nextID)
	m.nextID++
	hasScores := false
	if len(req.Data) > 0 {
		_, hasScores = req.Data[0]["score"]
	}
	m.datasets[id] = &monitor.Dataset{
		DatasetID: id,
		Portfolio: req.Portfolio,
		ModelType: req.ModelType,
		ModelID:   req.ModelID,
		Vintage:   req.Vintage,
		RowCount:  len(req.Data),
		QCStatus:  monitor.QCPending,
		HasScores: hasScores,
	}
	m.mu.Unlock()
	return &monitor.IngestResult{
		DatasetID: id,
		Status:    "success",
		Message:   fmt.Sprintf("Ingested %d rows", len(req.Data)),
		RowCount:  len(req.Data),
	}, nil
}

func (m *MockSource) GetDataset(ctx context.Context, id string) (*monitor.Dataset, error) {
	if err := m.wait(ctx, mockBaseDelay); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ds, ok := m.datasets[id]
	if !ok {
		return nil, &monitor.NotFoundError{Kind: "dataset", ID: id}
	}
	out := *ds
	return &out, nil
}

func (m *MockSource) RunQC(ctx context.Context, id string) (*monitor.QCResult, error) {
	if err := m.wait(ctx, mockQCDelay); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ds, ok := m.datasets[id]
	if !ok {
		return nil, &monitor.NotFoundError{Kind: "dataset", ID: id}
	}
	if ds.RowCount == 0 {
		ds.QCStatus = monitor.QCFailed
		return &monitor.QCResult{
			Pass:    false,
			Reason:  "empty_data",
			Details: "No records in dataset",
		}, nil
	}
	ds.QCStatus = monitor.QCPassed
	return &monitor.QCResult{
		Pass:     true,
		Details:  "All required columns present, no nulls detected",
		RowCount: ds.RowCount,
	}, nil
}

func (m *MockSource) ScoreDataset(ctx context.Context, id string) (*monitor.ScoreResult, error) {
	if err := m.wait(ctx, mockScoreDelay); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ds, ok := m.datasets[id]
	if !ok {
		return nil, &monitor.NotFoundError{Kind: "dataset", ID: id}
	}
	ds.HasScores = true
	return &monitor.ScoreResult{
		DatasetID: id,
		Status:    "scored",
		RowCount:  ds.RowCount,
	}, nil
}

func (m *MockSource) ComputeMetrics(ctx context.Context, datasetID, modelType string) (*monitor.ComputeResult, error) {
	if err := m.wait(ctx, mockComputeDelay); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ds, ok := m.datasets[datasetID]
	if !ok {
		return nil, &monitor.NotFoundError{Kind: "dataset", ID: datasetID}
	}
	ds.MetricsComputed = true
	if modelType == "" {
		modelType = ds.ModelType
	}
	metrics := make(map[string]float64, len(fixtureComputedMetrics))
	for k, v := range fixtureComputedMetrics {
		metrics[k] = v
	}
	return &monitor.ComputeResult{
		ModelID:    ds.ModelID,
		Portfolio:  ds.Portfolio,
		ModelType:  modelType,
		Vintage:    ds.Vintage,
		ComputedAt: time.Now().UTC().Format(time.RFC3339),
		Volume:     ds.RowCount,
		Metrics:    metrics,
	}, nil
}
