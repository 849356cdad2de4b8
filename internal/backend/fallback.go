package backend

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"modelmon/internal/monitor"
)

// FallbackSource tries the live backend first and serves the mock
// equivalent when the live call fails, so callers never see the
// difference. The first completed live attempt latches a session-wide
// reachability flag; later failures still fall back per call but do not
// re-probe or re-log.
//
// Chat is the one exception: unless mock mode is forced, chat errors
// surface directly, because canned replies posing as the real assistant
// would be misleading.
type FallbackSource struct {
	live      DataSource
	mock      *MockSource
	forceMock bool

	probeOnce sync.Once
	probed    atomic.Bool
	reachable atomic.Bool

	// OnFallback, when set, is invoked with the operation name each time
	// a live call fails and the mock answer is served. Used for metrics.
	OnFallback func(op string)
}

// NewFallbackSource wires the live client and the mock provider together.
// With forceMock set the live backend is never contacted.
func NewFallbackSource(live DataSource, mock *MockSource, forceMock bool) *FallbackSource {
	return &FallbackSource{live: live, mock: mock, forceMock: forceMock}
}

// Reachable reports the latched backend reachability and whether a live
// call has completed yet.
func (f *FallbackSource) Reachable() (reachable, known bool) {
	if f.forceMock {
		return false, true
	}
	return f.reachable.Load(), f.probed.Load()
}

// ForceMock reports whether live calls are disabled by configuration.
func (f *FallbackSource) ForceMock() bool {
	return f.forceMock
}

func (f *FallbackSource) latch(ok bool) {
	f.probeOnce.Do(func() {
		f.reachable.Store(ok)
		f.probed.Store(true)
		if ok {
			log.Info().Msg("Backend reachable, serving live data")
		} else {
			log.Warn().Msg("Backend unreachable, serving demo fixtures")
		}
	})
}

func (f *FallbackSource) noteFallback(op string, err error) {
	log.Debug().Str("op", op).Err(err).Msg("Live call failed, using mock data")
	if f.OnFallback != nil {
		f.OnFallback(op)
	}
}

// fallback runs the live variant of an operation and, on any error, the
// mock variant. Context cancellation is not treated as backend failure.
func fallback[T any](f *FallbackSource, ctx context.Context, op string, live func() (T, error), mock func() (T, error)) (T, error) {
	if f.forceMock {
		return mock()
	}
	v, err := live()
	if err != nil && ctx.Err() != nil {
		return v, err
	}
	f.latch(err == nil)
	if err != nil {
		f.noteFallback(op, err)
		return mock()
	}
	return v, nil
}

func (f *FallbackSource) FilterOptions(ctx context.Context) (*monitor.FilterOptions, error) {
	return fallback(f, ctx, "filter-options",
		func() (*monitor.FilterOptions, error) { return f.live.FilterOptions(ctx) },
		func() (*monitor.FilterOptions, error) { return f.mock.FilterOptions(ctx) })
}

func (f *FallbackSource) Summary(ctx context.Context, p SummaryParams) ([]monitor.MetricRow, error) {
	return fallback(f, ctx, "summary",
		func() ([]monitor.MetricRow, error) { return f.live.Summary(ctx, p) },
		func() ([]monitor.MetricRow, error) { return f.mock.Summary(ctx, p) })
}

func (f *FallbackSource) Detail(ctx context.Context, p DetailParams) (*monitor.DetailRecord, error) {
	return fallback(f, ctx, "detail",
		func() (*monitor.DetailRecord, error) { return f.live.Detail(ctx, p) },
		func() (*monitor.DetailRecord, error) { return f.mock.Detail(ctx, p) })
}

func (f *FallbackSource) Models(ctx context.Context) ([]monitor.ModelInfo, error) {
	return fallback(f, ctx, "models",
		func() ([]monitor.ModelInfo, error) { return f.live.Models(ctx) },
		func() ([]monitor.ModelInfo, error) { return f.mock.Models(ctx) })
}

func (f *FallbackSource) Trends(ctx context.Context, p TrendParams) (*monitor.TrendSeries, error) {
	return fallback(f, ctx, "trends",
		func() (*monitor.TrendSeries, error) { return f.live.Trends(ctx, p) },
		func() (*monitor.TrendSeries, error) { return f.mock.Trends(ctx, p) })
}

func (f *FallbackSource) VariableStability(ctx context.Context, p StabilityParams) (*monitor.StabilityReport, error) {
	return fallback(f, ctx, "variable-stability",
		func() (*monitor.StabilityReport, error) { return f.live.VariableStability(ctx, p) },
		func() (*monitor.StabilityReport, error) { return f.mock.VariableStability(ctx, p) })
}

func (f *FallbackSource) SegmentMetrics(ctx context.Context, p SegmentParams) (*monitor.SegmentReport, error) {
	return fallback(f, ctx, "segments",
		func() (*monitor.SegmentReport, error) { return f.live.SegmentMetrics(ctx, p) },
		func() (*monitor.SegmentReport, error) { return f.mock.SegmentMetrics(ctx, p) })
}

func (f *FallbackSource) Chat(ctx context.Context, message string) (string, error) {
	if f.forceMock {
		return f.mock.Chat(ctx, message)
	}
	reply, err := f.live.Chat(ctx, message)
	if err == nil || ctx.Err() == nil {
		f.latch(err == nil)
	}
	return reply, err
}

func (f *FallbackSource) Ingest(ctx context.Context, req IngestRequest) (*monitor.IngestResult, error) {
	return fallback(f, ctx, "ingest",
		func() (*monitor.IngestResult, error) { return f.live.Ingest(ctx, req) },
		func() (*monitor.IngestResult, error) { return f.mock.Ingest(ctx, req) })
}

func (f *FallbackSource) GetDataset(ctx context.Context, id string) (*monitor.Dataset, error) {
	return fallback(f, ctx, "dataset",
		func() (*monitor.Dataset, error) { return f.live.GetDataset(ctx, id) },
		func() (*monitor.Dataset, error) { return f.mock.GetDataset(ctx, id) })
}

func (f *FallbackSource) RunQC(ctx context.Context, id string) (*monitor.QCResult, error) {
	return fallback(f, ctx, "qc",
		func() (*monitor.QCResult, error) { return f.live.RunQC(ctx, id) },
		func() (*monitor.QCResult, error) { return f.mock.RunQC(ctx, id) })
}

func (f *FallbackSource) ScoreDataset(ctx context.Context, id string) (*monitor.ScoreResult, error) {
	return fallback(f, ctx, "score",
		func() (*monitor.ScoreResult, error) { return f.live.ScoreDataset(ctx, id) },
		func() (*monitor.ScoreResult, error) { return f.mock.ScoreDataset(ctx, id) })
}

func (f *FallbackSource) ComputeMetrics(ctx context.Context, datasetID, modelType string) (*monitor.ComputeResult, error) {
	return fallback(f, ctx, "compute-metrics",
		func() (*monitor.ComputeResult, error) { return f.live.ComputeMetrics(ctx, datasetID, modelType) },
		func() (*monitor.ComputeResult, error) { return f.mock.ComputeMetrics(ctx, datasetID, modelType) })
}
