package monitor

import "encoding/json"

// MetricRow is one computed metrics record for a model, vintage and
// optional segment, as returned by the summary endpoint. Metric names are
// backend-defined; KS and PSI are the ones the dashboard reasons about,
// everything else is passed through for display.
type MetricRow struct {
	ModelID   string             `json:"model_id"`
	Portfolio string             `json:"portfolio"`
	ModelType string             `json:"model_type"`
	Vintage   string             `json:"vintage"`
	Segment   string             `json:"segment,omitempty"`
	Volume    int                `json:"volume,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Metric returns the named metric value and whether it is present.
func (r MetricRow) Metric(name string) (float64, bool) {
	v, ok := r.Metrics[name]
	return v, ok
}

// Decile is one row of a score-decile table. Decile 1 is the highest risk
// band, decile 10 the lowest.
type Decile struct {
	Decile   int     `json:"decile"`
	Count    int     `json:"count"`
	BadCount int     `json:"bad_count"`
	BadRate  float64 `json:"bad_rate"`
}

// FeatureImportance is a single entry of an ML model's importance ranking.
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// Explainability carries feature importances for ML model types.
type Explainability struct {
	FeatureImportance []FeatureImportance `json:"feature_importance"`
	ImportanceDrift   float64             `json:"importance_drift"`
}

// DetailRecord is the full drill-down for one model/vintage: the summary
// metrics plus decile table, generated commentary and, for ML models,
// explainability.
type DetailRecord struct {
	MetricRow
	Deciles          []Decile        `json:"deciles,omitempty"`
	DecileCommentary string          `json:"decile_commentary,omitempty"`
	KSTriggerInsight string          `json:"ks_trigger_insight,omitempty"`
	Explainability   *Explainability `json:"explainability,omitempty"`
}

// TrendCommentary holds the per-metric commentary lines attached to a
// trend series.
type TrendCommentary struct {
	Volume  string `json:"volume_commentary"`
	KS      string `json:"ks_commentary"`
	PSI     string `json:"psi_commentary"`
	BadRate string `json:"bad_rate_commentary"`
}

// TrendSeries is the per-vintage history of a single model. The four
// value slices are parallel to Vintages.
type TrendSeries struct {
	ModelID    string           `json:"model_id"`
	Vintages   []string         `json:"vintages"`
	KS         []float64        `json:"ks"`
	PSI        []float64        `json:"psi"`
	Volume     []int            `json:"volume"`
	BadRate    []float64        `json:"bad_rate"`
	Commentary *TrendCommentary `json:"commentary,omitempty"`
}

// QCStatus is the quality-check state of an ingested dataset.
type QCStatus string

const (
	QCPending QCStatus = "pending"
	QCPassed  QCStatus = "passed"
	QCFailed  QCStatus = "failed"
)

// Dataset tracks an uploaded dataset through the ingest/QC/score/compute
// workflow.
type Dataset struct {
	DatasetID       string   `json:"dataset_id"`
	Portfolio       string   `json:"portfolio"`
	ModelType       string   `json:"model_type"`
	ModelID         string   `json:"model_id"`
	Vintage         string   `json:"vintage"`
	RowCount        int      `json:"row_count"`
	QCStatus        QCStatus `json:"qc_status"`
	HasScores       bool     `json:"has_scores"`
	MetricsComputed bool     `json:"metrics_computed"`
}

// SegmentOption is a segment filter choice. The backend returns these as
// {value, label} objects while older fixture payloads use bare strings;
// UnmarshalJSON accepts both.
type SegmentOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (s *SegmentOption) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Value = str
		s.Label = str
		return nil
	}
	type alias SegmentOption
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = SegmentOption(a)
	return nil
}

// FilterOptions lists the choices for the dashboard filter bar.
type FilterOptions struct {
	Portfolios []string        `json:"portfolios"`
	ModelTypes []string        `json:"model_types"`
	Vintages   []string        `json:"vintages"`
	Segments   []SegmentOption `json:"segments"`
}

// ModelInfo identifies one registered model.
type ModelInfo struct {
	ModelID   string `json:"model_id"`
	Portfolio string `json:"portfolio"`
	ModelType string `json:"model_type"`
}

// VariableRow is the stability record for one input variable.
type VariableRow struct {
	Variable string  `json:"variable"`
	PSI      float64 `json:"psi"`
	MeanDev  float64 `json:"mean_dev,omitempty"`
	MeanProd float64 `json:"mean_prod,omitempty"`
	Drift    float64 `json:"drift,omitempty"`
	Status   Status  `json:"status"`
}

// StabilityReport is the variable-level stability view for a model and
// vintage, with the generated PSI trigger insight.
type StabilityReport struct {
	ModelID           string        `json:"model_id"`
	Vintage           string        `json:"vintage"`
	Variables         []VariableRow `json:"variables"`
	PSITriggerInsight string        `json:"psi_trigger_insight"`
}

// SegmentMetrics is one segment's slice of a segment-level report.
type SegmentMetrics struct {
	Segment string             `json:"segment"`
	Label   string             `json:"label,omitempty"`
	Volume  int                `json:"volume,omitempty"`
	Metrics map[string]float64 `json:"metrics"`
}

// SegmentReport holds segment-level metrics for models that support
// segmentation.
type SegmentReport struct {
	ModelID   string           `json:"model_id"`
	Vintage   string           `json:"vintage"`
	ModelType string           `json:"model_type,omitempty"`
	Segments  []SegmentMetrics `json:"segments"`
}

// IngestResult is the backend acknowledgement of a dataset upload.
type IngestResult struct {
	DatasetID string `json:"dataset_id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	RowCount  int    `json:"row_count,omitempty"`
}

// QCResult is the outcome of running quality checks on a dataset.
type QCResult struct {
	Pass     bool   `json:"pass"`
	Reason   string `json:"reason,omitempty"`
	Details  string `json:"details,omitempty"`
	RowCount int    `json:"row_count,omitempty"`
}

// ScoreResult is the outcome of scoring a dataset.
type ScoreResult struct {
	DatasetID string `json:"dataset_id"`
	Status    string `json:"status"`
	RowCount  int    `json:"row_count"`
}

// ComputeResult is the metrics record produced by compute-metrics.
type ComputeResult struct {
	ModelID    string             `json:"model_id"`
	Portfolio  string             `json:"portfolio,omitempty"`
	ModelType  string             `json:"model_type"`
	Vintage    string             `json:"vintage"`
	ComputedAt string             `json:"computed_at,omitempty"`
	Volume     int                `json:"volume,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}
