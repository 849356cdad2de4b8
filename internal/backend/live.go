package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"modelmon/internal/monitor"
)

// LiveConfig holds connection settings for the metrics backend.
type LiveConfig struct {
	BaseURL string
	Timeout time.Duration
}

// LiveSource talks to the real metrics backend over HTTP.
type LiveSource struct {
	cfg        LiveConfig
	httpClient *http.Client
}

// NewLiveSource creates a client for the backend at cfg.BaseURL.
func NewLiveSource(cfg LiveConfig) *LiveSource {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &LiveSource{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *LiveSource) getJSON(ctx context.Context, op, path string, params url.Values, out any) error {
	u := c.cfg.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(op, req, out)
}

func (c *LiveSource) postJSON(ctx context.Context, op, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(op, req, out)
}

func (c *LiveSource) do(op string, req *http.Request, out any) error {
	log.Debug().Str("op", op).Str("url", req.URL.String()).Msg("Backend request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &monitor.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The backend reports errors as {"error": "..."}.
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &monitor.APIError{Op: op, Status: resp.StatusCode, Message: payload.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode backend response: %w", op, err)
	}
	return nil
}

// asNotFound converts a 404 APIError to a typed NotFoundError; other
// errors pass through unchanged.
func asNotFound(err error, kind, id string) error {
	var apiErr *monitor.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return &monitor.NotFoundError{Kind: kind, ID: id}
	}
	return err
}

func (c *LiveSource) FilterOptions(ctx context.Context) (*monitor.FilterOptions, error) {
	var out monitor.FilterOptions
	if err := c.getJSON(ctx, "filter-options", "/api/filter-options", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LiveSource) Summary(ctx context.Context, p SummaryParams) ([]monitor.MetricRow, error) {
	params := url.Values{}
	if p.Portfolio != "" {
		params.Set("portfolio", p.Portfolio)
	}
	if p.ModelType != "" {
		params.Set("model_type", p.ModelType)
	}
	if p.Vintage != "" {
		params.Set("vintage", p.Vintage)
	}
	if p.Segment != "" {
		params.Set("segment", p.Segment)
	}
	var out struct {
		Metrics []monitor.MetricRow `json:"metrics"`
	}
	if err := c.getJSON(ctx, "summary", "/api/metrics/summary", params, &out); err != nil {
		return nil, err
	}
	return out.Metrics, nil
}

func (c *LiveSource) Detail(ctx context.Context, p DetailParams) (*monitor.DetailRecord, error) {
	params := url.Values{}
	params.Set("vintage", p.Vintage)
	if p.Segment != "" {
		params.Set("segment", p.Segment)
	}
	var out monitor.DetailRecord
	err := c.getJSON(ctx, "detail", "/api/metrics/detail/"+url.PathEscape(p.ModelID), params, &out)
	if err != nil {
		return nil, asNotFound(err, "model", p.ModelID)
	}
	return &out, nil
}

func (c *LiveSource) Models(ctx context.Context) ([]monitor.ModelInfo, error) {
	var out struct {
		Models []monitor.ModelInfo `json:"models"`
	}
	if err := c.getJSON(ctx, "models", "/api/models", nil, &out); err != nil {
		return nil, err
	}
	return out.Models, nil
}

func (c *LiveSource) Trends(ctx context.Context, p TrendParams) (*monitor.TrendSeries, error) {
	params := url.Values{}
	params.Set("model_id", p.ModelID)
	if p.Segment != "" {
		params.Set("segment", p.Segment)
	}
	var out monitor.TrendSeries
	if err := c.getJSON(ctx, "trends", "/api/metrics/trends", params, &out); err != nil {
		return nil, asNotFound(err, "model", p.ModelID)
	}
	return &out, nil
}

func (c *LiveSource) VariableStability(ctx context.Context, p StabilityParams) (*monitor.StabilityReport, error) {
	params := url.Values{}
	params.Set("model_id", p.ModelID)
	params.Set("vintage", p.Vintage)
	var out monitor.StabilityReport
	if err := c.getJSON(ctx, "variable-stability", "/api/metrics/variable-stability", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LiveSource) SegmentMetrics(ctx context.Context, p SegmentParams) (*monitor.SegmentReport, error) {
	params := url.Values{}
	params.Set("model_id", p.ModelID)
	params.Set("vintage", p.Vintage)
	var out monitor.SegmentReport
	if err := c.getJSON(ctx, "segments", "/api/metrics/segments", params, &out); err != nil {
		return nil, asNotFound(err, "segment data for model", p.ModelID)
	}
	return &out, nil
}

func (c *LiveSource) Chat(ctx context.Context, message string) (string, error) {
	body := map[string]string{"message": message}
	var out struct {
		Reply string `json:"reply"`
	}
	if err := c.postJSON(ctx, "chat", "/api/chat", body, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

func (c *LiveSource) Ingest(ctx context.Context, req IngestRequest) (*monitor.IngestResult, error) {
	// The backend nests row counts under metadata.
	var out struct {
		DatasetID string `json:"dataset_id"`
		Status    string `json:"status"`
		Message   string `json:"message"`
		Metadata  struct {
			RowCount int `json:"row_count"`
		} `json:"metadata"`
	}
	if err := c.postJSON(ctx, "ingest", "/api/ingest", req, &out); err != nil {
		return nil, err
	}
	rowCount := out.Metadata.RowCount
	if rowCount == 0 {
		rowCount = len(req.Data)
	}
	return &monitor.IngestResult{
		DatasetID: out.DatasetID,
		Status:    out.Status,
		Message:   out.Message,
		RowCount:  rowCount,
	}, nil
}

func (c *LiveSource) GetDataset(ctx context.Context, id string) (*monitor.Dataset, error) {
	var out struct {
		DatasetID string `json:"dataset_id"`
		Metadata  struct {
			Portfolio string `json:"portfolio"`
			ModelType string `json:"model_type"`
			ModelID   string `json:"model_id"`
			Vintage   string `json:"vintage"`
		} `json:"metadata"`
		QCStatus  monitor.QCStatus `json:"qc_status"`
		RowCount  int              `json:"row_count"`
		HasScores bool             `json:"has_scores"`
	}
	if err := c.getJSON(ctx, "dataset", "/api/dataset/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, asNotFound(err, "dataset", id)
	}
	return &monitor.Dataset{
		DatasetID: out.DatasetID,
		Portfolio: out.Metadata.Portfolio,
		ModelType: out.Metadata.ModelType,
		ModelID:   out.Metadata.ModelID,
		Vintage:   out.Metadata.Vintage,
		RowCount:  out.RowCount,
		QCStatus:  out.QCStatus,
		HasScores: out.HasScores,
	}, nil
}

func (c *LiveSource) RunQC(ctx context.Context, id string) (*monitor.QCResult, error) {
	var out monitor.QCResult
	if err := c.postJSON(ctx, "qc", "/api/qc/"+url.PathEscape(id), map[string]any{}, &out); err != nil {
		return nil, asNotFound(err, "dataset", id)
	}
	return &out, nil
}

func (c *LiveSource) ScoreDataset(ctx context.Context, id string) (*monitor.ScoreResult, error) {
	var out monitor.ScoreResult
	if err := c.postJSON(ctx, "score", "/api/score-dataset/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, asNotFound(err, "dataset", id)
	}
	return &out, nil
}

func (c *LiveSource) ComputeMetrics(ctx context.Context, datasetID, modelType string) (*monitor.ComputeResult, error) {
	body := map[string]string{
		"dataset_id": datasetID,
		"model_type": modelType,
	}
	var out monitor.ComputeResult
	if err := c.postJSON(ctx, "compute-metrics", "/api/compute-metrics", body, &out); err != nil {
		return nil, asNotFound(err, "dataset", datasetID)
	}
	return &out, nil
}
