// Package workflow sequences the dataset lifecycle: upload, quality
// checks, scoring and metric computation. Steps unlock strictly in order
// and never re-lock; failures leave the remaining steps locked.
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"modelmon/internal/backend"
	"modelmon/internal/monitor"
)

// State is the lifecycle position of the current dataset.
type State string

const (
	StateIdle            State = "idle"
	StateIngested        State = "ingested"
	StateQCPassed        State = "qc_passed"
	StateQCFailed        State = "qc_failed"
	StateScored          State = "scored"
	StateMetricsComputed State = "metrics_computed"
)

// ErrStepLocked is returned when a step runs before its predecessor has
// unlocked it. No network call is made in that case.
var ErrStepLocked = fmt.Errorf("workflow step not unlocked yet")

// Note is the user-facing outcome of the most recent run of a step.
type Note struct {
	Text  string
	IsErr bool
}

// Status is a point-in-time snapshot of the workflow for rendering.
type Status struct {
	DatasetID       string
	State           State
	QCUnlocked      bool
	ScoreUnlocked   bool
	ComputeUnlocked bool
	Notes           map[string]Note // keyed by step: upload, qc, score, compute
}

// Controller drives one dataset at a time through the workflow. Safe for
// concurrent use by HTTP handlers.
type Controller struct {
	src backend.DataSource

	mu              sync.Mutex
	datasetID       string
	state           State
	qcUnlocked      bool
	scoreUnlocked   bool
	computeUnlocked bool
	notes           map[string]Note
}

// NewController creates an idle workflow over the given data source.
func NewController(src backend.DataSource) *Controller {
	return &Controller{
		src:   src,
		state: StateIdle,
		notes: make(map[string]Note),
	}
}

// sampleRows is the synthetic dataset used when the upload payload is
// left empty, enough to exercise QC, scoring and metric computation.
func sampleRows() []map[string]any {
	return []map[string]any{
		{"target": 0, "score": 0.3},
		{"target": 1, "score": 0.7},
		{"target": 0, "score": 0.2},
		{"target": 1, "score": 0.85},
		{"target": 0, "score": 0.5},
	}
}

// parsePayload turns the pasted JSON payload into rows. An empty payload
// falls back to the synthetic sample. Anything that is not a JSON array
// of objects is a validation error.
func parsePayload(raw string) ([]map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return sampleRows(), nil
	}
	var rows []map[string]any
	if err := json.Unmarshal([]byte(raw), &rows); err != nil || rows == nil {
		// A literal "null" unmarshals into a nil slice without error.
		return nil, &monitor.ValidationError{Msg: "data must be a JSON array of row objects"}
	}
	return rows, nil
}

// Upload validates the form fields and payload locally, then ingests the
// dataset. Validation failures never reach the network.
func (c *Controller) Upload(ctx context.Context, portfolio, modelType, modelID, vintage, rawData string) (*monitor.IngestResult, error) {
	if portfolio == "" || modelType == "" || modelID == "" || vintage == "" {
		return nil, &monitor.ValidationError{Msg: "portfolio, model type, model id and vintage are required"}
	}
	rows, err := parsePayload(rawData)
	if err != nil {
		return nil, err
	}

	res, err := c.src.Ingest(ctx, backend.IngestRequest{
		Portfolio: portfolio,
		ModelType: modelType,
		ModelID:   modelID,
		Vintage:   vintage,
		Data:      rows,
	})
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.notes["upload"] = Note{Text: "Upload failed: " + err.Error(), IsErr: true}
		return nil, err
	}
	c.datasetID = res.DatasetID
	c.state = StateIngested
	c.qcUnlocked = true
	c.notes = map[string]Note{
		"upload": {Text: fmt.Sprintf("Dataset %s ingested (%d rows).", res.DatasetID, res.RowCount)},
	}
	log.Info().Str("dataset", res.DatasetID).Int("rows", res.RowCount).Msg("Dataset ingested")
	return res, nil
}

// RunQC runs quality checks on the current dataset. A pass unlocks
// scoring; if the dataset already carries scores, computation unlocks too
// and the scoring step can be skipped.
func (c *Controller) RunQC(ctx context.Context) (*monitor.QCResult, error) {
	c.mu.Lock()
	if !c.qcUnlocked || c.datasetID == "" {
		c.mu.Unlock()
		return nil, ErrStepLocked
	}
	id := c.datasetID
	c.mu.Unlock()

	res, err := c.src.RunQC(ctx, id)
	if err != nil {
		c.setNote("qc", Note{Text: "QC failed to run: " + err.Error(), IsErr: true})
		return nil, err
	}
	if !res.Pass {
		c.mu.Lock()
		c.state = StateQCFailed
		c.notes["qc"] = Note{Text: fmt.Sprintf("QC failed: %s (%s)", res.Reason, res.Details), IsErr: true}
		c.mu.Unlock()
		return res, nil
	}

	c.mu.Lock()
	c.state = StateQCPassed
	c.scoreUnlocked = true
	c.notes["qc"] = Note{Text: "QC passed: " + res.Details}
	c.mu.Unlock()

	// Datasets uploaded with scores skip the scoring step.
	if ds, dsErr := c.src.GetDataset(ctx, id); dsErr == nil && ds.HasScores {
		c.mu.Lock()
		c.computeUnlocked = true
		c.notes["score"] = Note{Text: "Dataset already scored; scoring optional."}
		c.mu.Unlock()
	}
	return res, nil
}

// Score scores the current dataset and unlocks metric computation.
func (c *Controller) Score(ctx context.Context) (*monitor.ScoreResult, error) {
	c.mu.Lock()
	if !c.scoreUnlocked || c.datasetID == "" {
		c.mu.Unlock()
		return nil, ErrStepLocked
	}
	id := c.datasetID
	c.mu.Unlock()

	res, err := c.src.ScoreDataset(ctx, id)
	if err != nil {
		c.setNote("score", Note{Text: "Scoring failed: " + err.Error(), IsErr: true})
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateScored
	c.computeUnlocked = true
	c.notes["score"] = Note{Text: fmt.Sprintf("Scoring completed for %d rows.", res.RowCount)}
	return res, nil
}

// Compute runs metric computation, the terminal workflow step.
func (c *Controller) Compute(ctx context.Context, modelType string) (*monitor.ComputeResult, error) {
	c.mu.Lock()
	if !c.computeUnlocked || c.datasetID == "" {
		c.mu.Unlock()
		return nil, ErrStepLocked
	}
	id := c.datasetID
	c.mu.Unlock()

	res, err := c.src.ComputeMetrics(ctx, id, modelType)
	if err != nil {
		c.setNote("compute", Note{Text: "Metric computation failed: " + err.Error(), IsErr: true})
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateMetricsComputed
	c.notes["compute"] = Note{Text: fmt.Sprintf(
		"Metrics computed for %s %s: KS=%.4f, PSI=%.4f, AUC=%.4f.",
		res.ModelID, res.Vintage, res.Metrics["KS"], res.Metrics["PSI"], res.Metrics["AUC"])}
	return res, nil
}

func (c *Controller) setNote(step string, n Note) {
	c.mu.Lock()
	c.notes[step] = n
	c.mu.Unlock()
}

// Snapshot returns a copy of the workflow state for rendering.
func (c *Controller) Snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	notes := make(map[string]Note, len(c.notes))
	for k, v := range c.notes {
		notes[k] = v
	}
	return Status{
		DatasetID:       c.datasetID,
		State:           c.state,
		QCUnlocked:      c.qcUnlocked,
		ScoreUnlocked:   c.scoreUnlocked,
		ComputeUnlocked: c.computeUnlocked,
		Notes:           notes,
	}
}
