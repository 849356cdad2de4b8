package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"modelmon/internal/backend"
	"modelmon/internal/export"
	"modelmon/internal/insights"
	"modelmon/internal/monitor"
	"modelmon/internal/workflow"
)

// filterQuery is the dashboard filter selection carried in the query
// string so that every link and redirect keeps it.
type filterQuery struct {
	Portfolio string
	ModelType string
	Vintage   string
	Segment   string
	Status    string
}

func parseFilters(r *http.Request) filterQuery {
	q := r.URL.Query()
	return filterQuery{
		Portfolio: q.Get("portfolio"),
		ModelType: q.Get("model_type"),
		Vintage:   q.Get("vintage"),
		Segment:   q.Get("segment"),
		Status:    q.Get("status"),
	}
}

type dashboardData struct {
	Filters    filterQuery
	Options    *monitor.FilterOptions
	Rows       []monitor.MetricRow
	Portfolios []monitor.PortfolioSummary
	Workflow   workflow.Status
	Transcript []chatEntry
	Commentary string
	FlashError string

	// Banner reports the live/mock data source decision once it is known.
	BannerKnown bool
	BannerLive  bool
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filters := parseFilters(r)

	options, err := s.src.FilterOptions(ctx)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	rows, err := s.src.Summary(ctx, backend.SummaryParams{
		Portfolio: filters.Portfolio,
		ModelType: filters.ModelType,
		Vintage:   filters.Vintage,
		Segment:   filters.Segment,
	})
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	reduced := monitor.OneRowPerModel(rows, filters.Vintage)
	if filters.Status != "" {
		want := monitor.Status(filters.Status)
		kept := reduced[:0]
		for _, row := range reduced {
			if monitor.RowStatus(row) == want {
				kept = append(kept, row)
			}
		}
		reduced = kept
	}
	portfolios := monitor.PortfolioAggregate(rows, insights.PortfolioCommentary)

	s.mu.Lock()
	s.view.SummaryRows = rows
	s.view.SelectedVintage = filters.Vintage
	s.view.Portfolios = portfolios
	data := dashboardData{
		Filters:    filters,
		Options:    options,
		Rows:       reduced,
		Portfolios: portfolios,
		Workflow:   s.ctrl.Snapshot(),
		Transcript: append([]chatEntry(nil), s.transcript...),
		Commentary: s.view.Commentary,
		FlashError: r.URL.Query().Get("flash_error"),
	}
	s.mu.Unlock()

	if s.fb != nil {
		reachable, known := s.fb.Reachable()
		data.BannerKnown = known
		data.BannerLive = reachable
	}
	s.render(w, "dashboard", data)
}

type detailData struct {
	Record  *monitor.DetailRecord
	Vintage string
	Segment string
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	q := r.URL.Query()
	rec, err := s.src.Detail(r.Context(), backend.DetailParams{
		ModelID: id,
		Vintage: q.Get("vintage"),
		Segment: q.Get("segment"),
	})
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, "detail", detailData{Record: rec, Vintage: q.Get("vintage"), Segment: q.Get("segment")})
}

type analysisData struct {
	ModelID string
	Vintage string
	Segment string
	Models  []monitor.ModelInfo
	Bundle  *backend.AnalysisBundle
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	modelID := q.Get("model_id")

	models, err := s.src.Models(ctx)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if modelID == "" && len(models) > 0 {
		modelID = models[0].ModelID
	}

	data := analysisData{
		ModelID: modelID,
		Vintage: q.Get("vintage"),
		Segment: q.Get("segment"),
		Models:  models,
	}
	if modelID != "" {
		bundle, err := backend.FetchAnalysis(ctx, s.src, modelID, data.Vintage, data.Segment)
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		data.Bundle = bundle

		s.mu.Lock()
		s.view.Trends = bundle.Trends
		s.mu.Unlock()
	}
	s.render(w, "analysis", data)
}

type segmentsData struct {
	ModelID string
	Vintage string
	Models  []monitor.ModelInfo
	Report  *monitor.SegmentReport
}

func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	models, err := s.src.Models(ctx)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	data := segmentsData{ModelID: q.Get("model_id"), Vintage: q.Get("vintage"), Models: models}
	if data.ModelID != "" {
		report, err := s.src.SegmentMetrics(ctx, backend.SegmentParams{
			ModelID: data.ModelID,
			Vintage: data.Vintage,
		})
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		data.Report = report
	}
	s.render(w, "segments", data)
}

type stabilityData struct {
	ModelID string
	Vintage string
	Models  []monitor.ModelInfo
	Report  *monitor.StabilityReport
}

func (s *Server) handleStability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	models, err := s.src.Models(ctx)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	data := stabilityData{ModelID: q.Get("model_id"), Vintage: q.Get("vintage"), Models: models}
	if data.ModelID != "" {
		report, err := s.src.VariableStability(ctx, backend.StabilityParams{
			ModelID: data.ModelID,
			Vintage: data.Vintage,
		})
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		data.Report = report
	}
	s.render(w, "stability", data)
}

// handleTrendChart renders one trend metric as PNG, fetched fresh per
// request so there is no chart state to go stale.
func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	metric := strings.TrimSuffix(r.PathValue("metric"), ".png")
	q := r.URL.Query()
	t, err := s.src.Trends(r.Context(), backend.TrendParams{
		ModelID: q.Get("model_id"),
		Segment: q.Get("segment"),
	})
	if err != nil {
		http.Error(w, err.Error(), httpStatusFor(err))
		return
	}

	var png []byte
	switch metric {
	case "ks":
		png, err = export.LineChartPNG("KS trend: "+t.ModelID, t.Vintages, t.KS)
	case "psi":
		png, err = export.LineChartPNG("PSI trend: "+t.ModelID, t.Vintages, t.PSI)
	case "bad_rate":
		png, err = export.LineChartPNG("Bad rate trend: "+t.ModelID, t.Vintages, t.BadRate)
	case "volume":
		vols := make([]float64, len(t.Volume))
		for i, v := range t.Volume {
			vols[i] = float64(v)
		}
		png, err = export.BarChartPNG("Volume trend: "+t.ModelID, t.Vintages, vols)
	default:
		http.Error(w, "unknown trend metric "+metric, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (s *Server) handleRAGChart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	portfolios := s.view.Portfolios
	s.mu.Unlock()

	var green, amber, red int
	for _, p := range portfolios {
		green += p.Green
		amber += p.Amber
		red += p.Red
	}
	png, err := export.RAGPiePNG(green, amber, red)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// redirectWorkflow sends the browser back to the dashboard, carrying
// validation and lock errors as a one-shot flash message. Backend
// failures are already recorded in the step notes.
func (s *Server) redirectWorkflow(w http.ResponseWriter, r *http.Request, err error) {
	target := "/"
	var vErr *monitor.ValidationError
	switch {
	case errors.As(err, &vErr):
		target = "/?flash_error=" + url.QueryEscape(vErr.Msg)
	case errors.Is(err, workflow.ErrStepLocked):
		target = "/?flash_error=" + url.QueryEscape("That step is not unlocked yet.")
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	_, err := s.ctrl.Upload(r.Context(),
		r.FormValue("portfolio"),
		r.FormValue("model_type"),
		r.FormValue("model_id"),
		r.FormValue("vintage"),
		r.FormValue("data"),
	)
	s.redirectWorkflow(w, r, err)
}

func (s *Server) handleQC(w http.ResponseWriter, r *http.Request) {
	_, err := s.ctrl.RunQC(r.Context())
	s.redirectWorkflow(w, r, err)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	_, err := s.ctrl.Score(r.Context())
	s.redirectWorkflow(w, r, err)
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	_, err := s.ctrl.Compute(r.Context(), r.FormValue("model_type"))
	s.redirectWorkflow(w, r, err)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	message := strings.TrimSpace(r.FormValue("message"))
	if message == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	reply, err := s.src.Chat(r.Context(), message)

	s.mu.Lock()
	s.transcript = append(s.transcript, chatEntry{Role: "you", Text: message})
	if err != nil {
		s.transcript = append(s.transcript, chatEntry{Role: "assistant", Text: "Chat failed: " + err.Error()})
	} else {
		s.transcript = append(s.transcript, chatEntry{Role: "assistant", Text: reply})
	}
	s.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCommentary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.view.Commentary = strings.TrimSpace(r.FormValue("commentary"))
	s.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) snapshotView() export.ViewData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, _ *http.Request) {
	f, err := export.Workbook(s.snapshotView())
	if err != nil {
		http.Error(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	name := fmt.Sprintf("%s-%s.xlsx", s.deckName, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("Spreadsheet export write failed")
	}
}

func (s *Server) handleExportPPTX(w http.ResponseWriter, _ *http.Request) {
	view := s.snapshotView()
	slides := export.ChartSlides(view)

	var buf bytes.Buffer
	err := export.WriteDeck(&buf, "Model Monitoring Summary", view.Commentary, slides)
	if errors.Is(err, export.ErrNoCharts) {
		http.Error(w, "No charts available to export. Load the dashboard and an analysis view first.", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	name := fmt.Sprintf("%s-%s.pptx", s.deckName, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.presentationml.presentation")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// render executes the named page into a buffer first so a template error
// becomes a clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Template render failed")
		http.Error(w, "internal render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

type errorData struct {
	Status  int
	Message string
}

// renderError maps the error taxonomy onto an HTTP status and renders it
// as an inline page, never a bare crash.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFor(err)
	log.Warn().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("Request failed")

	var buf bytes.Buffer
	if tErr := s.tmpl.ExecuteTemplate(&buf, "error", errorData{Status: status, Message: err.Error()}); tErr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func httpStatusFor(err error) int {
	var nf *monitor.NotFoundError
	var api *monitor.APIError
	var vErr *monitor.ValidationError
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.As(err, &api):
		return http.StatusBadGateway
	default:
		return http.StatusServiceUnavailable
	}
}
