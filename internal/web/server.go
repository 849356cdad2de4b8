// Package web serves the dashboard: server-rendered pages over the
// backend data source, chart PNG endpoints, workflow and chat actions,
// and the spreadsheet and slide-deck exports.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"modelmon/internal/backend"
	"modelmon/internal/export"
	"modelmon/internal/monitor"
	"modelmon/internal/workflow"
)

//go:embed templates/*.html
var templateFS embed.FS

// chatEntry is one line of the dashboard chat transcript.
type chatEntry struct {
	Role string // "you" or "assistant"
	Text string
}

// Server renders the dashboard over a DataSource. The view snapshot
// taken on each dashboard render backs the export endpoints.
type Server struct {
	src      backend.DataSource
	fb       *backend.FallbackSource
	ctrl     *workflow.Controller
	tmpl     *template.Template
	metrics  *metrics
	handler  http.Handler
	deckName string

	mu         sync.Mutex
	view       export.ViewData
	transcript []chatEntry
}

// New builds the server. fb may be nil when the data source is not the
// fallback decorator; the reachability banner and fallback counter are
// then disabled.
func New(src backend.DataSource, fb *backend.FallbackSource) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"metric":    formatMetric,
		"segMetric": formatSegMetric,
		"rowStatus": monitor.RowStatus,
		"pct":       func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		src:      src,
		fb:       fb,
		ctrl:     workflow.NewController(src),
		tmpl:     tmpl,
		metrics:  newMetrics(),
		deckName: "model-monitoring",
	}
	if fb != nil {
		fb.OnFallback = func(op string) {
			s.metrics.fallbacks.WithLabelValues(op).Inc()
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /model/{id}", s.handleDetail)
	mux.HandleFunc("GET /analysis", s.handleAnalysis)
	mux.HandleFunc("GET /segments", s.handleSegments)
	mux.HandleFunc("GET /stability", s.handleStability)
	mux.HandleFunc("GET /charts/trend/{metric}", s.handleTrendChart)
	mux.HandleFunc("GET /charts/rag.png", s.handleRAGChart)
	mux.HandleFunc("POST /workflow/upload", s.handleUpload)
	mux.HandleFunc("POST /workflow/qc", s.handleQC)
	mux.HandleFunc("POST /workflow/score", s.handleScore)
	mux.HandleFunc("POST /workflow/compute", s.handleCompute)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /commentary", s.handleCommentary)
	mux.HandleFunc("GET /export/xlsx", s.handleExportXLSX)
	mux.HandleFunc("GET /export/pptx", s.handleExportPPTX)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", s.metrics.handler())

	s.handler = s.observe(mux)
	return s, nil
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe blocks serving the dashboard on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	log.Info().Str("addr", addr).Msg("Dashboard listening")
	return srv.ListenAndServe()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// observe tags each request with an id, records Prometheus series and
// emits one access log line.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := metricRoute(r.URL.Path)
		elapsed := time.Since(start)
		s.metrics.requests.WithLabelValues(route, r.Method, fmt.Sprintf("%d", rec.status)).Inc()
		s.metrics.duration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())
		log.Debug().
			Str("request_id", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", elapsed).
			Msg("Request served")
	})
}

// metricRoute collapses parameterised paths so label cardinality stays
// bounded.
func metricRoute(path string) string {
	switch {
	case strings.HasPrefix(path, "/model/"):
		return "/model/{id}"
	case strings.HasPrefix(path, "/charts/trend/"):
		return "/charts/trend/{metric}"
	default:
		return path
	}
}

func formatMetric(r monitor.MetricRow, name string) string {
	if v, ok := r.Metric(name); ok {
		return fmt.Sprintf("%.4f", v)
	}
	return "-"
}

// formatSegMetric checks presence explicitly so a legitimate 0.0 value
// still renders as a number.
func formatSegMetric(m map[string]float64, name string) string {
	if v, ok := m[name]; ok {
		return fmt.Sprintf("%.4f", v)
	}
	return "-"
}
