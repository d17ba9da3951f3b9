// Package httpapi exposes the briefing action over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	httputils "github.com/Fau1con/renderresponse"
	"github.com/tesso57/briefing/internal/application/usecase"
	"github.com/tesso57/briefing/internal/domain/news"
	"github.com/tesso57/briefing/internal/infrastructure/events"
	"go.uber.org/zap"
)

const defaultRunsLimit = 20

// ActionRunner runs one briefing invocation.
type ActionRunner interface {
	Execute(ctx context.Context, emitter usecase.Emitter) (usecase.ActionResult, error)
}

// RunLister lists recorded runs.
type RunLister interface {
	Recent(ctx context.Context, limit int) ([]usecase.RunRecord, error)
}

// Server is the HTTP host for the briefing action.
type Server struct {
	action ActionRunner
	runs   RunLister
	sink   usecase.Emitter
	log    *zap.SugaredLogger
}

// NewServer constructs a Server. runs and sink may be nil.
func NewServer(action ActionRunner, runs RunLister, sink usecase.Emitter, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{action: action, runs: runs, sink: sink, log: log}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/action", s.handleAction)
	mux.HandleFunc("/api/runs", s.handleRuns)
	mux.HandleFunc("/healthz", s.handleHealth)

	var handler http.Handler = mux
	handler = LoggingMiddleware(s.log)(handler)
	handler = RequestIDMiddleware(handler)
	return handler
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("http host listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type actionResponse struct {
	RunID    string          `json:"run_id"`
	Digest   string          `json:"digest"`
	Articles []news.Article  `json:"articles"`
	Events   []usecase.Event `json:"events"`
}

type runResponse struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	DurationMS    int64     `json:"duration_ms"`
	Articles      int       `json:"articles"`
	SourcesFailed int       `json:"sources_failed"`
	Error         string    `json:"error,omitempty"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if !httputils.ValidateMethod(w, r, http.MethodPost) {
		return
	}

	buffer := &events.Buffer{}
	result, err := s.action.Execute(r.Context(), events.Multi{buffer, s.sink})
	if err != nil {
		s.log.Errorw("action failed", "request_id", RequestID(r.Context()), "error", err)
		httputils.RenderError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	articles := result.Articles
	if articles == nil {
		articles = []news.Article{}
	}
	httputils.RenderJSON(w, actionResponse{
		RunID:    result.RunID,
		Digest:   result.Digest,
		Articles: articles,
		Events:   buffer.Events(),
	}, http.StatusOK)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if !httputils.ValidateMethod(w, r, http.MethodGet) {
		return
	}
	if s.runs == nil {
		httputils.RenderError(w, "run log is disabled", http.StatusNotFound)
		return
	}

	limit := defaultRunsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputils.RenderError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := s.runs.Recent(r.Context(), limit)
	if err != nil {
		s.log.Errorw("list runs", "error", err)
		httputils.RenderError(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}

	resp := make([]runResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, runResponse{
			ID:            run.ID,
			StartedAt:     run.StartedAt,
			DurationMS:    run.Duration.Milliseconds(),
			Articles:      run.Articles,
			SourcesFailed: run.SourcesFailed,
			Error:         run.Error,
		})
	}
	httputils.RenderJSON(w, resp, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !httputils.ValidateMethod(w, r, http.MethodGet) {
		return
	}
	httputils.RenderJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
