package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tesso57/briefing/internal/domain/news"
	"go.uber.org/zap"
)

const (
	statusWorking = "Fetching RSS feeds..."
	statusLoaded  = "News loaded."
)

// Collector is the pipeline the action runs.
type Collector interface {
	Collect(ctx context.Context) ([]news.Article, CollectReport)
}

// RunRecord is the stored outcome of one action invocation.
type RunRecord struct {
	ID            string
	StartedAt     time.Time
	Duration      time.Duration
	Articles      int
	SourcesFailed int
	Error         string
}

// RunRecorder persists run outcomes.
type RunRecorder interface {
	Record(ctx context.Context, run RunRecord) error
}

// ActionResult is what a successful invocation produced.
type ActionResult struct {
	RunID    string
	Digest   string
	Articles []news.Article
	Report   CollectReport
}

// Action is the host-facing entry point: it reports progress, runs the
// pipeline off the caller's goroutine and injects the digest as a message.
type Action struct {
	Collector Collector
	Recorder  RunRecorder
	Now       func() time.Time
	Logger    *zap.SugaredLogger
}

// NewAction constructs an Action.
func NewAction(collector Collector, recorder RunRecorder, logger *zap.SugaredLogger) *Action {
	return new(Action{
		Collector: collector,
		Recorder:  recorder,
		Now:       time.Now,
		Logger:    logger,
	})
}

// Run invokes the action and returns the rendered digest.
// On a pipeline failure an error status is emitted and no message is sent.
func (a *Action) Run(ctx context.Context, emitter Emitter) (string, error) {
	result, err := a.Execute(ctx, emitter)
	if err != nil {
		return "", err
	}
	return result.Digest, nil
}

// Execute is Run with the full result.
func (a *Action) Execute(ctx context.Context, emitter Emitter) (ActionResult, error) {
	runID := uuid.NewString()
	started := a.now()
	ctx = WithRunID(ctx, runID)

	a.emit(ctx, emitter, StatusEvent(statusWorking, false))

	articles, report, err := a.collect(ctx)
	// Terminal events and the run record go out even when ctx is already cancelled.
	final := context.WithoutCancel(ctx)
	a.record(final, runID, started, len(articles), report.Failed(), err)
	if err != nil {
		a.logger().Errorw("briefing failed", "run_id", runID, "error", err)
		a.emit(final, emitter, StatusEvent(fmt.Sprintf("Error: %v", err), true))
		return ActionResult{}, err
	}

	digest := RenderDigest(articles)
	a.logger().Infow("briefing ready",
		"run_id", runID,
		"articles", len(articles),
		"sources_failed", report.Failed(),
	)
	a.emit(final, emitter, StatusEvent(statusLoaded, true))
	a.emit(final, emitter, MessageEvent(digest))

	return ActionResult{
		RunID:    runID,
		Digest:   digest,
		Articles: articles,
		Report:   report,
	}, nil
}

type collectResult struct {
	articles []news.Article
	report   CollectReport
	err      error
}

// collect runs the pipeline on a worker goroutine and converts panics and
// cancellation into errors.
func (a *Action) collect(ctx context.Context) ([]news.Article, CollectReport, error) {
	if a.Collector == nil {
		return nil, CollectReport{}, errors.New("collector is not configured")
	}

	done := make(chan collectResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- collectResult{err: fmt.Errorf("pipeline panicked: %v", r)}
			}
		}()
		articles, report := a.Collector.Collect(ctx)
		done <- collectResult{articles: articles, report: report}
	}()

	select {
	case res := <-done:
		return res.articles, res.report, res.err
	case <-ctx.Done():
		return nil, CollectReport{}, fmt.Errorf("briefing interrupted: %w", ctx.Err())
	}
}

func (a *Action) emit(ctx context.Context, emitter Emitter, event Event) {
	if emitter == nil {
		return
	}
	if err := emitter.Emit(ctx, event); err != nil {
		a.logger().Warnw("emit event", "type", event.Type, "error", err)
	}
}

func (a *Action) record(ctx context.Context, runID string, started time.Time, articles, failed int, runErr error) {
	if a.Recorder == nil {
		return
	}
	run := RunRecord{
		ID:            runID,
		StartedAt:     started,
		Duration:      a.now().Sub(started),
		Articles:      articles,
		SourcesFailed: failed,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := a.Recorder.Record(ctx, run); err != nil {
		a.logger().Warnw("record run", "run_id", runID, "error", err)
	}
}

func (a *Action) now() time.Time {
	if a != nil && a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *Action) logger() *zap.SugaredLogger {
	if a != nil && a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop().Sugar()
}

type runIDKey struct{}

// WithRunID attaches a run id to ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFrom returns the run id attached to ctx, if any.
func RunIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}
