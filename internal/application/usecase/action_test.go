package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/briefing/internal/domain/news"
)

type stubCollector struct {
	articles []news.Article
	report   CollectReport
	panicVal any
	block    chan struct{}
}

func (s *stubCollector) Collect(ctx context.Context) ([]news.Article, CollectReport) {
	if s.block != nil {
		<-s.block
	}
	if s.panicVal != nil {
		panic(s.panicVal)
	}
	return s.articles, s.report
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, run RunRecord) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

type eventLog struct {
	events  []Event
	ctxErrs []error
	err     error
}

func (l *eventLog) Emit(ctx context.Context, event Event) error {
	l.events = append(l.events, event)
	l.ctxErrs = append(l.ctxErrs, ctx.Err())
	return l.err
}

func TestAction_RunSuccess(t *testing.T) {
	collector := &stubCollector{articles: []news.Article{
		{Title: "Kubernetes 1.30 released", Link: "https://example.com", Source: "Kubernetes", Date: testNow},
	}}
	recorder := &mockRecorder{}
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(run RunRecord) bool {
		return run.ID != "" && run.Articles == 1 && run.Error == ""
	})).Return(nil).Once()
	emitter := &eventLog{}

	action := NewAction(collector, recorder, nil)
	digest, err := action.Run(context.Background(), emitter)

	require.NoError(t, err)
	assert.Contains(t, digest, "**1. [Kubernetes 1.30 released](https://example.com)**")
	require.Len(t, emitter.events, 3)
	assert.Equal(t, StatusEvent("Fetching RSS feeds...", false), emitter.events[0])
	assert.Equal(t, StatusEvent("News loaded.", true), emitter.events[1])
	assert.Equal(t, MessageEvent(digest), emitter.events[2])
	recorder.AssertExpectations(t)
}

func TestAction_EmptyResultStillSendsMessage(t *testing.T) {
	emitter := &eventLog{}

	digest, err := NewAction(&stubCollector{}, nil, nil).Run(context.Background(), emitter)

	require.NoError(t, err)
	assert.Equal(t, NoNewsMessage, digest)
	require.Len(t, emitter.events, 3)
	assert.Equal(t, MessageEvent(NoNewsMessage), emitter.events[2])
}

func TestAction_NilEmitter(t *testing.T) {
	digest, err := NewAction(&stubCollector{}, nil, nil).Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, NoNewsMessage, digest)
}

func TestAction_EmitterErrorsAreIgnored(t *testing.T) {
	emitter := &eventLog{err: errors.New("socket closed")}

	_, err := NewAction(&stubCollector{}, nil, nil).Run(context.Background(), emitter)

	require.NoError(t, err)
	assert.Len(t, emitter.events, 3)
}

func TestAction_PanicBecomesErrorStatus(t *testing.T) {
	recorder := &mockRecorder{}
	recorder.On("Record", mock.Anything, mock.MatchedBy(func(run RunRecord) bool {
		return run.Error == "pipeline panicked: boom"
	})).Return(nil).Once()
	emitter := &eventLog{}

	digest, err := NewAction(&stubCollector{panicVal: "boom"}, recorder, nil).Run(context.Background(), emitter)

	require.Error(t, err)
	assert.Empty(t, digest)
	require.Len(t, emitter.events, 2)
	assert.Equal(t, StatusEvent("Error: pipeline panicked: boom", true), emitter.events[1])
	recorder.AssertExpectations(t)
}

func TestAction_CancelledContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	emitter := &eventLog{}

	_, err := NewAction(&stubCollector{block: block}, nil, nil).Run(ctx, emitter)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Len(t, emitter.events, 2)
	status, ok := emitter.events[1].Data.(StatusData)
	require.True(t, ok)
	assert.True(t, status.Done)
	assert.Contains(t, status.Description, "Error: briefing interrupted")
	assert.NoError(t, emitter.ctxErrs[1], "error status must be emitted on a live context")
}

func TestAction_RecorderFailureDoesNotFailRun(t *testing.T) {
	recorder := &mockRecorder{}
	recorder.On("Record", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := NewAction(&stubCollector{}, recorder, nil).Run(context.Background(), nil)

	require.NoError(t, err)
	recorder.AssertExpectations(t)
}

func TestAction_ExecuteExposesRunID(t *testing.T) {
	var seen string
	emitter := EmitterFunc(func(ctx context.Context, _ Event) error {
		seen = RunIDFrom(ctx)
		return nil
	})

	result, err := NewAction(&stubCollector{}, nil, nil).Execute(context.Background(), emitter)

	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, result.RunID, seen)
}

func TestAction_PanickingSourceStillProducesDigest(t *testing.T) {
	fetcher := &panickingFetcher{
		panicOn: "hn",
		stubFetcher: stubFetcher{feeds: map[string]*news.RawFeed{
			"k8s": {Entries: []news.RawEntry{{Title: "Kubernetes 1.30", Link: "https://kubernetes.io", Published: ago(time.Hour)}}},
			"aws": {Entries: []news.RawEntry{{Title: "GitOps on AWS", Link: "https://aws.amazon.com", Published: ago(2 * time.Hour)}}},
		}},
	}
	emitter := &eventLog{}

	digest, err := NewAction(newTestAggregator(fetcher), nil, nil).Run(context.Background(), emitter)

	require.NoError(t, err)
	assert.Contains(t, digest, "**1. [Kubernetes 1.30](https://kubernetes.io)**")
	assert.Contains(t, digest, "**2. [GitOps on AWS](https://aws.amazon.com)**")
	require.Len(t, emitter.events, 3)
	assert.Equal(t, MessageEvent(digest), emitter.events[2])
}
