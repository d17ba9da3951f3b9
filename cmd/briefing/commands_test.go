package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/briefing/internal/application/usecase"
)

func TestWriteRuns(t *testing.T) {
	var buf bytes.Buffer
	records := []usecase.RunRecord{
		{ID: "run-2", StartedAt: time.Now(), Duration: 1500 * time.Millisecond, Articles: 7, SourcesFailed: 1},
		{ID: "run-1", StartedAt: time.Now().Add(-time.Hour), Duration: time.Second, Error: "briefing interrupted: context canceled"},
	}

	require.NoError(t, writeRuns(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ARTICLES")
	assert.Contains(t, lines[1], "run-2")
	assert.Contains(t, lines[1], "1.5s")
	assert.Contains(t, lines[2], "briefing interrupted")
}

func TestRunsCmd_NoRunLog(t *testing.T) {
	err := (&RunsCmd{Limit: 5}).Run(&App{})
	assert.ErrorIs(t, err, errRunLogUnavailable)
}
