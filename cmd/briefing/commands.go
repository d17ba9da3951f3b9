package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/tesso57/briefing/internal/application/usecase"
	"github.com/tesso57/briefing/internal/infrastructure/events"
	"github.com/tesso57/briefing/internal/presentation/httpapi"
	"github.com/tesso57/briefing/internal/presentation/tui"
)

var errRunLogUnavailable = errors.New("run log is unavailable")

// RunCmd prints the digest to stdout.
type RunCmd struct {
	Events bool `help:"Stream events to stderr as JSON lines."`
}

// Run executes the command.
func (c *RunCmd) Run(app *App) error {
	sinks := events.Multi{app.Sink()}
	if c.Events {
		sinks = append(sinks, events.NewWriterSink(os.Stderr))
	}
	digest, err := app.Action().Run(app.ctx, sinks)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, digest)
	return err
}

// TUICmd runs the terminal host.
type TUICmd struct{}

// Run executes the command.
func (c *TUICmd) Run(app *App) error {
	return tui.Run(app.ctx, fanOut{action: app.Action(), sink: app.Sink()})
}

// ServeCmd runs the HTTP host.
type ServeCmd struct {
	Addr string `help:"Listen address, defaults to server.addr from config."`
}

// Run executes the command.
func (c *ServeCmd) Run(app *App) error {
	addr := c.Addr
	if addr == "" {
		addr = app.settings.Server.Addr
	}
	var runs httpapi.RunLister
	if app.runs != nil {
		runs = app.runs
	}
	return httpapi.NewServer(app.Action(), runs, app.Sink(), app.log).ListenAndServe(app.ctx, addr)
}

// RunsCmd lists recent runs.
type RunsCmd struct {
	Limit int `help:"Number of runs to show." default:"10"`
}

// Run executes the command.
func (c *RunsCmd) Run(app *App) error {
	if app.runs == nil {
		return errRunLogUnavailable
	}
	records, err := app.runs.Recent(app.ctx, c.Limit)
	if err != nil {
		return err
	}
	return writeRuns(os.Stdout, records)
}

func writeRuns(w io.Writer, records []usecase.RunRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tDURATION\tARTICLES\tFAILED\tERROR")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Duration.Round(time.Millisecond),
			r.Articles,
			r.SourcesFailed,
			r.Error,
		)
	}
	return tw.Flush()
}

// fanOut forwards action events to the host emitter and the external sink.
type fanOut struct {
	action *usecase.Action
	sink   usecase.Emitter
}

func (f fanOut) Execute(ctx context.Context, emitter usecase.Emitter) (usecase.ActionResult, error) {
	return f.action.Execute(ctx, events.Multi{emitter, f.sink})
}
