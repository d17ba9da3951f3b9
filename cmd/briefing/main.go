// Command briefing collects recent tech news from RSS feeds and renders a
// markdown digest.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// CLI is the command line surface.
type CLI struct {
	Config   string `help:"Config file path." env:"BRIEFING_CONFIG" type:"path"`
	LogLevel string `help:"Override the configured log level." env:"BRIEFING_LOG_LEVEL"`
	LogFile  string `help:"Override the configured log file." env:"BRIEFING_LOG_FILE" type:"path"`

	Run   RunCmd   `cmd:"" default:"withargs" help:"Print the briefing digest."`
	TUI   TUICmd   `cmd:"" name:"tui" help:"Browse the briefing in the terminal."`
	Serve ServeCmd `cmd:"" help:"Serve the briefing action over HTTP."`
	Runs  RunsCmd  `cmd:"" help:"List recent runs."`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("briefing"),
		kong.Description("Tech news briefing from RSS feeds."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app, err := NewApp(ctx, cli)
	if err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "briefing: %v\n", err)
		os.Exit(1)
	}

	err = kctx.Run(app)
	app.Close()
	stop()
	kctx.FatalIfErrorf(err)
}
