package main

import (
	"context"

	"github.com/tesso57/briefing/internal/application/settings"
	"github.com/tesso57/briefing/internal/application/usecase"
	"github.com/tesso57/briefing/internal/infrastructure/config"
	"github.com/tesso57/briefing/internal/infrastructure/dates"
	"github.com/tesso57/briefing/internal/infrastructure/events"
	"github.com/tesso57/briefing/internal/infrastructure/feed"
	"github.com/tesso57/briefing/internal/infrastructure/logger"
	"github.com/tesso57/briefing/internal/infrastructure/runlog"
	"go.uber.org/zap"
)

// App holds the wired dependencies shared by all commands.
type App struct {
	ctx      context.Context
	settings settings.Settings
	log      *zap.SugaredLogger
	runs     *runlog.Store
	kafka    *events.KafkaSink
	flush    func()
}

// NewApp loads configuration and wires the logger, run log and event sinks.
// The run log and Kafka sink are optional: failures are logged and the
// corresponding feature is disabled.
func NewApp(ctx context.Context, cli CLI) (*App, error) {
	store, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	cfg := store.Settings
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFile != "" {
		cfg.Log.File = cli.LogFile
	}

	log, flush, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, err
	}
	log.Debugw("config loaded", "path", store.Path(), "sources", len(cfg.Catalog().Sources()))

	app := &App{ctx: ctx, settings: cfg, log: log, flush: flush}

	if runs, err := runlog.Open(cfg.RunsFile); err != nil {
		log.Warnw("run log disabled", "path", cfg.RunsFile, "error", err)
	} else {
		app.runs = runs
	}

	if cfg.KafkaEnabled() {
		sink, err := events.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Warnw("kafka sink disabled", "error", err)
		} else {
			app.kafka = sink
		}
	}

	return app, nil
}

// Action builds the briefing action from the configured catalog.
func (a *App) Action() *usecase.Action {
	aggregator := usecase.NewAggregator(
		a.settings.Catalog(),
		feed.NewFetcher(a.settings.FetchTimeout()),
		dates.Parser{},
		a.log,
	)
	var recorder usecase.RunRecorder
	if a.runs != nil {
		recorder = a.runs
	}
	return usecase.NewAction(aggregator, recorder, a.log)
}

// Sink returns the configured external event sink, or nil.
func (a *App) Sink() usecase.Emitter {
	if a.kafka == nil {
		return nil
	}
	return a.kafka
}

// Close releases the run log and sinks and flushes the logger.
func (a *App) Close() {
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			a.log.Warnw("failed to close kafka sink", "error", err)
		}
	}
	if a.runs != nil {
		if err := a.runs.Close(); err != nil {
			a.log.Warnw("failed to close run log", "error", err)
		}
	}
	if a.flush != nil {
		a.flush()
	}
}
