// Package settings defines application-level configuration data.
package settings

import (
	"time"

	"github.com/tesso57/briefing/internal/domain/news"
)

// LogConfig defines logging output.
type LogConfig struct {
	Level      string `yaml:"level" kong:"help='Log level (debug/info/warn/error)',default='info'"`
	File       string `yaml:"file" kong:"help='Log file path, empty logs to stderr only'"`
	MaxSizeMB  int    `yaml:"max_size_mb" kong:"help='Max log file size in MB',default='64'"`
	MaxBackups int    `yaml:"max_backups" kong:"help='Rotated log files to keep',default='3'"`
	MaxAgeDays int    `yaml:"max_age_days" kong:"help='Days to keep rotated log files',default='7'"`
}

// ServerConfig defines the HTTP action host.
type ServerConfig struct {
	Addr string `yaml:"addr" kong:"help='HTTP listen address',default=':8080'"`
}

// KafkaConfig defines the optional Kafka event sink.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers" kong:"help='Kafka brokers; empty disables the sink'"`
	Topic   string   `yaml:"topic" kong:"help='Kafka topic for briefing events',default='briefing-events'"`
}

// Settings represents the application configuration.
type Settings struct {
	Sources             []news.Source `yaml:"sources" kong:"-"`
	Keywords            []string      `yaml:"keywords" kong:"help='Relevance keywords matched against titles',default='kubernetes,k8s,argocd,gitops,sre,devops,platform engineering'"`
	TrustedSources      []string      `yaml:"trusted_sources" kong:"help='Sources included without a keyword match',default='Kubernetes,CNCF'"`
	FetchTimeoutSeconds int           `yaml:"fetch_timeout_seconds" kong:"help='Timeout per feed fetch in seconds',default='10'"`
	RunsFile            string        `yaml:"runs_file" kong:"help='Run log database path'"`
	Log                 LogConfig     `yaml:"log" kong:"embed,prefix='log.'"`
	Server              ServerConfig  `yaml:"server" kong:"embed,prefix='server.'"`
	Kafka               KafkaConfig   `yaml:"kafka" kong:"embed,prefix='kafka.'"`
}

// Catalog builds the immutable source catalog, falling back to the built-in sources.
func (s Settings) Catalog() news.Catalog {
	sources := s.Sources
	if len(sources) == 0 {
		sources = news.DefaultSources()
	}
	return news.NewCatalog(sources, s.Keywords, s.TrustedSources)
}

// FetchTimeout returns the per-feed timeout.
func (s Settings) FetchTimeout() time.Duration {
	if s.FetchTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(s.FetchTimeoutSeconds) * time.Second
}

// KafkaEnabled reports whether events should be published to Kafka.
func (s Settings) KafkaEnabled() bool {
	return len(s.Kafka.Brokers) > 0 && s.Kafka.Topic != ""
}
