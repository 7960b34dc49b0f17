// Package config loads leadscout settings from a YAML file, the environment
// and defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/FranksOps/leadscout/internal/serp"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LEADSCOUT_CLIENT_NAME.
const EnvPrefix = "LEADSCOUT"

// Config is the root configuration.
type Config struct {
	Client  ClientConfig  `yaml:"client" mapstructure:"client"`
	Agent   AgentConfig   `yaml:"agent" mapstructure:"agent"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Browser BrowserConfig `yaml:"browser" mapstructure:"browser"`
	Report  ReportConfig  `yaml:"report" mapstructure:"report"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ClientConfig names the client the leads are collected for.
type ClientConfig struct {
	Name      string `yaml:"name" mapstructure:"name"`
	TargetURL string `yaml:"target_url" mapstructure:"target_url"`
	Resume    bool   `yaml:"resume" mapstructure:"resume"`
}

// AgentConfig identifies the search agent.
type AgentConfig struct {
	ID string `yaml:"id" mapstructure:"id"`
}

// SearchConfig configures what is searched and how results are read.
type SearchConfig struct {
	Query          string         `yaml:"query" mapstructure:"query"`
	Selectors      serp.Selectors `yaml:",inline" mapstructure:",squash"`
	MaxResults     int            `yaml:"max_results" mapstructure:"max_results"`
	MinTitleLength int            `yaml:"min_title_length" mapstructure:"min_title_length"`
	WaitTimeout    time.Duration  `yaml:"wait_timeout" mapstructure:"wait_timeout"`
}

// BrowserConfig configures the Chrome instance.
type BrowserConfig struct {
	Headless  bool   `yaml:"headless" mapstructure:"headless"`
	ExecPath  string `yaml:"exec_path" mapstructure:"exec_path"`
	RemoteURL string `yaml:"remote_url" mapstructure:"remote_url"`
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// ReportConfig configures report output.
type ReportConfig struct {
	Dir       string   `yaml:"dir" mapstructure:"dir"`
	Keywords  []string `yaml:"keywords" mapstructure:"keywords"`
	ChartHTML bool     `yaml:"chart_html" mapstructure:"chart_html"`
}

// StoreConfig selects the lead history backend. An empty driver disables it.
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// MetricsConfig configures metrics export. Both outputs are off by default.
type MetricsConfig struct {
	Port     int    `yaml:"port" mapstructure:"port"`
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// StoreDrivers lists the accepted store.driver values.
var StoreDrivers = []string{"", "none", "json", "csv", "sqlite", "postgres"}

// Load reads configuration from file and environment. When path is empty,
// config.yaml in the working directory is used if present; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("client.name", "Manan")
	v.SetDefault("client.target_url", "https://duckduckgo.com")
	v.SetDefault("client.resume", false)
	v.SetDefault("agent.id", "Agent_007")
	v.SetDefault("search.query", "AI Freelance Jobs")
	v.SetDefault("search.input_selector", serp.DuckDuckGo.Input)
	v.SetDefault("search.result_selector", serp.DuckDuckGo.Result)
	v.SetDefault("search.max_results", 10)
	v.SetDefault("search.min_title_length", 5)
	v.SetDefault("search.wait_timeout", 10*time.Second)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.exec_path", "")
	v.SetDefault("browser.remote_url", "")
	v.SetDefault("browser.user_agent", "")
	v.SetDefault("report.dir", ".")
	v.SetDefault("report.keywords", []string{"AI", "Python", "Bot", "Freelance", "Engineer"})
	v.SetDefault("report.chart_html", false)
	v.SetDefault("store.driver", "")
	v.SetDefault("store.dsn", "")
	v.SetDefault("metrics.port", 0)
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Client.Name) == "" {
		errs = append(errs, errors.New("client.name is required"))
	}
	if c.Client.TargetURL == "" {
		errs = append(errs, errors.New("client.target_url is required"))
	} else if u, err := url.Parse(c.Client.TargetURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("client.target_url %q is not an absolute url", c.Client.TargetURL))
	}
	if c.Search.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("search.max_results must be positive, got %d", c.Search.MaxResults))
	}
	if c.Search.WaitTimeout <= 0 {
		errs = append(errs, fmt.Errorf("search.wait_timeout must be positive, got %s", c.Search.WaitTimeout))
	}
	if c.Search.Selectors.Input == "" || c.Search.Selectors.Result == "" {
		errs = append(errs, errors.New("search.input_selector and search.result_selector are required"))
	}
	if len(c.Report.Keywords) == 0 {
		errs = append(errs, errors.New("report.keywords must not be empty"))
	}
	if !slices.Contains(StoreDrivers, c.Store.Driver) {
		errs = append(errs, fmt.Errorf("store.driver %q is not one of json, csv, sqlite, postgres", c.Store.Driver))
	} else if c.StoreEnabled() && c.Store.DSN == "" {
		errs = append(errs, fmt.Errorf("store.dsn is required for driver %s", c.Store.Driver))
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		errs = append(errs, fmt.Errorf("metrics.port %d out of range", c.Metrics.Port))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// StoreEnabled reports whether a lead history backend is configured.
func (c *Config) StoreEnabled() bool {
	return c.Store.Driver != "" && c.Store.Driver != "none"
}

// NewLogger builds a slog logger writing to w. Format is "text" (default) or
// "json".
func NewLogger(cfg LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("config: parse log level: %w", err)
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("config: unknown log format %q", cfg.Format)
	}
}
