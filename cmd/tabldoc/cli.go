package main

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tabldoc"
)

// DefaultIndexPath is the index page, relative to the base URL.
const DefaultIndexPath = "abap/tabl/index-a.html"

// CLI defines the command-line interface structure for Kong.
// Values come from flags, TABLDOC_* environment variables, or a YAML file
// passed with --config, whose keys are flag names.
type CLI struct {
	ConfigFile kong.ConfigFlag `name:"config" short:"C" help:"YAML configuration file"`
	BaseURL    string          `name:"base-url" default:"https://www.sapdatasheet.org" env:"TABLDOC_BASE_URL" help:"Site base URL used to resolve links"`
	IndexURL   string          `name:"index-url" env:"TABLDOC_INDEX_URL" help:"Index page URL (default: <base-url>/abap/tabl/index-a.html)"`
	Limit      int             `short:"n" default:"10" env:"TABLDOC_LIMIT" help:"Maximum number of tables to process"`
	Output     string          `short:"o" default:"sap_tables" env:"TABLDOC_OUTPUT" help:"Output directory for JSON files"`
	Timeout    time.Duration   `short:"t" default:"30s" env:"TABLDOC_TIMEOUT" help:"Timeout per request"`
	UserAgent  string          `name:"user-agent" env:"TABLDOC_USER_AGENT" help:"User-Agent header sent with every request"`
	LogLevel   string          `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"TABLDOC_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	Preview    bool            `short:"p" help:"List tables from the index without fetching fields or writing files"`
}

// Config is the run configuration, built once from the parsed CLI.
type Config struct {
	BaseURL   string
	IndexURL  string
	Limit     int
	OutputDir string
	Timeout   time.Duration
	UserAgent string
	LogLevel  slog.Level
	Preview   bool
}

// Config validates the parsed flags and returns the run configuration.
func (c *CLI) Config() (*Config, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, tabldoc.Errorf(tabldoc.EINVALID, "invalid base URL %q", c.BaseURL)
	}

	indexURL := c.IndexURL
	if indexURL == "" {
		indexURL = base.ResolveReference(&url.URL{Path: DefaultIndexPath}).String()
	}

	if c.Limit <= 0 {
		return nil, tabldoc.Errorf(tabldoc.EINVALID, "limit must be positive, got %d", c.Limit)
	}
	if !c.Preview && strings.TrimSpace(c.Output) == "" {
		return nil, tabldoc.Errorf(tabldoc.EINVALID, "output directory required")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, tabldoc.Errorf(tabldoc.EINVALID, "invalid log level %q", c.LogLevel)
	}

	return &Config{
		BaseURL:   c.BaseURL,
		IndexURL:  indexURL,
		Limit:     c.Limit,
		OutputDir: c.Output,
		Timeout:   c.Timeout,
		UserAgent: c.UserAgent,
		LogLevel:  level,
		Preview:   c.Preview,
	}, nil
}
