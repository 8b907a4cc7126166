package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tabldoc/crawl"
	"github.com/fwojciec/tabldoc/fs"
	"github.com/fwojciec/tabldoc/goquery"
	tabhttp "github.com/fwojciec/tabldoc/http"
	tabslog "github.com/fwojciec/tabldoc/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tabldoc"),
		kong.Description("Extract table definitions from a data dictionary site to JSON files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(YAMLConfig),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg, err := cli.Config()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	// The session is shared by every request of the run and released on return.
	session := tabhttp.NewFetcher(
		tabhttp.WithTimeout(cfg.Timeout),
		tabhttp.WithUserAgent(cfg.UserAgent),
	)
	fetcher := tabslog.NewLoggingFetcher(session, logger)
	defer fetcher.Close()

	htmlParser := goquery.NewParser()
	index := &crawl.IndexFetcher{
		Fetcher:  fetcher,
		Parser:   htmlParser,
		BaseURL:  cfg.BaseURL,
		IndexURL: cfg.IndexURL,
		Logger:   logger,
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Index:  index,
	}

	if !cfg.Preview {
		deps.Pipeline = &crawl.Pipeline{
			Index: index,
			Fields: &crawl.FieldFetcher{
				Fetcher: fetcher,
				Parser:  htmlParser,
				BaseURL: cfg.BaseURL,
				Logger:  logger,
			},
			Writer: tabslog.NewLoggingTableWriter(fs.NewWriter(cfg.OutputDir), logger),
			Limit:  cfg.Limit,
			Logger: logger,
		}
	}

	cmd := &ExtractCmd{
		Limit:   cfg.Limit,
		Output:  cfg.OutputDir,
		Preview: cfg.Preview,
	}

	return cmd.Run(deps)
}
