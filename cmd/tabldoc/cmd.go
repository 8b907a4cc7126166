package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/tabldoc"
	"github.com/fwojciec/tabldoc/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Index    tabldoc.IndexFetcher
	Pipeline *crawl.Pipeline
}

// ExtractCmd handles the main extraction operation.
type ExtractCmd struct {
	Limit   int
	Output  string
	Preview bool
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	// Preview mode: list tables without fetching fields
	if c.Preview {
		return c.runPreview(deps)
	}

	return c.runExtract(deps)
}

func (c *ExtractCmd) runPreview(deps *Dependencies) error {
	tables, err := deps.Index.FetchIndex(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tabldoc.ErrorMessage(err))
		return err
	}

	for _, t := range tables {
		fmt.Fprintf(deps.Stdout, "%s\t%s\t%s\t%s\t%s\n", t.Number, t.Name, t.Category, t.DeliveryClass, t.Description)
	}
	return nil
}

func (c *ExtractCmd) runExtract(deps *Dependencies) error {
	progress := func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d tables\n", e.Total)
		case crawl.ProgressSaved:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s: %d fields\n", e.Completed, e.Total, e.Table, e.Fields)
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s: skipped: %s\n", e.Completed, e.Total, e.Table, tabldoc.ErrorMessage(e.Error))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s: failed: %s\n", e.Completed, e.Total, e.Table, tabldoc.ErrorMessage(e.Error))
		}
	}

	result, err := deps.Pipeline.Run(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if result.Found == 0 {
		fmt.Fprintln(deps.Stdout, "No tables to process")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Saved %d of %d tables (%d fields) to %s\n", result.Saved, result.Found, result.Fields, c.Output)
	return nil
}
