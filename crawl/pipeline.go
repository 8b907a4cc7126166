package crawl

import (
	"context"
	"log/slog"

	"github.com/fwojciec/tabldoc"
)

// Pipeline extracts tables from the index and writes one record per table.
// Tables are processed strictly one after another.
type Pipeline struct {
	Index  tabldoc.IndexFetcher
	Fields tabldoc.FieldFetcher
	Writer tabldoc.TableWriter
	Limit  int
	Logger *slog.Logger
}

// Result holds the outcome of a pipeline run.
type Result struct {
	Found   int
	Saved   int
	Skipped int
	Failed  int
	Fields  int
}

// ProgressEvent reports progress during a pipeline run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Table     string
	Fields    int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressSaved
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting pipeline progress.
type ProgressFunc func(event ProgressEvent)

// Run fetches up to Limit tables from the index and writes each one that has
// fields. A table whose fields cannot be fetched or parsed is skipped, and a
// table that cannot be written is counted as failed; neither stops the run.
// An unavailable or empty index yields an empty result. Run returns an error
// only when ctx is done.
func (p *Pipeline) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	logger := loggerOrDiscard(p.Logger)
	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	result := &Result{}

	tables, err := p.Index.FetchIndex(ctx, p.Limit)
	if err != nil {
		logger.Error("index fetch failed", "err", err)
	}
	if len(tables) == 0 {
		logger.Warn("no tables to process")
		notify(ProgressEvent{Type: ProgressFinished})
		return result, ctx.Err()
	}

	result.Found = len(tables)
	total := len(tables)
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	for i, table := range tables {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		event := ProgressEvent{Completed: i + 1, Total: total, Table: table.Name}

		fields, err := p.Fields.FetchFields(ctx, table.DetailURL)
		if err != nil || len(fields) == 0 {
			if err == nil {
				err = tabldoc.Errorf(tabldoc.EPARSE, "%s: no fields", table.DetailURL)
			}
			logger.Warn("skipping table", "table", table.Name, "url", table.DetailURL, "err", err)
			result.Skipped++
			event.Type = ProgressSkipped
			event.Error = err
			notify(event)
			continue
		}

		rec := tabldoc.Assemble(table, fields)
		if err := p.Writer.WriteTable(ctx, rec); err != nil {
			logger.Error("write failed", "table", table.Name, "err", err)
			result.Failed++
			event.Type = ProgressFailed
			event.Error = err
			notify(event)
			continue
		}

		result.Saved++
		result.Fields += len(fields)
		event.Type = ProgressSaved
		event.Fields = len(fields)
		notify(event)
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return result, nil
}
