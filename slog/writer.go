package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tabldoc"
)

// Ensure LoggingTableWriter implements tabldoc.TableWriter.
var _ tabldoc.TableWriter = (*LoggingTableWriter)(nil)

// LoggingTableWriter wraps a TableWriter and logs each write.
type LoggingTableWriter struct {
	next   tabldoc.TableWriter
	logger *slog.Logger
}

// NewLoggingTableWriter creates a new LoggingTableWriter.
func NewLoggingTableWriter(next tabldoc.TableWriter, logger *slog.Logger) *LoggingTableWriter {
	return &LoggingTableWriter{next: next, logger: logger}
}

// WriteTable delegates to the wrapped writer and logs the operation.
func (w *LoggingTableWriter) WriteTable(ctx context.Context, rec *tabldoc.TableRecord) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("table saved",
			"table", rec.Name,
			"fields", len(rec.Fields),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteTable(ctx, rec)
}
