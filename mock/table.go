package mock

import (
	"context"

	"github.com/fwojciec/tabldoc"
)

// Compile-time interface verification.
var (
	_ tabldoc.IndexFetcher = (*IndexFetcher)(nil)
	_ tabldoc.FieldFetcher = (*FieldFetcher)(nil)
	_ tabldoc.TableWriter  = (*TableWriter)(nil)
)

// IndexFetcher is a mock implementation of tabldoc.IndexFetcher.
type IndexFetcher struct {
	FetchIndexFn func(ctx context.Context, limit int) ([]tabldoc.TableSummary, error)
}

func (f *IndexFetcher) FetchIndex(ctx context.Context, limit int) ([]tabldoc.TableSummary, error) {
	return f.FetchIndexFn(ctx, limit)
}

// FieldFetcher is a mock implementation of tabldoc.FieldFetcher.
type FieldFetcher struct {
	FetchFieldsFn func(ctx context.Context, detailURL string) ([]tabldoc.FieldRecord, error)
}

func (f *FieldFetcher) FetchFields(ctx context.Context, detailURL string) ([]tabldoc.FieldRecord, error) {
	return f.FetchFieldsFn(ctx, detailURL)
}

// TableWriter is a mock implementation of tabldoc.TableWriter.
type TableWriter struct {
	WriteTableFn func(ctx context.Context, rec *tabldoc.TableRecord) error
}

func (w *TableWriter) WriteTable(ctx context.Context, rec *tabldoc.TableRecord) error {
	return w.WriteTableFn(ctx, rec)
}
