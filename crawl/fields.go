package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"github.com/fwojciec/tabldoc"
)

// Header labels of the field-definition table. Matching is exact and case-sensitive.
const (
	ColumnField       = "Field"
	ColumnDataElement = "Data Element"
	ColumnDomain      = "Domain"
	ColumnDataType    = "DataType"
	ColumnLength      = "Length"
	ColumnDecimals    = "DecimalPlaces"
	ColumnDescription = "Short Description"
)

// Ensure FieldFetcher implements tabldoc.FieldFetcher at compile time.
var _ tabldoc.FieldFetcher = (*FieldFetcher)(nil)

// FieldFetcher retrieves field definitions from table detail pages.
type FieldFetcher struct {
	Fetcher tabldoc.Fetcher
	Parser  tabldoc.HTMLParser
	BaseURL string
	Logger  *slog.Logger
}

// FetchFields downloads the detail page and parses its field-definition table.
// When no field table is found, the tables present on the page are logged at
// debug level to help diagnose layout changes.
func (f *FieldFetcher) FetchFields(ctx context.Context, detailURL string) ([]tabldoc.FieldRecord, error) {
	logger := loggerOrDiscard(f.Logger)

	base, err := parseBaseURL(f.BaseURL)
	if err != nil {
		return nil, err
	}

	html, err := f.Fetcher.Fetch(ctx, detailURL)
	if err != nil {
		return nil, err
	}

	doc := f.Parser.Parse(html)
	fields, err := ParseFields(doc, base)
	if err != nil {
		for i, table := range doc.FindAll("table", "table") {
			logger.Debug("candidate table",
				"url", detailURL,
				"table", i+1,
				"headers", texts(table.FindAll("th", CellClass)),
				"rows", len(table.FindAll("tr", "")),
			)
		}
		return nil, tabldoc.Errorf(tabldoc.EPARSE, "%s: %s", detailURL, tabldoc.ErrorMessage(err))
	}

	for _, field := range fields {
		logger.Debug("field", "url", detailURL, "field", field.Field, "type", field.DataType)
	}
	return fields, nil
}

// ParseFields extracts field records from a parsed detail page.
//
// The field-definition table is the first element classed "table" whose
// styled header cells include both "Field" and "DataType". Column positions
// are taken from the header texts, so reordered columns are tolerated; only
// Field and DataType are mandatory. Data rows are the rows after the first
// row whose header cells include "Field". Rows with fewer data cells than
// there are header cells, and rows with a blank field name, are skipped.
func ParseFields(doc tabldoc.Node, base *url.URL) ([]tabldoc.FieldRecord, error) {
	tables := doc.FindAll("table", "table")
	for _, table := range tables {
		headers := texts(table.FindAll("th", CellClass))
		cols := newColumns(headers)
		if !cols.has(ColumnField) || !cols.has(ColumnDataType) {
			continue
		}

		// Only the first matching table on the page is processed.
		rows := table.FindAll("tr", "")
		start := headerRow(rows)
		if start < 0 {
			return nil, tabldoc.Errorf(tabldoc.EPARSE, "field table has no header row")
		}

		var fields []tabldoc.FieldRecord
		for _, row := range rows[start+1:] {
			cells := row.FindAll("td", CellClass)
			if len(cells) < len(headers) {
				continue
			}

			field, ok := parseFieldRow(row, cells, cols, base)
			if !ok {
				continue
			}
			fields = append(fields, field)
		}

		if len(fields) == 0 {
			return nil, tabldoc.Errorf(tabldoc.EPARSE, "field table has no field rows (%d rows, headers %q)", len(rows), headers)
		}
		return fields, nil
	}

	return nil, tabldoc.Errorf(tabldoc.EPARSE, "no field table found (%d tables on page)", len(tables))
}

// headerRow returns the index of the first row whose header cells include
// the Field column, or -1.
func headerRow(rows []tabldoc.Node) int {
	for i, row := range rows {
		if slices.Contains(texts(row.FindAll("th", CellClass)), ColumnField) {
			return i
		}
	}
	return -1
}

func parseFieldRow(row tabldoc.Node, cells []tabldoc.Node, cols columns, base *url.URL) (tabldoc.FieldRecord, bool) {
	name := linkOrText(cols.cell(cells, ColumnField)).Name
	if strings.TrimSpace(name) == "" {
		return tabldoc.FieldRecord{}, false
	}

	return tabldoc.FieldRecord{
		Field:            name,
		Key:              isChecked(row),
		DataElement:      resolveRef(linkOrText(cols.cell(cells, ColumnDataElement)), base),
		Domain:           resolveRef(linkOrText(cols.cell(cells, ColumnDomain)), base),
		DataType:         textOf(cols.cell(cells, ColumnDataType)),
		Length:           textOf(cols.cell(cells, ColumnLength)),
		Decimals:         textOf(cols.cell(cells, ColumnDecimals)),
		ShortDescription: textOf(cols.cell(cells, ColumnDescription)),
	}, true
}

// isChecked reports whether the row contains a checked input, which marks
// the field as part of the primary key.
func isChecked(row tabldoc.Node) bool {
	for _, input := range row.FindAll("input", "") {
		if _, ok := input.Attr("checked"); ok {
			return true
		}
	}
	return false
}

// linkOrText returns the cell's link text and raw target when it holds a
// link, otherwise the cell text with an empty target.
func linkOrText(cell tabldoc.Node) tabldoc.Ref {
	if cell == nil {
		return tabldoc.Ref{}
	}
	if link, ok := cell.First("a"); ok {
		href, _ := link.Attr("href")
		return tabldoc.Ref{Name: link.Text(), URL: href}
	}
	return tabldoc.Ref{Name: cell.Text()}
}

func resolveRef(ref tabldoc.Ref, base *url.URL) tabldoc.Ref {
	if ref.URL != "" {
		ref.URL = resolveURL(base, ref.URL)
	}
	return ref
}

func textOf(cell tabldoc.Node) string {
	if cell == nil {
		return ""
	}
	return cell.Text()
}

// columns maps header labels to cell positions.
type columns map[string]int

func newColumns(headers []string) columns {
	cols := make(columns, len(headers))
	for i, h := range headers {
		if _, ok := cols[h]; !ok {
			cols[h] = i
		}
	}
	return cols
}

func (c columns) has(name string) bool {
	_, ok := c[name]
	return ok
}

// cell returns the cell under the named column, or nil if the column is absent.
func (c columns) cell(cells []tabldoc.Node, name string) tabldoc.Node {
	i, ok := c[name]
	if !ok || i >= len(cells) {
		return nil
	}
	return cells[i]
}
