package crawl

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/fwojciec/tabldoc"
)

// Ensure IndexFetcher implements tabldoc.IndexFetcher at compile time.
var _ tabldoc.IndexFetcher = (*IndexFetcher)(nil)

// IndexFetcher discovers tables from the catalog index page.
type IndexFetcher struct {
	Fetcher  tabldoc.Fetcher
	Parser   tabldoc.HTMLParser
	BaseURL  string
	IndexURL string
	Logger   *slog.Logger
}

// FetchIndex downloads the index page and returns up to limit table summaries.
// A limit of zero or less means DefaultLimit.
func (f *IndexFetcher) FetchIndex(ctx context.Context, limit int) ([]tabldoc.TableSummary, error) {
	logger := loggerOrDiscard(f.Logger)

	base, err := parseBaseURL(f.BaseURL)
	if err != nil {
		return nil, err
	}

	html, err := f.Fetcher.Fetch(ctx, f.IndexURL)
	if err != nil {
		return nil, err
	}

	tables := ParseIndex(f.Parser.Parse(html), base, limit)
	if len(tables) == 0 {
		logger.Warn("no tables found on index page", "url", f.IndexURL)
		return tables, nil
	}

	for _, t := range tables {
		logger.Info("table",
			"number", t.Number,
			"name", t.Name,
			"description", t.Description,
			"category", t.Category,
		)
	}
	return tables, nil
}

// ParseIndex extracts table summaries from a parsed index page.
//
// A row is a table entry when it has at least five styled data cells and the
// second cell holds a link: number, name (link text), description, category
// and delivery class. Rows without a link are skipped and do not count
// toward limit.
func ParseIndex(doc tabldoc.Node, base *url.URL, limit int) []tabldoc.TableSummary {
	if limit <= 0 {
		limit = DefaultLimit
	}

	tables := []tabldoc.TableSummary{}
	for _, row := range doc.FindAll("tr", "") {
		if len(tables) >= limit {
			break
		}

		cells := row.FindAll("td", CellClass)
		if len(cells) < 5 {
			continue
		}

		link, ok := cells[1].First("a")
		if !ok {
			continue
		}
		href, ok := link.Attr("href")
		if !ok {
			continue
		}

		tables = append(tables, tabldoc.TableSummary{
			Number:        cells[0].Text(),
			Name:          link.Text(),
			Description:   cells[2].Text(),
			Category:      cells[3].Text(),
			DeliveryClass: cells[4].Text(),
			DetailURL:     resolveURL(base, href),
		})
	}
	return tables
}
