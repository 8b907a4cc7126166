// Package crawl provides table catalog extraction. It discovers tables from
// the index page, parses each table's field definitions from its detail page,
// and hands the assembled records to a writer, one table at a time.
package crawl

import (
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fwojciec/tabldoc"
)

// DefaultLimit is the number of tables taken from the index when no limit is given.
const DefaultLimit = 10

// CellClass is the class the origin puts on styled header and data cells.
const CellClass = "sapds-alv"

// parseBaseURL parses the site base URL used to resolve relative links.
func parseBaseURL(raw string) (*url.URL, error) {
	base, err := url.Parse(raw)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, tabldoc.Errorf(tabldoc.EINVALID, "invalid base URL %q", raw)
	}
	return base, nil
}

// resolveURL resolves a link target against the base URL.
// Returns empty string if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// texts returns the trimmed text of each node.
func texts(nodes []tabldoc.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Text()
	}
	return out
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}
