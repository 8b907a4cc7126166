package tabldoc

import "context"

// Fetcher retrieves HTML from URLs over a reusable session.
// A single Fetcher is shared by every request of a run.
type Fetcher interface {
	// Fetch requests the URL and returns the response body as UTF-8 HTML.
	// Non-200 responses and transport failures return an EFETCH error.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases the session.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
