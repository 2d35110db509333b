package fetch

import "context"

// Fetcher defines the interface for the still-frame download service.
type Fetcher interface {
	// Fetch downloads the current frame and returns its raw bytes.
	Fetch(ctx context.Context) ([]byte, error)

	// URL returns the feed URL this fetcher reads from.
	URL() string
}
