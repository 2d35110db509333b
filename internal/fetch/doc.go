package fetch

// Package fetch downloads the current still frame from the feed URL. One
// bounded HTTP GET per call, no retries; failures are classified so the UI can
// tell a dead network from a feed outage.
