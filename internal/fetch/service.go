package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Download limits
const (
	// MaxFrameBytes caps the response body read. Feed stills are well under
	// 1 MiB; anything larger is not a frame.
	MaxFrameBytes = 8 << 20

	ExpectedContentTypePrefix = "image/"
)

// ErrorKind classifies fetch failures
type ErrorKind string

const (
	// KindNetwork means the request could not be completed (DNS, refused, reset)
	KindNetwork ErrorKind = "network"

	// KindTimeout means the request exceeded the configured deadline
	KindTimeout ErrorKind = "timeout"

	// KindBadStatus means the server answered with a non-2xx status
	KindBadStatus ErrorKind = "bad-status"
)

// Error is a classified fetch failure
type Error struct {
	Kind        ErrorKind
	URL         string
	Status      int
	ContentType string
	Err         error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Kind {
	case KindBadStatus:
		if e.ContentType != "" {
			return fmt.Sprintf("fetch %s: unexpected content type %q (status %d)", e.URL, e.ContentType, e.Status)
		}
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	case KindTimeout:
		return fmt.Sprintf("fetch %s: timed out", e.URL)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

// Unwrap returns the underlying transport error, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// Service downloads still frames from a fixed feed URL
type Service struct {
	client  *http.Client
	feedURL string
	log     zerolog.Logger
}

// NewService creates a new fetch service with a bounded request timeout
func NewService(feedURL string, timeout time.Duration, log zerolog.Logger) *Service {
	return &Service{
		client:  &http.Client{Timeout: timeout},
		feedURL: feedURL,
		log:     log.With().Str("component", "fetch").Logger(),
	}
}

// URL returns the feed URL this service reads from
func (s *Service) URL() string {
	return s.feedURL
}

// Fetch performs a single GET against the feed URL and returns the raw image
// bytes. It does not retry; classification of the failure is left to the
// returned *Error.
func (s *Service) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: s.feedURL, Err: err}
	}

	started := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		kind := classifyTransportError(err)
		s.log.Warn().Str("kind", string(kind)).Err(err).Msg("frame download failed")
		return nil, &Error{Kind: kind, URL: s.feedURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Warn().Int("status", resp.StatusCode).Msg("feed answered with bad status")
		return nil, &Error{Kind: KindBadStatus, URL: s.feedURL, Status: resp.StatusCode}
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, ExpectedContentTypePrefix) {
		// The feed occasionally serves an HTML error page with status 200
		s.log.Warn().Str("content_type", ct).Msg("feed answered with non-image content")
		return nil, &Error{Kind: KindBadStatus, URL: s.feedURL, Status: resp.StatusCode, ContentType: ct}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFrameBytes))
	if err != nil {
		kind := classifyTransportError(err)
		return nil, &Error{Kind: kind, URL: s.feedURL, Err: err}
	}

	s.log.Debug().
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(started)).
		Msg("frame downloaded")

	return data, nil
}

// classifyTransportError maps a transport failure to an ErrorKind
func classifyTransportError(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return KindTimeout
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	return KindNetwork
}
