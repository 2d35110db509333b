package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default feed and frame geometry. The feed serves 704x480 stills that are
// squeezed to 704x396 when 16:9 aspect correction is on.
const (
	DefaultFeedURL = "https://science.ksc.nasa.gov/shuttle/countdown/video/chan2large.jpg"

	FrameWidth      = 704
	FrameHeight     = 480
	FrameHeight16x9 = 396
)

// Reload interval bounds in seconds
const (
	MinReloadInterval     = 45
	DefaultReloadInterval = 45
	MaxReloadInterval     = 300
)

// Default values
const (
	DefaultFetchTimeout  = 10 * time.Second
	DefaultAutoReload    = true
	DefaultCorrectAspect = false
)

// Environment overrides
const (
	EnvFeedURL = "SPACESTILLS_FEED_URL"
)

// ValidationError reports a rejected reload interval input
type ValidationError struct {
	Input  string
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid reload interval %q: %s", e.Input, e.Reason)
}

// Settings holds the in-memory application configuration. Nothing is persisted
// across runs; mutation happens only through direct user input.
type Settings struct {
	FeedURL         string
	FetchTimeout    time.Duration
	IntervalSeconds int
	AutoReload      bool
	CorrectAspect   bool
}

// NewSettings creates settings populated with defaults and environment overrides
func NewSettings() *Settings {
	feedURL := DefaultFeedURL
	if url := os.Getenv(EnvFeedURL); url != "" {
		feedURL = url
	}

	return &Settings{
		FeedURL:         feedURL,
		FetchTimeout:    DefaultFetchTimeout,
		IntervalSeconds: DefaultReloadInterval,
		AutoReload:      DefaultAutoReload,
		CorrectAspect:   DefaultCorrectAspect,
	}
}

// Interval returns the reload interval as a duration
func (s *Settings) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

// SetInterval validates and stores a new reload interval. On rejection the
// previous interval is left unchanged.
func (s *Settings) SetInterval(raw string) error {
	seconds, err := ValidateInterval(raw)
	if err != nil {
		return err
	}
	s.IntervalSeconds = seconds
	return nil
}

// ValidateInterval parses raw user input and checks it against the allowed
// range. It returns the interval in seconds.
func ValidateInterval(raw string) (int, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Input: raw, Reason: "not an integer"}
	}

	if seconds < MinReloadInterval || seconds > MaxReloadInterval {
		return 0, &ValidationError{
			Input:  raw,
			Reason: fmt.Sprintf("must be between %d and %d seconds", MinReloadInterval, MaxReloadInterval),
		}
	}

	return seconds, nil
}
