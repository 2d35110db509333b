package config

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestNewSettings(t *testing.T) {
	settings := NewSettings()

	if settings.FeedURL != DefaultFeedURL {
		t.Errorf("Expected feed URL %s, got %s", DefaultFeedURL, settings.FeedURL)
	}

	if settings.IntervalSeconds != DefaultReloadInterval {
		t.Errorf("Expected default interval %d, got %d", DefaultReloadInterval, settings.IntervalSeconds)
	}

	if settings.FetchTimeout != DefaultFetchTimeout {
		t.Errorf("Expected default fetch timeout %v, got %v", DefaultFetchTimeout, settings.FetchTimeout)
	}

	if !settings.AutoReload {
		t.Error("Expected auto-reload to default to enabled")
	}

	if settings.CorrectAspect {
		t.Error("Expected aspect correction to default to disabled")
	}
}

func TestNewSettingsFeedURLOverride(t *testing.T) {
	t.Setenv(EnvFeedURL, "http://localhost:8080/still.jpg")

	settings := NewSettings()
	if settings.FeedURL != "http://localhost:8080/still.jpg" {
		t.Errorf("Expected env feed URL override, got %s", settings.FeedURL)
	}
}

func TestValidateIntervalAcceptsFullRange(t *testing.T) {
	for seconds := MinReloadInterval; seconds <= MaxReloadInterval; seconds++ {
		got, err := ValidateInterval(fmt.Sprintf("%d", seconds))
		if err != nil {
			t.Fatalf("Expected %d to be accepted, got %v", seconds, err)
		}
		if got != seconds {
			t.Fatalf("Expected %d, got %d", seconds, got)
		}
	}
}

func TestValidateIntervalRejects(t *testing.T) {
	inputs := []string{"44", "301", "0", "-45", "1000", "abc", "", "45.5", "4 5"}

	for _, input := range inputs {
		_, err := ValidateInterval(input)
		if err == nil {
			t.Errorf("Expected input %q to be rejected", input)
			continue
		}

		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("Expected ValidationError for input %q, got %T", input, err)
		}
	}
}

func TestSetIntervalKeepsPreviousOnRejection(t *testing.T) {
	settings := NewSettings()

	if err := settings.SetInterval("120"); err != nil {
		t.Fatalf("Expected 120 to be accepted, got %v", err)
	}
	if settings.IntervalSeconds != 120 {
		t.Fatalf("Expected interval 120, got %d", settings.IntervalSeconds)
	}

	if err := settings.SetInterval("301"); err == nil {
		t.Fatal("Expected 301 to be rejected")
	}
	if settings.IntervalSeconds != 120 {
		t.Errorf("Rejected input must leave interval unchanged, got %d", settings.IntervalSeconds)
	}

	if settings.Interval() != 120*time.Second {
		t.Errorf("Expected Interval() of 2m0s, got %v", settings.Interval())
	}
}
