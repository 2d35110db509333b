package viewer

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/spacestills/spacestills/internal/config"
	"github.com/spacestills/spacestills/internal/fetch"
	"github.com/spacestills/spacestills/internal/model"
	"github.com/spacestills/spacestills/internal/still"
)

// File permissions
const (
	savedFilePermissions = 0644
)

// SaveError reports a failed attempt to write the current frame to disk
type SaveError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error
func (e *SaveError) Unwrap() error {
	return e.Err
}

// Snapshot is the controller state pushed to the UI on every change
type Snapshot struct {
	Frame  *model.Frame // nil until the first successful fetch
	State  model.ViewerState
	Status string // human-readable status line
}

// Controller owns the current frame and the reload configuration. All
// mutation goes through its methods; the UI only renders snapshots.
type Controller struct {
	mu       sync.Mutex
	fetcher  fetch.Fetcher
	settings *config.Settings
	log      zerolog.Logger

	frame        *model.Frame
	state        model.ViewerState
	timer        *time.Timer
	nextReloadAt time.Time
	onUpdate     func(Snapshot)
	closed       bool
}

// New creates a controller around a fetcher and the application settings
func New(fetcher fetch.Fetcher, settings *config.Settings, log zerolog.Logger) *Controller {
	return &Controller{
		fetcher:  fetcher,
		settings: settings,
		state:    model.StateIdle,
		log:      log.With().Str("component", "viewer").Logger(),
	}
}

// SetUpdateCallback sets the callback function for state updates
func (c *Controller) SetUpdateCallback(callback func(Snapshot)) {
	c.mu.Lock()
	c.onUpdate = callback
	c.mu.Unlock()
}

// Start triggers the initial reload. The auto-reload timer is armed once the
// first fetch completes.
func (c *Controller) Start() {
	c.Reload()
}

// Reload fetches a fresh frame in the background. A reload already in flight
// makes this a no-op, so fetches never overlap.
func (c *Controller) Reload() {
	c.mu.Lock()
	if c.closed || c.state.IsBusy() {
		c.mu.Unlock()
		return
	}
	c.state = model.StateFetching
	c.stopTimerLocked()
	snapshot := c.snapshotLocked("Downloading still frame...")
	c.mu.Unlock()

	c.publish(snapshot)
	go c.reload()
}

// reload runs one fetch/decode cycle and rearms the timer afterwards
func (c *Controller) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), c.settings.FetchTimeout)
	defer cancel()

	data, err := c.fetcher.Fetch(ctx)

	var frame *model.Frame
	if err == nil {
		decoded, decodeErr := still.Decode(data)
		if decodeErr != nil {
			err = decodeErr
		} else {
			frame = model.NewFrame(decoded)
		}
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	var status string
	if err != nil {
		c.state = model.StateError
		if c.frame != nil {
			status = fmt.Sprintf("Reload failed: %v (keeping previous frame)", err)
		} else {
			status = fmt.Sprintf("Reload failed: %v", err)
		}
		c.log.Warn().Err(err).Msg("reload failed")
	} else {
		if c.settings.CorrectAspect {
			frame.SetDisplay(still.CorrectAspect(frame.Original()))
		}
		c.frame = frame
		c.state = model.StateDisplaying
		status = fmt.Sprintf("Frame updated at %s", frame.FetchedAt.Format("15:04:05"))
		c.log.Info().Str("frame_id", frame.ID).Msg("frame updated")
	}

	c.armTimerLocked()
	snapshot := c.snapshotLocked(status)
	c.mu.Unlock()

	c.publish(snapshot)
}

// SetAspectCorrection toggles the 16:9 vertical squeeze on the current frame.
// Toggling off restores the cached original pixels exactly.
func (c *Controller) SetAspectCorrection(enabled bool) {
	c.mu.Lock()
	c.settings.CorrectAspect = enabled

	status := "Aspect correction off"
	if enabled {
		status = "Aspect correction on"
	}

	if c.frame != nil {
		if enabled {
			c.frame.SetDisplay(still.CorrectAspect(c.frame.Original()))
		} else {
			c.frame.SetDisplay(c.frame.Original())
		}
	}
	snapshot := c.snapshotLocked(status)
	c.mu.Unlock()

	c.publish(snapshot)
}

// SetAutoReload suspends or resumes the reload timer without touching the
// current frame
func (c *Controller) SetAutoReload(enabled bool) {
	c.mu.Lock()
	c.settings.AutoReload = enabled

	var status string
	if enabled {
		if !c.state.IsBusy() {
			c.armTimerLocked()
		}
		status = fmt.Sprintf("Auto-reload every %ds", c.settings.IntervalSeconds)
	} else {
		c.stopTimerLocked()
		status = "Auto-reload off"
	}
	snapshot := c.snapshotLocked(status)
	c.mu.Unlock()

	c.publish(snapshot)
}

// SetReloadInterval validates and applies a new reload interval, rescheduling
// the timer immediately. A rejected value leaves the previous interval and
// schedule untouched.
func (c *Controller) SetReloadInterval(raw string) error {
	c.mu.Lock()
	if err := c.settings.SetInterval(raw); err != nil {
		c.mu.Unlock()
		return err
	}

	if c.settings.AutoReload && !c.state.IsBusy() {
		c.armTimerLocked()
	}
	status := fmt.Sprintf("Reload interval set to %ds", c.settings.IntervalSeconds)
	snapshot := c.snapshotLocked(status)
	c.mu.Unlock()

	c.publish(snapshot)
	return nil
}

// encodeCurrent returns the currently displayed bitmap encoded as PNG
func (c *Controller) encodeCurrent() ([]byte, error) {
	c.mu.Lock()
	frame := c.frame
	c.mu.Unlock()

	if frame == nil {
		return nil, fmt.Errorf("no frame to save yet")
	}
	return still.EncodePNG(frame.Display())
}

// Save writes the currently displayed bitmap to path as PNG. The path is
// taken verbatim: a typed path without a .png extension is not corrected.
func (c *Controller) Save(path string) error {
	data, err := c.encodeCurrent()
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, data, savedFilePermissions); err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("save failed")
		return &SaveError{Path: path, Err: err}
	}

	c.log.Info().Str("path", path).Msg("frame saved")
	return nil
}

// CurrentFrame returns the frame being displayed, or nil before the first
// successful fetch
func (c *Controller) CurrentFrame() *model.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// State returns the current viewer state
func (c *Controller) State() model.ViewerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// NextReloadAt returns when the next automatic reload is due; the zero time
// means no reload is scheduled
func (c *Controller) NextReloadAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer == nil {
		return time.Time{}
	}
	return c.nextReloadAt
}

// Close stops the timer and rejects further reloads
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.stopTimerLocked()
	c.mu.Unlock()
}

// armTimerLocked schedules the next automatic reload. Callers hold c.mu.
func (c *Controller) armTimerLocked() {
	c.stopTimerLocked()
	if !c.settings.AutoReload || c.closed {
		return
	}

	interval := c.settings.Interval()
	c.nextReloadAt = time.Now().Add(interval)
	c.timer = time.AfterFunc(interval, c.Reload)
}

// stopTimerLocked cancels the pending automatic reload. Callers hold c.mu.
func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.nextReloadAt = time.Time{}
}

// snapshotLocked builds an update snapshot. Callers hold c.mu.
func (c *Controller) snapshotLocked(status string) Snapshot {
	return Snapshot{
		Frame:  c.frame,
		State:  c.state,
		Status: status,
	}
}

// publish delivers a snapshot to the UI callback outside the lock
func (c *Controller) publish(snapshot Snapshot) {
	c.mu.Lock()
	callback := c.onUpdate
	c.mu.Unlock()

	if callback != nil {
		callback(snapshot)
	}
}
