package model

import (
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
)

// Frame ID prefix
const (
	FrameIDPrefix = "frame-"
)

// Frame holds one still frame. The original bitmap is cached so that toggling
// aspect correction off restores the exact pixels the feed delivered.
type Frame struct {
	ID        string
	FetchedAt time.Time

	original image.Image
	display  image.Image
}

// NewFrame creates a frame from a freshly decoded bitmap
func NewFrame(img image.Image) *Frame {
	return &Frame{
		ID:        generateFrameID(),
		FetchedAt: time.Now(),
		original:  img,
		display:   img,
	}
}

// Original returns the bitmap as delivered by the feed
func (f *Frame) Original() image.Image {
	return f.original
}

// Display returns the bitmap currently meant for rendering
func (f *Frame) Display() image.Image {
	return f.display
}

// SetDisplay replaces the display bitmap without touching the original
func (f *Frame) SetDisplay(img image.Image) {
	f.display = img
}

// IsCorrected returns true if the display bitmap differs in size from the original
func (f *Frame) IsCorrected() bool {
	return f.display.Bounds().Size() != f.original.Bounds().Size()
}

// Size returns the dimensions of the display bitmap
func (f *Frame) Size() (int, int) {
	b := f.display.Bounds()
	return b.Dx(), b.Dy()
}

// generateFrameID generates a unique frame ID using UUID v7 for better uniqueness and time ordering
func generateFrameID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(FrameIDPrefix+"%d", time.Now().UnixNano())
	}
	return FrameIDPrefix + id.String()
}
