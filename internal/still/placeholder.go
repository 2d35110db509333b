package still

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/spacestills/spacestills/internal/config"
)

// Placeholder text
const (
	PlaceholderTitle    = "NO SIGNAL"
	PlaceholderSubtitle = "waiting for the first still frame"
)

// Placeholder renders the card shown before the first successful fetch. It
// matches the uncorrected frame geometry so the window does not resize when
// the first real frame lands.
func Placeholder() image.Image {
	dc := gg.NewContext(config.FrameWidth, config.FrameHeight)

	// Deep blue background, the classic "no signal" look
	dc.SetRGB(0.05, 0.12, 0.35)
	dc.Clear()

	dc.SetRGB(0.92, 0.92, 0.92)
	cx := float64(config.FrameWidth) / 2
	cy := float64(config.FrameHeight) / 2
	dc.DrawStringAnchored(PlaceholderTitle, cx, cy-10, 0.5, 0.5)
	dc.DrawStringAnchored(PlaceholderSubtitle, cx, cy+10, 0.5, 0.5)

	return dc.Image()
}
