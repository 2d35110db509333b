package still

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/spacestills/spacestills/internal/config"
)

// DecodeError reports malformed or truncated image data
type DecodeError struct {
	Err error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode frame: %v", e.Err)
}

// Unwrap returns the underlying decoder error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode converts raw feed bytes into a bitmap
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return img, nil
}

// CorrectedHeight returns the height after the fixed 16:9 vertical squeeze
func CorrectedHeight(height int) int {
	factor := float64(config.FrameHeight16x9) / float64(config.FrameHeight)
	return int(math.Round(float64(height) * factor))
}

// CorrectAspect applies the vertical squeeze that compensates for the feed's
// known distortion. The input bitmap is left untouched.
func CorrectAspect(img image.Image) image.Image {
	bounds := img.Bounds()
	return imaging.Resize(img, bounds.Dx(), CorrectedHeight(bounds.Dy()), imaging.Lanczos)
}

// EncodePNG encodes a bitmap as PNG regardless of its source format
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode frame as PNG: %w", err)
	}
	return buf.Bytes(), nil
}
