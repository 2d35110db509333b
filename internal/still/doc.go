package still

// Package still turns raw feed bytes into displayable bitmaps: JPEG decoding,
// the fixed 16:9 vertical squeeze, PNG encoding for saving, and the
// placeholder card shown before the first frame arrives.
