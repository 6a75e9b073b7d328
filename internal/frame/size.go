package frame

import (
	"fmt"
	"math"
)

// Size is a figure size in inches.
type Size struct {
	Width  float64
	Height float64
}

// Pixels projects the size to integer pixels at dpi. Sizes returned by
// [NormalizedSize] are exact pixel counts divided by dpi, so rounding
// recovers those counts despite float error.
func (s Size) Pixels(dpi int) (width, height int) {
	d := float64(dpi)
	return int(math.Round(s.Width * d)), int(math.Round(s.Height * d))
}

// FrameBytes is the length of one RGBA raster of this size at dpi.
func (s Size) FrameBytes(dpi int) int {
	w, h := s.Pixels(dpi)
	return w * h * 4
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%gin", s.Width, s.Height)
}

// NormalizedSize returns fig's size adjusted so that its pixel projection at
// dpi is even in both dimensions: each dimension is floored to whole pixels
// and bumped by one pixel when odd. Encoders working in yuv420p reject odd
// frame dimensions.
func NormalizedSize(fig Figure, dpi int) Size {
	w, h := fig.SizeInches()
	return Size{
		Width:  evenInches(w, dpi),
		Height: evenInches(h, dpi),
	}
}

func evenInches(inches float64, dpi int) float64 {
	px := int(math.Floor(inches * float64(dpi)))
	px += px % 2
	return float64(px) / float64(dpi)
}
