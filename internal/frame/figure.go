package frame

import "io"

// Figure is a drawable surface produced for exactly one data frame.
// Implementations must not share mutable state between figures, since
// figures are rendered concurrently.
type Figure interface {
	// SizeInches reports the figure's current size in inches.
	SizeInches() (width, height float64)
	// SetDPI sets the rasterization resolution in dots per inch.
	SetDPI(dpi int)
	// SetSizeInches forces the figure size in inches.
	SetSizeInches(width, height float64)
	// WriteRGBA rasterizes the figure at its size and DPI, writing
	// width*height*4 bytes of row-major, non-padded RGBA.
	WriteRGBA(w io.Writer) error
	// Close releases drawing resources. It is called exactly once.
	Close() error
}

// RenderFunc draws one data frame into a new Figure.
type RenderFunc[F any] func(data F) (Figure, error)

// Progress receives one tick per finished frame.
// *progressbar.ProgressBar satisfies it. Ticks are best effort: an error
// from Add is ignored and never fails generation.
type Progress interface {
	Add(n int) error
}
