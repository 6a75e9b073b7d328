package frame

import (
	"bytes"
	"fmt"
)

// Render draws data with fn and rasterizes the figure into an RGBA buffer
// at dpi. When size is non-nil it overrides whatever size fn produced. The
// figure is closed on every path once fn has returned it. Errors from fn
// are returned unchanged.
func Render[F any](fn RenderFunc[F], data F, size *Size, dpi int) (raster []byte, err error) {
	fig, err := fn(data)
	if err != nil {
		return nil, err
	}
	if fig == nil {
		return nil, ErrNilFigure
	}
	defer func() {
		if cerr := fig.Close(); cerr != nil && err == nil {
			raster, err = nil, fmt.Errorf("close figure: %w", cerr)
		}
	}()

	fig.SetDPI(dpi)
	var buf bytes.Buffer
	if size != nil {
		fig.SetSizeInches(size.Width, size.Height)
		buf.Grow(size.FrameBytes(dpi))
	}
	if err := fig.WriteRGBA(&buf); err != nil {
		return nil, fmt.Errorf("rasterize figure: %w", err)
	}
	return buf.Bytes(), nil
}
