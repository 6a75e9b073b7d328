package frame

import (
	"errors"
	"fmt"
)

// Sentinel errors for generator-level failures. Errors returned by a
// RenderFunc are never wrapped.
var (
	ErrNoFrames   = errors.New("no frames to render")
	ErrNilFigure  = errors.New("render function returned a nil figure")
	ErrRasterSize = errors.New("raster size does not match frame geometry")
)

// FrameError reports a failure the generator detected while producing one
// frame (a nil figure, a raster of the wrong length, or a panic inside the
// render function).
type FrameError struct {
	Index int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Index, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }
