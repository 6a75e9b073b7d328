// Package animatrix turns a sequence of data frames into a video: a
// caller-supplied function draws each frame into a [Figure], the figures
// are rasterized to RGBA in parallel, and the rasters are piped in order
// to an ffmpeg process.
//
//	err := animatrix.RenderAnimation(drawFrame, frames, "out.mp4",
//		animatrix.WithFPS(24), animatrix.WithDPI(100))
//
// The output file exists only if every frame rendered and ffmpeg exited
// with status 0.
package animatrix

import (
	"context"

	"github.com/backmassage/animatrix/internal/config"
	"github.com/backmassage/animatrix/internal/ffmpeg"
	"github.com/backmassage/animatrix/internal/frame"
	"github.com/backmassage/animatrix/internal/logging"
	"github.com/backmassage/animatrix/internal/pipeline"
)

// Figure is a drawable surface for one frame. See [frame.Figure].
type Figure = frame.Figure

// RenderFunc draws one data frame into a new Figure. Figures are closed by
// animatrix; a RenderFunc must not reuse a Figure across calls.
type RenderFunc[F any] = frame.RenderFunc[F]

// Size is a figure size in inches.
type Size = frame.Size

// Stats describes a finished render.
type Stats = pipeline.Stats

// Logger receives progress lines. *logging.Logger from the CLI satisfies it.
type Logger = pipeline.Logger

// FrameError reports a generator-detected failure for one frame (panic,
// nil figure, raster size mismatch).
type FrameError = frame.FrameError

// EncodeError reports a non-zero ffmpeg exit with its full stderr.
type EncodeError = ffmpeg.EncodeError

// Sentinel errors.
var (
	ErrNoFrames   = frame.ErrNoFrames
	ErrNilFigure  = frame.ErrNilFigure
	ErrRasterSize = frame.ErrRasterSize
)

// NormalizedSize returns fig's size adjusted to even pixel dimensions at dpi.
func NormalizedSize(fig Figure, dpi int) Size {
	return frame.NormalizedSize(fig, dpi)
}

// RenderAnimation renders frames with fn and writes the video to filename.
// Defaults are 30 fps, 100 dpi, h264 and 12 render workers.
func RenderAnimation[F any](fn RenderFunc[F], frames []F, filename string, opts ...Option) error {
	_, err := RenderAnimationContext(context.Background(), fn, frames, filename, opts...)
	return err
}

// RenderAnimationContext is RenderAnimation with a context and stats.
// Cancelling ctx stops frame generation or kills the encoder; the error
// then wraps ctx.Err().
func RenderAnimationContext[F any](ctx context.Context, fn RenderFunc[F], frames []F, filename string, opts ...Option) (Stats, error) {
	s := settings{cfg: config.DefaultConfig(), log: logging.Discard()}
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return Stats{}, err
		}
	}
	if err := s.cfg.Validate(); err != nil {
		return Stats{}, err
	}
	return pipeline.Run(ctx, &s.cfg, s.log, fn, frames, filename)
}
