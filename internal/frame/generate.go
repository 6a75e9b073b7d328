package frame

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Options controls frame generation.
type Options struct {
	DPI      int
	Workers  int      // Pool size; values < 1 mean 1.
	Progress Progress // Optional.
}

// Generate rasterizes every frame with fn and returns the rasters in input
// order together with the shared frame size.
//
// The first frame is rendered once on its own to measure the figure; its
// normalized size is then forced onto every frame, the first included.
// Workers are bounded by opts.Workers. The first error cancels the pool:
// no further frames are dispatched, frames not yet started are skipped,
// and Generate returns that error with no rasters.
func Generate[F any](ctx context.Context, fn RenderFunc[F], frames []F, opts Options) ([][]byte, Size, error) {
	if len(frames) == 0 {
		return nil, Size{}, ErrNoFrames
	}

	size, err := measure(fn, frames[0], opts.DPI)
	if err != nil {
		return nil, Size{}, err
	}
	want := size.FrameBytes(opts.DPI)

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	rasters := make([][]byte, len(frames))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range frames {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raster, err := renderOne(fn, frames[i], i, &size, opts.DPI)
			if err != nil {
				return err
			}
			if len(raster) != want {
				return &FrameError{
					Index: i,
					Err:   fmt.Errorf("%w: got %d bytes, want %d", ErrRasterSize, len(raster), want),
				}
			}
			rasters[i] = raster
			if opts.Progress != nil {
				_ = opts.Progress.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Size{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Size{}, err
	}
	return rasters, size, nil
}

// measure renders the first frame at its natural size and returns the
// normalized size. The figure is closed before returning.
func measure[F any](fn RenderFunc[F], data F, dpi int) (size Size, err error) {
	defer recoverFrame(0, &err)

	fig, err := fn(data)
	if err != nil {
		return Size{}, err
	}
	if fig == nil {
		return Size{}, &FrameError{Index: 0, Err: ErrNilFigure}
	}
	defer func() {
		if cerr := fig.Close(); cerr != nil && err == nil {
			err = &FrameError{Index: 0, Err: fmt.Errorf("close figure: %w", cerr)}
		}
	}()

	fig.SetDPI(dpi)
	return NormalizedSize(fig, dpi), nil
}

// renderOne runs Render for frame i, turning panics and generator-level
// sentinels into *FrameError while passing fn's own errors through.
func renderOne[F any](fn RenderFunc[F], data F, i int, size *Size, dpi int) (raster []byte, err error) {
	defer recoverFrame(i, &err)

	raster, err = Render(fn, data, size, dpi)
	if err == ErrNilFigure {
		return nil, &FrameError{Index: i, Err: err}
	}
	return raster, err
}

func recoverFrame(i int, err *error) {
	if r := recover(); r != nil {
		*err = &FrameError{Index: i, Err: fmt.Errorf("panic: %v", r)}
	}
}
