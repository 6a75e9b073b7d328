// Package plotfig adapts gonum plots to animatrix figures, so a render
// function can build a *plot.Plot and hand it over for rasterization.
package plotfig

import (
	"errors"
	"fmt"
	"image"
	imgdraw "image/draw"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/backmassage/animatrix"
)

// ErrClosed is returned when a closed Figure is rasterized.
var ErrClosed = errors.New("plotfig: figure is closed")

// Figure draws a gonum plot at a given size in inches.
type Figure struct {
	plot   *plot.Plot
	width  float64
	height float64
	dpi    int
}

var _ animatrix.Figure = (*Figure)(nil)

// New wraps p as a figure of width x height inches at vgimg's default dpi.
func New(p *plot.Plot, width, height float64) *Figure {
	return &Figure{plot: p, width: width, height: height, dpi: vgimg.DefaultDPI}
}

func (f *Figure) SizeInches() (width, height float64) { return f.width, f.height }

func (f *Figure) SetDPI(dpi int) { f.dpi = dpi }

func (f *Figure) SetSizeInches(width, height float64) { f.width, f.height = width, height }

// WriteRGBA draws the plot onto a white canvas and writes its pixels as
// tightly packed RGBA rows.
func (f *Figure) WriteRGBA(w io.Writer) error {
	if f.plot == nil {
		return ErrClosed
	}
	pw := int(math.Round(f.width * float64(f.dpi)))
	ph := int(math.Round(f.height * float64(f.dpi)))
	if pw <= 0 || ph <= 0 {
		return fmt.Errorf("plotfig: empty canvas %dx%d", pw, ph)
	}

	// The canvas draws into its own copy of the image, so the pixels
	// are read back from c.Image().
	c := vgimg.NewWith(
		vgimg.UseImage(image.NewRGBA(image.Rect(0, 0, pw, ph))),
		vgimg.UseDPI(f.dpi),
	)
	f.plot.Draw(draw.New(c))
	return writeRows(w, toRGBA(c.Image()))
}

// Close drops the plot. Further rasterization fails with ErrClosed.
func (f *Figure) Close() error {
	f.plot = nil
	return nil
}

// toRGBA returns img as *image.RGBA, converting when the canvas uses
// another layout.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	imgdraw.Draw(rgba, rgba.Bounds(), img, b.Min, imgdraw.Src)
	return rgba
}

// writeRows writes the image rows without stride padding.
func writeRows(w io.Writer, img *image.RGBA) error {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		if _, err := w.Write(img.Pix[off : off+rowLen]); err != nil {
			return err
		}
	}
	return nil
}
