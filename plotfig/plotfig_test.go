package plotfig

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"

	"github.com/backmassage/animatrix"
)

func TestFigure_WriteRGBA(t *testing.T) {
	fig := New(plot.New(), 3, 2)
	fig.SetDPI(30)

	var buf bytes.Buffer
	require.NoError(t, fig.WriteRGBA(&buf))
	require.Equal(t, 90*60*4, buf.Len())
	// The canvas starts white and opaque.
	require.Equal(t, []byte{255, 255, 255, 255}, buf.Bytes()[:4])
}

func TestFigure_ForcedSize(t *testing.T) {
	fig := New(plot.New(), 6.4, 4.8)
	w, h := fig.SizeInches()
	require.Equal(t, 6.4, w)
	require.Equal(t, 4.8, h)

	fig.SetDPI(20)
	fig.SetSizeInches(4, 3)
	var buf bytes.Buffer
	require.NoError(t, fig.WriteRGBA(&buf))
	require.Equal(t, 80*60*4, buf.Len())
}

func TestFigure_Closed(t *testing.T) {
	fig := New(plot.New(), 1, 1)
	require.NoError(t, fig.Close())
	require.ErrorIs(t, fig.WriteRGBA(&bytes.Buffer{}), ErrClosed)
}

func TestWriteRows_SubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)

	var buf bytes.Buffer
	require.NoError(t, writeRows(&buf, sub))
	require.Equal(t, 2*2*4, buf.Len())
	require.Equal(t, []byte{1, 2, 3, 255}, buf.Bytes()[:4])
}

func TestLineRenderer_SharedSize(t *testing.T) {
	fn := LineRenderer(LineOptions{Title: "wave", Width: 1.01, Height: 0.75, YMin: -1, YMax: 1})
	frames := [][]float64{{0, 0.5, 1}, {1, 0, -1}}

	var sizes []animatrix.Size
	for _, f := range frames {
		fig, err := fn(f)
		require.NoError(t, err)
		sizes = append(sizes, animatrix.NormalizedSize(fig, 10))
		require.NoError(t, fig.Close())
	}
	require.Equal(t, sizes[0], sizes[1])
	w, h := sizes[0].Pixels(10)
	require.Equal(t, 10, w)
	require.Equal(t, 8, h)
}

// pixelStats counts fully opaque and non-white pixels in packed RGBA.
func pixelStats(pix []byte) (opaque, inked int) {
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i+3] == 255 {
			opaque++
		}
		if pix[i] != 255 || pix[i+1] != 255 || pix[i+2] != 255 {
			inked++
		}
	}
	return opaque, inked
}

func TestLineRenderer_DrawsPixels(t *testing.T) {
	fn := LineRenderer(LineOptions{Title: "wave", Width: 2, Height: 1.5, YMin: 0, YMax: 1})
	fig, err := fn([]float64{0, 0.5, 1, 0.5, 0})
	require.NoError(t, err)
	defer fig.Close()

	fig.SetDPI(50)
	var buf bytes.Buffer
	require.NoError(t, fig.WriteRGBA(&buf))
	require.Equal(t, 100*75*4, buf.Len())

	opaque, inked := pixelStats(buf.Bytes())
	require.Equal(t, 100*75, opaque, "every pixel sits on the opaque background")
	require.Positive(t, inked, "line, axes and title must reach the buffer")
}

func TestToRGBA_ConvertsOtherLayouts(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 2, 4, 3))
	src.Set(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	got := toRGBA(src)
	require.Equal(t, image.Rect(0, 0, 2, 1), got.Bounds())
	require.Equal(t, []byte{10, 20, 30, 255}, got.Pix[:4])
}

func TestRange(t *testing.T) {
	lo, hi := Range([][]float64{{1, 2}, {-3, 5}})
	require.InDelta(t, -3.4, lo, 1e-9)
	require.InDelta(t, 5.4, hi, 1e-9)

	lo, hi = Range(nil)
	require.Equal(t, 0.0, lo)
	require.Equal(t, 1.0, hi)

	lo, hi = Range([][]float64{{2, 2}})
	require.Equal(t, 1.5, lo)
	require.Equal(t, 2.5, hi)
}
