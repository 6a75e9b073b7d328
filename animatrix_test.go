package animatrix_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/backmassage/animatrix"
)

// squareFigure is a fixed-size figure filled with one byte value.
type squareFigure struct {
	inches float64
	dpi    int
	fill   byte
}

func (f *squareFigure) SizeInches() (float64, float64) { return f.inches, f.inches }
func (f *squareFigure) SetDPI(dpi int) { f.dpi = dpi }
func (f *squareFigure) SetSizeInches(w, _ float64) { f.inches = w }
func (f *squareFigure) Close() error { return nil }

func (f *squareFigure) WriteRGBA(w io.Writer) error {
	px := int(math.Round(f.inches * float64(f.dpi)))
	_, err := w.Write(bytes.Repeat([]byte{f.fill}, px*px*4))
	return err
}

func drawSquare(v byte) (animatrix.Figure, error) {
	return &squareFigure{inches: 2, fill: v}, nil
}

// fakeFFmpeg records its arguments next to itself and copies stdin to the
// output path (the last argument), unless body overrides that.
func fakeFFmpeg(t *testing.T, body string) (bin, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake encoder needs /bin/sh")
	}
	dir = t.TempDir()
	bin = filepath.Join(dir, "ffmpeg")
	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" > '" + filepath.Join(dir, "args") + "'\n" + body + "\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin, dir
}

const copyStdin = `for last; do :; done
cat > "$last"`

func TestRenderAnimation_ThreeFrames(t *testing.T) {
	bin, dir := fakeFFmpeg(t, copyStdin)
	out := filepath.Join(t.TempDir(), "out.mp4")

	err := animatrix.RenderAnimation(drawSquare, []byte{0, 1, 2}, out,
		animatrix.WithFFmpeg(bin), animatrix.WithFPS(30), animatrix.WithDPI(100))
	require.NoError(t, err)

	args, err := os.ReadFile(filepath.Join(dir, "args"))
	require.NoError(t, err)
	joined := strings.Join(strings.Fields(string(args)), " ")
	require.Contains(t, joined, "-s 200x200")
	require.Contains(t, joined, "-framerate 30")

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	frameLen := 200 * 200 * 4
	require.Len(t, got, 3*frameLen)
	for i := 0; i < 3; i++ {
		require.Equal(t, byte(i), got[i*frameLen], "frame %d out of order", i)
	}
}

func TestRenderAnimation_EncoderError(t *testing.T) {
	bin, _ := fakeFFmpeg(t, `cat > /dev/null
echo "invalid codec" >&2
exit 1`)
	out := filepath.Join(t.TempDir(), "out.mp4")

	err := animatrix.RenderAnimation(drawSquare, []byte{0}, out, animatrix.WithFFmpeg(bin))
	require.Error(t, err)
	require.Contains(t, err.Error(), "1")
	require.Contains(t, err.Error(), "invalid codec")

	var encErr *animatrix.EncodeError
	require.True(t, errors.As(err, &encErr))
	require.Equal(t, 1, encErr.ExitCode)
	require.NoFileExists(t, out)
}

func TestRenderAnimation_InvalidOptions(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.mp4")
	err := animatrix.RenderAnimation(drawSquare, []byte{0}, out,
		animatrix.WithFFmpeg("/nonexistent/ffmpeg"), animatrix.WithFPS(0))
	require.ErrorContains(t, err, "fps")
	require.NoFileExists(t, out)
}

func TestRenderAnimation_ConfigFile(t *testing.T) {
	bin, dir := fakeFFmpeg(t, copyStdin)
	cfgPath := filepath.Join(t.TempDir(), "animatrix.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("fps = 12\ndpi = 50\ncodec = \"mpeg4\"\n"), 0o644))
	out := filepath.Join(t.TempDir(), "out.mkv")

	stats, err := animatrix.RenderAnimationContext(context.Background(), drawSquare, []byte{7, 8}, out,
		animatrix.WithConfigFile(cfgPath), animatrix.WithFFmpeg(bin), animatrix.WithDPI(25))
	require.NoError(t, err)
	require.Equal(t, 50, stats.Width, "option after the file wins")
	require.Equal(t, 2, stats.Frames)

	args, err := os.ReadFile(filepath.Join(dir, "args"))
	require.NoError(t, err)
	joined := strings.Join(strings.Fields(string(args)), " ")
	require.Contains(t, joined, "-framerate 12")
	require.Contains(t, joined, "-vcodec mpeg4")
}

func TestRenderAnimation_MissingConfigFile(t *testing.T) {
	err := animatrix.RenderAnimation(drawSquare, []byte{0}, filepath.Join(t.TempDir(), "out.mp4"),
		animatrix.WithConfigFile(filepath.Join(t.TempDir(), "none.toml")))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRenderAnimation_RenderErrorUnchanged(t *testing.T) {
	bin, _ := fakeFFmpeg(t, copyStdin)
	boom := errors.New("cannot plot")
	fn := func(v byte) (animatrix.Figure, error) {
		if v == 2 {
			return nil, boom
		}
		return drawSquare(v)
	}
	err := animatrix.RenderAnimation(fn, []byte{0, 1, 2, 3}, filepath.Join(t.TempDir(), "out.mp4"),
		animatrix.WithFFmpeg(bin))
	require.Equal(t, boom, err)
}

func TestNormalizedSize(t *testing.T) {
	fig := &squareFigure{inches: 1.015}
	got := animatrix.NormalizedSize(fig, 100)
	w, h := got.Pixels(100)
	require.Equal(t, 102, w)
	require.Equal(t, 102, h)
}
