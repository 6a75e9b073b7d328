package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--color", "never"}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

// fakeFFmpeg answers test encodes (output "-") with success and copies
// stdin to any other output path.
func fakeFFmpeg(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake encoder needs /bin/sh")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	script := `#!/bin/sh
for last; do :; done
[ "$last" = "-" ] && exit 0
cat > "$last"
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	require.Equal(t, "animatrix "+version+" ("+commit+")\n", out)
}

func TestRender_FakeEncoder(t *testing.T) {
	input := writeFile(t, "waves.csv", "# t, values\n0, 1, 0\n1, 0, -1\n0.5, 0.5, 0.5\n")
	output := filepath.Join(t.TempDir(), "waves.mp4")

	_, err := runCLI(t, "render", input, output,
		"--ffmpeg", fakeFFmpeg(t), "--dpi", "20", "--width", "3", "--height", "1.975",
		"--workers", "2", "--no-progress")
	require.NoError(t, err)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Len(t, got, 3*60*40*4, "three 60x40 RGBA frames")

	var opaque, inked int
	for i := 0; i < len(got); i += 4 {
		if got[i+3] == 255 {
			opaque++
		}
		if got[i] != 255 || got[i+1] != 255 || got[i+2] != 255 {
			inked++
		}
	}
	require.Equal(t, 3*60*40, opaque, "frames must be drawn on an opaque background")
	require.Positive(t, inked, "frames must contain plotted pixels")
}

func TestRender_ConfigFileAndFlags(t *testing.T) {
	cfgPath := writeFile(t, "animatrix.toml", "dpi = 40\nworkers = 1\nshow_progress = false\n")
	input := writeFile(t, "in.csv", "1,2\n3,4\n")
	output := filepath.Join(t.TempDir(), "out.mkv")

	_, err := runCLI(t, "--config", cfgPath, "render", input, output,
		"--ffmpeg", fakeFFmpeg(t), "--width", "2", "--height", "2", "--dpi", "20")
	require.NoError(t, err)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Len(t, got, 2*40*40*4, "--dpi overrides the file")
}

func TestRender_BadInput(t *testing.T) {
	input := writeFile(t, "bad.csv", "1,2\n3,x\n")
	_, err := runCLI(t, "render", input, filepath.Join(t.TempDir(), "out.mp4"), "--ffmpeg", fakeFFmpeg(t))
	require.ErrorContains(t, err, "line 2, column 2")
}

func TestRender_InvalidFlag(t *testing.T) {
	input := writeFile(t, "in.csv", "1,2\n")
	_, err := runCLI(t, "render", input, filepath.Join(t.TempDir(), "out.mp4"), "--fps", "0")
	require.ErrorContains(t, err, "fps")
}

func TestRender_NeedsTwoArgs(t *testing.T) {
	_, err := runCLI(t, "render", "only.csv")
	require.Error(t, err)
}

func TestCheck_MissingFfmpeg(t *testing.T) {
	_, err := runCLI(t, "check", "--ffmpeg", filepath.Join(t.TempDir(), "none"))
	require.ErrorContains(t, err, "system check failed")
}

func TestReadFrames(t *testing.T) {
	frames, err := readFrames(strings.NewReader("# header\n1, 2.5, -3\n4,5,6\n"))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2.5, -3}, {4, 5, 6}}, frames)

	_, err = readFrames(strings.NewReader("1,2\n3\n"))
	require.Error(t, err, "ragged rows are rejected")

	frames, err = readFrames(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, frames)
}
