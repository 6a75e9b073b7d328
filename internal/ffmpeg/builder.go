package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/backmassage/animatrix/internal/config"
	"github.com/backmassage/animatrix/internal/planner"
)

// Build constructs the complete ffmpeg argument slice for a plan, starting
// with the binary path. The input section tells ffmpeg the exact raw
// geometry, pixel layout and frame rate of the stdin stream; it must agree
// with every raster written by WriteFrames.
func Build(cfg *config.Config, plan *planner.Plan) []string {
	args := make([]string, 0, 48)

	// --- Raw input from stdin ---
	args = append(args,
		cfg.FFmpegPath,
		"-f", "rawvideo",
		"-vcodec", "rawvideo",
		"-s", fmt.Sprintf("%dx%d", plan.Width, plan.Height),
		"-pix_fmt", plan.InputPixFmt,
		"-framerate", strconv.Itoa(plan.FPS),
		"-loglevel", plan.Loglevel,
		"-i", "pipe:",
	)

	// --- Video codec ---
	args = append(args, "-vcodec", plan.Codec)
	if plan.PixFmt != "" {
		args = append(args, "-pix_fmt", plan.PixFmt)
	}
	if plan.BitrateKbps > 0 {
		args = append(args, "-b", fmt.Sprintf("%dk", plan.BitrateKbps))
	}

	// --- Metadata ---
	for _, kv := range plan.Metadata {
		args = append(args, "-metadata", kv)
	}

	// --- User extras ---
	args = append(args, plan.ExtraArgs...)

	// --- Tag opts (e.g. -tag:v hvc1 for MP4) ---
	args = append(args, plan.TagOpts...)

	// --- Container opts (e.g. -movflags +faststart) ---
	args = append(args, plan.ContainerOpts...)

	// --- Output ---
	args = append(args, "-y", plan.OutputPath)

	return args
}
