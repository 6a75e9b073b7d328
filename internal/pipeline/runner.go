package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/animatrix/internal/config"
	"github.com/backmassage/animatrix/internal/display"
	"github.com/backmassage/animatrix/internal/ffmpeg"
	"github.com/backmassage/animatrix/internal/frame"
	"github.com/backmassage/animatrix/internal/planner"
	"github.com/backmassage/animatrix/internal/probe"
)

// stderrTail is how many trailing encoder stderr lines are logged on failure.
const stderrTail = 20

// Logger is the logging surface Run needs. *logging.Logger satisfies it.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Render(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Run renders frames with fn and encodes them to output. Frames are
// generated first; the encoder is started only once every frame is ready.
// output appears only when ffmpeg exits 0 (and verification passes, when
// enabled); every failure leaves no file at output or in its staging place.
//
// Errors from fn are returned unchanged. Encoder failures are
// *ffmpeg.EncodeError. There is no retry.
func Run[F any](
	ctx context.Context,
	cfg *config.Config,
	log Logger,
	fn frame.RenderFunc[F],
	frames []F,
	output string,
) (Stats, error) {
	var stats Stats
	start := time.Now()

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	// --- Generate ---
	log.Render("Generating %d frames (%d workers, %d dpi)", len(frames), cfg.Workers, cfg.DPI)
	opts := frame.Options{DPI: cfg.DPI, Workers: cfg.Workers}
	var bar *progressbar.ProgressBar
	if cfg.ShowProgress && len(frames) > 0 {
		bar = newProgressBar(len(frames))
		opts.Progress = bar
	}
	rasters, size, err := frame.Generate(ctx, fn, frames, opts)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return stats, err
	}

	// --- Plan ---
	staging := stagingPath(output)
	plan, err := planner.BuildPlan(cfg, size, len(rasters), staging)
	if err != nil {
		return stats, err
	}
	stats.Frames = plan.Frames
	stats.Width, stats.Height = plan.Width, plan.Height
	stats.RawBytes = plan.StreamBytes()
	log.Info("Frame size: %s -> %s", size, display.FormatGeometry(plan.Width, plan.Height))
	log.Debug(cfg.Verbose, "Encoder: %s", strings.Join(ffmpeg.Build(cfg, plan), " "))

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return stats, fmt.Errorf("create output directory: %w", err)
	}

	// --- Encode ---
	log.Render("Encoding %s (%s, %d fps, %s)",
		filepath.Base(output), plan.Codec, plan.FPS, display.FormatBitrateLabel(int64(plan.BitrateKbps)))
	if err := ffmpeg.WriteFrames(ctx, cfg, plan, rasters); err != nil {
		os.Remove(staging)
		logEncodeFailure(log, err)
		return stats, err
	}

	// --- Verify ---
	if cfg.Verify {
		if err := verify(ctx, cfg, plan); err != nil {
			os.Remove(staging)
			log.Error("Verification failed: %v", err)
			return stats, err
		}
		log.Debug(cfg.Verbose, "Verified %s", filepath.Base(output))
	}

	// --- Publish ---
	if err := os.Rename(staging, output); err != nil {
		os.Remove(staging)
		return stats, fmt.Errorf("publish output: %w", err)
	}

	stats.Elapsed = time.Since(start)
	if fi, err := os.Stat(output); err == nil {
		stats.OutputBytes = fi.Size()
	}
	log.Success("Wrote %s: %d frames, %s in %s (%s, %d%% of raw)",
		output, stats.Frames, display.FormatBytes(stats.OutputBytes),
		stats.Elapsed.Round(time.Millisecond),
		display.FormatThroughput(stats.Frames, stats.Elapsed), stats.Ratio())
	return stats, nil
}

// stagingPath returns a hidden sibling of output with a unique suffix and
// the same extension, so ffmpeg picks the same muxer.
func stagingPath(output string) string {
	dir, base := filepath.Split(output)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	id := uuid.New().String()[:8]
	return filepath.Join(dir, "."+stem+"-"+id+ext)
}

func newProgressBar(n int) *progressbar.ProgressBar {
	return progressbar.NewOptions(n,
		progressbar.OptionSetDescription("Generating frames"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func verify(ctx context.Context, cfg *config.Config, plan *planner.Plan) error {
	pr, err := probe.Probe(ctx, cfg.FFprobePath, plan.OutputPath)
	if err != nil {
		return fmt.Errorf("verify output: %w", err)
	}
	if err := probe.Verify(pr, plan); err != nil {
		return fmt.Errorf("verify output: %w", err)
	}
	return nil
}

func logEncodeFailure(log Logger, err error) {
	var encErr *ffmpeg.EncodeError
	if !errors.As(err, &encErr) {
		log.Error("Encode failed: %v", err)
		return
	}
	log.Error("ffmpeg exited with code %d", encErr.ExitCode)
	if hint := encErr.Hint(); hint != "" {
		log.Warn("Hint: %s", hint)
	}
	logStderr(log, encErr.Stderr)
}

func logStderr(log Logger, stderr string) {
	if strings.TrimSpace(stderr) == "" {
		return
	}
	log.Error("Last ffmpeg output:")
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > stderrTail {
		start = len(lines) - stderrTail
	}
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}
