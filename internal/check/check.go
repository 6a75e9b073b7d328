// Package check provides system diagnostics (the check command) and
// pre-render dependency validation (CheckDeps) for ffmpeg, the configured
// encoder, and ffprobe when output verification is on.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/animatrix/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound     = errors.New("ffmpeg not found")
	ErrFfprobeNotFound    = errors.New("ffprobe not found (required by verify)")
	ErrEncoderUnavailable = errors.New("configured encoder failed a test encode")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck prints availability of ffmpeg, encoders matching the configured
// codec, a test encode with that codec, and ffprobe. It reports whether
// every required piece works; it does not stop on the first failure.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkFfmpeg(cfg, log)
	if ok {
		listEncoders(cfg, log)
		if !checkEncoder(cfg, log) {
			ok = false
		}
	}
	if !checkFfprobe(cfg, log) && cfg.Verify {
		ok = false
	}
	return ok
}

// checkFfmpeg verifies ffmpeg resolves and logs its version string.
func checkFfmpeg(cfg *config.Config, log Logger) bool {
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		log.Error("ffmpeg not found (%s)", cfg.FFmpegPath)
		return false
	}
	out, err := exec.Command(cfg.FFmpegPath, "-version").Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return true
	}
	log.Success("ffmpeg: %s", firstLine(out))
	return true
}

// listEncoders logs every encoder whose line mentions the configured codec.
func listEncoders(cfg *config.Config, log Logger) {
	log.Info("Encoders matching %q:", cfg.Codec)
	out, err := exec.Command(cfg.FFmpegPath, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	codec := strings.ToLower(cfg.Codec)
	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(strings.ToLower(line), codec) {
			log.Info("  %s", strings.TrimSpace(line))
		}
	}
}

// checkEncoder runs a minimal test encode with the configured codec.
func checkEncoder(cfg *config.Config, log Logger) bool {
	log.Info("Testing %s encoder...", cfg.Codec)
	if runSilent(cfg.FFmpegPath, encodeTestArgs(cfg)...) {
		log.Success("%s encoder works", cfg.Codec)
		return true
	}
	log.Error("%s test encode failed", cfg.Codec)
	return false
}

func checkFfprobe(cfg *config.Config, log Logger) bool {
	if _, err := exec.LookPath(cfg.FFprobePath); err != nil {
		if cfg.Verify {
			log.Error("ffprobe not found (%s)", cfg.FFprobePath)
		} else {
			log.Warn("ffprobe not found; --verify will be unavailable")
		}
		return false
	}
	log.Success("ffprobe: %s", cfg.FFprobePath)
	return true
}

// CheckDeps is the pre-render validation: it verifies that ffmpeg resolves,
// that the configured codec passes a short test encode, and that ffprobe
// resolves when Verify is set. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		return ErrFfmpegNotFound
	}
	if !runSilent(cfg.FFmpegPath, encodeTestArgs(cfg)...) {
		return ErrEncoderUnavailable
	}
	if cfg.Verify {
		if _, err := exec.LookPath(cfg.FFprobePath); err != nil {
			return ErrFfprobeNotFound
		}
	}
	return nil
}

// --- internal helpers ---

// encodeTestArgs returns the ffmpeg arguments for a minimal test encode
// with the configured codec. Shared by checkEncoder and CheckDeps.
func encodeTestArgs(cfg *config.Config) []string {
	args := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=64x64:d=0.1",
		"-c:v", cfg.Codec,
	}
	if cfg.PixFmt != "" {
		args = append(args, "-pix_fmt", cfg.PixFmt)
	}
	return append(args, "-f", "null", "-")
}

func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}

// runSilent runs a command with its output discarded and reports whether
// it exited with status 0.
func runSilent(name string, args ...string) bool {
	return exec.Command(name, args...).Run() == nil
}
