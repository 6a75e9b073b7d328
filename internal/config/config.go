// Package config holds runtime configuration: defaults, TOML file loading,
// and validation. Defaults match the ffmpeg writer behavior animatrix was
// built to replace (30 fps, 100 dpi, h264, 12 render workers).
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// --- Enum types for validated string fields ---

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Container is the output container, derived from the output extension.
type Container string

const (
	ContainerMP4   Container = "mp4"
	ContainerMOV   Container = "mov"
	ContainerMKV   Container = "mkv"
	ContainerWebM  Container = "webm"
	ContainerGIF   Container = "gif"
	ContainerOther Container = ""
)

// Fixed encoder values.
const (
	// InputPixFmt is the raw pixel layout every rasterized frame is written in.
	InputPixFmt = "rgba"

	// DefaultWorkers is the render pool size.
	DefaultWorkers = 12
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [Load], then adjusted by CLI flags or library
// options before being passed (by pointer) to the packages that need it.
type Config struct {
	// Animation geometry.
	FPS int // Default: 30.
	DPI int // Default: 100.

	// Frame generation.
	Workers      int  // Default: 12.
	ShowProgress bool // Default: false for the library, true for the CLI.

	// Encoder settings.
	FFmpegPath string            // Default: "ffmpeg".
	Codec      string            // Default: "h264".
	PixFmt     string            // Output pixel format. Empty: "yuv420p" for h264, encoder default otherwise.
	Bitrate    int               // kbps; <= 0 lets the encoder choose.
	Metadata   map[string]string // Written as -metadata key=value.
	ExtraArgs  []string          // Appended before the output path.

	// Verification.
	Verify      bool   // Run ffprobe on the output after encoding.
	FFprobePath string // Default: "ffprobe".

	// Timeout bounds one whole render call. Zero means no timeout.
	Timeout time.Duration

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with all defaults set.
func DefaultConfig() Config {
	return Config{
		FPS:          30,
		DPI:          100,
		Workers:      DefaultWorkers,
		ShowProgress: false,
		FFmpegPath:   "ffmpeg",
		Codec:        "h264",
		Bitrate:      0,
		FFprobePath:  "ffprobe",
		ColorMode:    ColorAuto,
	}
}

// Validate checks ranges and enum fields.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("invalid fps %d (must be positive)", c.FPS)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("invalid dpi %d (must be positive)", c.DPI)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("invalid workers %d (must be positive)", c.Workers)
	}
	if strings.TrimSpace(c.FFmpegPath) == "" {
		return errors.New("ffmpeg path must not be empty")
	}
	if strings.TrimSpace(c.Codec) == "" {
		return errors.New("codec must not be empty")
	}
	if c.Verify && strings.TrimSpace(c.FFprobePath) == "" {
		return errors.New("ffprobe path must not be empty when verify is enabled")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s (must not be negative)", c.Timeout)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	for k := range c.Metadata {
		if strings.TrimSpace(k) == "" || strings.Contains(k, "=") {
			return fmt.Errorf("invalid metadata key %q", k)
		}
	}
	return nil
}

// MetadataArgs returns the metadata as "key=value" strings sorted by key
// so the encoder command line is deterministic.
func (c *Config) MetadataArgs() []string {
	keys := make([]string, 0, len(c.Metadata))
	for k := range c.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+c.Metadata[k])
	}
	return out
}

// ContainerFor maps an output filename to its container by extension.
func ContainerFor(filename string) Container {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "mp4", "m4v":
		return ContainerMP4
	case "mov":
		return ContainerMOV
	case "mkv":
		return ContainerMKV
	case "webm":
		return ContainerWebM
	case "gif":
		return ContainerGIF
	default:
		return ContainerOther
	}
}
