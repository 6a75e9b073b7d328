package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config for decoding. Timeout is a string so users can
// write "90s" or "5m" in the file.
type fileConfig struct {
	FPS          *int              `toml:"fps"`
	DPI          *int              `toml:"dpi"`
	Workers      *int              `toml:"workers"`
	ShowProgress *bool             `toml:"show_progress"`
	FFmpegPath   *string           `toml:"ffmpeg_path"`
	Codec        *string           `toml:"codec"`
	PixFmt       *string           `toml:"pix_fmt"`
	Bitrate      *int              `toml:"bitrate"`
	Metadata     map[string]string `toml:"metadata"`
	ExtraArgs    []string          `toml:"extra_args"`
	Verify       *bool             `toml:"verify"`
	FFprobePath  *string           `toml:"ffprobe_path"`
	Timeout      *string           `toml:"timeout"`
	Verbose      *bool             `toml:"verbose"`
	ColorMode    *string           `toml:"color"`
	LogFile      *string           `toml:"log_file"`
}

// Load reads the TOML file at path and overlays every key it sets onto cfg.
// Keys absent from the file leave cfg untouched. A missing file is an error
// wrapping fs.ErrNotExist.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s: %w", path, fs.ErrNotExist)
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return Decode(data, cfg)
}

// Decode overlays TOML data onto cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	var fc fileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return fc.apply(cfg)
}

func (fc *fileConfig) apply(cfg *Config) error {
	setInt(&cfg.FPS, fc.FPS)
	setInt(&cfg.DPI, fc.DPI)
	setInt(&cfg.Workers, fc.Workers)
	setBool(&cfg.ShowProgress, fc.ShowProgress)
	setString(&cfg.FFmpegPath, fc.FFmpegPath)
	setString(&cfg.Codec, fc.Codec)
	setString(&cfg.PixFmt, fc.PixFmt)
	setInt(&cfg.Bitrate, fc.Bitrate)
	setBool(&cfg.Verify, fc.Verify)
	setString(&cfg.FFprobePath, fc.FFprobePath)
	setBool(&cfg.Verbose, fc.Verbose)
	setString(&cfg.LogFile, fc.LogFile)

	if fc.Metadata != nil {
		cfg.Metadata = fc.Metadata
	}
	if fc.ExtraArgs != nil {
		cfg.ExtraArgs = fc.ExtraArgs
	}
	if fc.ColorMode != nil {
		cfg.ColorMode = ColorMode(strings.ToLower(strings.TrimSpace(*fc.ColorMode)))
	}
	if fc.Timeout != nil {
		d, err := parseTimeout(*fc.Timeout)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// parseTimeout accepts Go duration strings; empty means no timeout.
func parseTimeout(raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid timeout %q (use a duration such as 90s or 5m)", raw)
	}
	return d, nil
}
