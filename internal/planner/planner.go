package planner

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/backmassage/animatrix/internal/config"
	"github.com/backmassage/animatrix/internal/frame"
)

// ErrOddGeometry is returned when the pixel geometry is not even in both
// dimensions; yuv420p encoders reject such streams.
var ErrOddGeometry = errors.New("frame geometry must be positive and even")

// BuildPlan resolves the encode plan for frames rasters of size at cfg.DPI
// written to outputPath.
func BuildPlan(cfg *config.Config, size frame.Size, frames int, outputPath string) (*Plan, error) {
	w, h := size.Pixels(cfg.DPI)
	if w <= 0 || h <= 0 || w%2 != 0 || h%2 != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrOddGeometry, w, h)
	}
	if frames <= 0 {
		return nil, frame.ErrNoFrames
	}

	container := config.ContainerFor(outputPath)
	plan := &Plan{
		Width:         w,
		Height:        h,
		FPS:           cfg.FPS,
		InputPixFmt:   config.InputPixFmt,
		Frames:        frames,
		Codec:         cfg.Codec,
		PixFmt:        resolvePixFmt(cfg),
		BitrateKbps:   cfg.Bitrate,
		Metadata:      cfg.MetadataArgs(),
		ExtraArgs:     slices.Clone(cfg.ExtraArgs),
		TagOpts:       tagOpts(cfg.Codec, container),
		ContainerOpts: containerOpts(container),
		OutputPath:    outputPath,
		Container:     container,
		Loglevel:      "error",
	}
	if cfg.Verbose {
		plan.Loglevel = "info"
	}
	return plan, nil
}

// resolvePixFmt picks the output pixel format. An explicit setting wins;
// a -pix_fmt in the extra args suppresses the default; 4:2:0 is the default
// for the H.264/HEVC family so the output plays everywhere.
func resolvePixFmt(cfg *config.Config) string {
	if cfg.PixFmt != "" {
		return cfg.PixFmt
	}
	if slices.Contains(cfg.ExtraArgs, "-pix_fmt") {
		return ""
	}
	if isH264(cfg.Codec) || isHEVC(cfg.Codec) {
		return "yuv420p"
	}
	return ""
}

// tagOpts returns the hvc1 tag for HEVC in MP4/MOV (Apple/browser playback).
func tagOpts(codec string, c config.Container) []string {
	if isHEVC(codec) && (c == config.ContainerMP4 || c == config.ContainerMOV) {
		return []string{"-tag:v", "hvc1"}
	}
	return nil
}

// containerOpts moves the moov atom to the front for progressive playback.
func containerOpts(c config.Container) []string {
	switch c {
	case config.ContainerMP4, config.ContainerMOV:
		return []string{"-movflags", "+faststart"}
	default:
		return nil
	}
}

func isH264(codec string) bool {
	switch strings.ToLower(codec) {
	case "h264", "libx264", "h264_nvenc", "h264_vaapi", "h264_videotoolbox":
		return true
	}
	return false
}

func isHEVC(codec string) bool {
	switch strings.ToLower(codec) {
	case "hevc", "h265", "libx265", "hevc_nvenc", "hevc_vaapi", "hevc_videotoolbox":
		return true
	}
	return false
}
