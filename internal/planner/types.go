package planner

import "github.com/backmassage/animatrix/internal/config"

// Plan holds every decision for one encode. It is produced by BuildPlan and
// consumed by the ffmpeg package to construct command arguments.
type Plan struct {
	// Input stream geometry (raw frames on stdin).
	Width       int // pixels
	Height      int // pixels
	FPS         int
	InputPixFmt string // always config.InputPixFmt
	Frames      int

	// Video encoding.
	Codec       string
	PixFmt      string // empty: leave to the encoder
	BitrateKbps int    // <= 0: leave to the encoder

	// Extra output options.
	Metadata      []string // "key=value", sorted
	ExtraArgs     []string
	TagOpts       []string // e.g. -tag:v hvc1
	ContainerOpts []string // e.g. -movflags +faststart

	// Output.
	OutputPath string
	Container  config.Container
	Loglevel   string // "error", or "info" when verbose
}

// FrameBytes is the length of one raw input frame.
func (p *Plan) FrameBytes() int {
	return p.Width * p.Height * 4
}

// StreamBytes is the total number of bytes that will be written to the
// encoder's stdin.
func (p *Plan) StreamBytes() int64 {
	return int64(p.FrameBytes()) * int64(p.Frames)
}
