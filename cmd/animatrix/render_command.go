package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/backmassage/animatrix/internal/check"
	"github.com/backmassage/animatrix/internal/display"
	"github.com/backmassage/animatrix/internal/pipeline"
	"github.com/backmassage/animatrix/plotfig"
)

type renderFlags struct {
	fps        int
	dpi        int
	workers    int
	codec      string
	pixFmt     string
	bitrate    int
	metadata   map[string]string
	ffmpegArgs []string
	width      float64
	height     float64
	title      string
	timeout    time.Duration
	verify     bool
	noProgress bool
	ffmpeg     string
	ffprobe    string
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var rf renderFlags

	cmd := &cobra.Command{
		Use:   "render INPUT.csv OUTPUT",
		Short: "Render each CSV row as one frame of a line-plot animation",
		Long: "Render reads INPUT.csv, where every row is one frame's series of numbers,\n" +
			"draws each row as a line plot with a y-range shared by all frames, and\n" +
			"encodes the frames into OUTPUT. The container follows OUTPUT's extension.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rf.apply(cmd, ctx)
			log, err := ctx.logger()
			if err != nil {
				return err
			}
			defer log.Close()

			display.PrintBanner(cmd.OutOrStdout())
			cfg := &ctx.cfg
			input, output := args[0], args[1]

			frames, err := readFramesFile(input)
			if err != nil {
				return err
			}
			log.Info("Read %d frames from %s", len(frames), input)

			if err := check.CheckDeps(cfg); err != nil {
				return err
			}

			lo, hi := plotfig.Range(frames)
			fn := plotfig.LineRenderer(plotfig.LineOptions{
				Title:  rf.title,
				Width:  rf.width,
				Height: rf.height,
				YMin:   lo,
				YMax:   hi,
			})
			_, err = pipeline.Run(cmd.Context(), cfg, log, fn, frames, output)
			return err
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&rf.fps, "fps", 30, "Frames per second")
	flags.IntVar(&rf.dpi, "dpi", 100, "Rasterization resolution in dots per inch")
	flags.IntVar(&rf.workers, "workers", 12, "Frames rasterized concurrently")
	flags.StringVar(&rf.codec, "codec", "h264", "Output video codec")
	flags.StringVar(&rf.pixFmt, "pix-fmt", "", "Output pixel format (default yuv420p for h264/hevc)")
	flags.IntVar(&rf.bitrate, "bitrate", 0, "Target bitrate in kbps (0: encoder default)")
	flags.StringToStringVar(&rf.metadata, "metadata", nil, "Container metadata key=value pairs")
	flags.StringArrayVar(&rf.ffmpegArgs, "ffmpeg-arg", nil, "Extra ffmpeg output argument (repeatable)")
	flags.Float64Var(&rf.width, "width", 6.4, "Figure width in inches")
	flags.Float64Var(&rf.height, "height", 4.8, "Figure height in inches")
	flags.StringVar(&rf.title, "title", "", "Plot title")
	flags.DurationVar(&rf.timeout, "timeout", 0, "Abort the whole render after this long (0: no limit)")
	flags.BoolVar(&rf.verify, "verify", false, "Check the output with ffprobe after encoding")
	flags.BoolVar(&rf.noProgress, "no-progress", false, "Hide the frame progress bar")
	flags.StringVar(&rf.ffmpeg, "ffmpeg", "ffmpeg", "ffmpeg binary")
	flags.StringVar(&rf.ffprobe, "ffprobe", "ffprobe", "ffprobe binary")
	return cmd
}

// apply copies every flag the user set explicitly onto the loaded config,
// so unset flags keep values from the config file.
func (rf *renderFlags) apply(cmd *cobra.Command, ctx *commandContext) {
	cfg := &ctx.cfg
	f := cmd.Flags()
	if f.Changed("fps") {
		cfg.FPS = rf.fps
	}
	if f.Changed("dpi") {
		cfg.DPI = rf.dpi
	}
	if f.Changed("workers") {
		cfg.Workers = rf.workers
	}
	if f.Changed("codec") {
		cfg.Codec = rf.codec
	}
	if f.Changed("pix-fmt") {
		cfg.PixFmt = rf.pixFmt
	}
	if f.Changed("bitrate") {
		cfg.Bitrate = rf.bitrate
	}
	if f.Changed("metadata") {
		if cfg.Metadata == nil {
			cfg.Metadata = make(map[string]string, len(rf.metadata))
		}
		for k, v := range rf.metadata {
			cfg.Metadata[k] = v
		}
	}
	if rf.title != "" {
		if cfg.Metadata == nil {
			cfg.Metadata = map[string]string{}
		}
		if _, ok := cfg.Metadata["title"]; !ok {
			cfg.Metadata["title"] = rf.title
		}
	}
	if f.Changed("ffmpeg-arg") {
		cfg.ExtraArgs = append(cfg.ExtraArgs, rf.ffmpegArgs...)
	}
	if f.Changed("timeout") {
		cfg.Timeout = rf.timeout
	}
	if f.Changed("verify") {
		cfg.Verify = rf.verify
	}
	if f.Changed("no-progress") {
		cfg.ShowProgress = !rf.noProgress
	}
	if f.Changed("ffmpeg") {
		cfg.FFmpegPath = rf.ffmpeg
	}
	if f.Changed("ffprobe") {
		cfg.FFprobePath = rf.ffprobe
	}
}

func readFramesFile(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frames: %w", err)
	}
	defer f.Close()
	frames, err := readFrames(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frames, nil
}
