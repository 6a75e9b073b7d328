package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/backmassage/animatrix/internal/check"
	"github.com/backmassage/animatrix/internal/display"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var ffmpeg, ffprobe, codec string
	var verify bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check ffmpeg, the configured encoder and ffprobe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("ffmpeg") {
				ctx.cfg.FFmpegPath = ffmpeg
			}
			if f.Changed("ffprobe") {
				ctx.cfg.FFprobePath = ffprobe
			}
			if f.Changed("codec") {
				ctx.cfg.Codec = codec
			}
			if f.Changed("verify") {
				ctx.cfg.Verify = verify
			}
			log, err := ctx.logger()
			if err != nil {
				return err
			}
			defer log.Close()

			display.PrintBanner(cmd.OutOrStdout())
			if !check.RunCheck(&ctx.cfg, log) {
				return errors.New("system check failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&ffmpeg, "ffmpeg", "ffmpeg", "ffmpeg binary")
	cmd.Flags().StringVar(&ffprobe, "ffprobe", "ffprobe", "ffprobe binary")
	cmd.Flags().StringVar(&codec, "codec", "h264", "Codec to test")
	cmd.Flags().BoolVar(&verify, "verify", false, "Treat a missing ffprobe as a failure")
	return cmd
}
