package animatrix

import (
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/backmassage/animatrix/internal/config"
)

type settings struct {
	cfg config.Config
	log Logger
}

// Option adjusts one render call.
type Option func(*settings) error

// WithFPS sets the output frame rate.
func WithFPS(fps int) Option {
	return func(s *settings) error {
		s.cfg.FPS = fps
		return nil
	}
}

// WithDPI sets the rasterization resolution.
func WithDPI(dpi int) Option {
	return func(s *settings) error {
		s.cfg.DPI = dpi
		return nil
	}
}

// WithWorkers sets how many frames are rasterized concurrently.
func WithWorkers(n int) Option {
	return func(s *settings) error {
		s.cfg.Workers = n
		return nil
	}
}

// WithFFmpeg sets the ffmpeg binary.
func WithFFmpeg(path string) Option {
	return func(s *settings) error {
		s.cfg.FFmpegPath = path
		return nil
	}
}

// WithFFprobe sets the ffprobe binary used by [WithVerify].
func WithFFprobe(path string) Option {
	return func(s *settings) error {
		s.cfg.FFprobePath = path
		return nil
	}
}

// WithCodec sets the output video codec (ffmpeg -vcodec).
func WithCodec(codec string) Option {
	return func(s *settings) error {
		s.cfg.Codec = codec
		return nil
	}
}

// WithPixFmt sets the output pixel format. By default h264 and hevc get
// yuv420p and other codecs keep the encoder's choice.
func WithPixFmt(pixFmt string) Option {
	return func(s *settings) error {
		s.cfg.PixFmt = pixFmt
		return nil
	}
}

// WithBitrate sets the target bitrate in kbps.
func WithBitrate(kbps int) Option {
	return func(s *settings) error {
		s.cfg.Bitrate = kbps
		return nil
	}
}

// WithMetadata adds container metadata entries.
func WithMetadata(md map[string]string) Option {
	return func(s *settings) error {
		if s.cfg.Metadata == nil {
			s.cfg.Metadata = make(map[string]string, len(md))
		}
		maps.Copy(s.cfg.Metadata, md)
		return nil
	}
}

// WithExtraArgs appends raw ffmpeg output arguments.
func WithExtraArgs(args ...string) Option {
	return func(s *settings) error {
		s.cfg.ExtraArgs = append(slices.Clone(s.cfg.ExtraArgs), args...)
		return nil
	}
}

// WithTimeout bounds the whole call. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) error {
		s.cfg.Timeout = d
		return nil
	}
}

// WithVerify probes the finished file and fails when its geometry or
// frame count differs from what was encoded.
func WithVerify(verify bool) Option {
	return func(s *settings) error {
		s.cfg.Verify = verify
		return nil
	}
}

// WithProgress shows a progress bar on stderr while frames are generated.
func WithProgress(show bool) Option {
	return func(s *settings) error {
		s.cfg.ShowProgress = show
		return nil
	}
}

// WithVerbose passes ffmpeg's stderr through and raises its log level.
func WithVerbose(verbose bool) Option {
	return func(s *settings) error {
		s.cfg.Verbose = verbose
		return nil
	}
}

// WithLogger routes progress lines to log. The default discards them.
func WithLogger(log Logger) Option {
	return func(s *settings) error {
		if log == nil {
			return errors.New("nil logger")
		}
		s.log = log
		return nil
	}
}

// WithConfigFile overlays settings from a TOML file. Options after it
// override the file.
func WithConfigFile(path string) Option {
	return func(s *settings) error {
		return config.Load(path, &s.cfg)
	}
}
