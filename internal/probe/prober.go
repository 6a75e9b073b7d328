package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/backmassage/animatrix/internal/planner"
)

// ErrNoVideo is returned by Verify when the file has no video stream.
var ErrNoVideo = errors.New("no video stream in output")

// Probe runs a single ffprobe JSON call (binary at ffprobePath) against
// path and returns the parsed result.
func Probe(ctx context.Context, ffprobePath, path string) (*ProbeResult, error) {
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a ProbeResult.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*ProbeResult, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildResult(&raw), nil
}

// Verify checks that the probed output matches the plan's pixel geometry
// and, when the container reports them, its frame count and duration.
// Duration may be off by up to two frame intervals (at least 100ms);
// muxers round timestamps to their own time base.
func Verify(pr *ProbeResult, plan *planner.Plan) error {
	v := pr.PrimaryVideo
	if v == nil {
		return ErrNoVideo
	}
	if v.Width != plan.Width || v.Height != plan.Height {
		return fmt.Errorf("output is %dx%d, want %dx%d", v.Width, v.Height, plan.Width, plan.Height)
	}
	if v.Frames > 0 && v.Frames != plan.Frames {
		return fmt.Errorf("output has %d frames, want %d", v.Frames, plan.Frames)
	}
	if d := pr.Format.Duration; d > 0 && plan.FPS > 0 {
		want := float64(plan.Frames) / float64(plan.FPS)
		tolerance := math.Max(2/float64(plan.FPS), 0.1)
		if math.Abs(d-want) > tolerance {
			return fmt.Errorf("output lasts %.3fs, want %.3fs", d, want)
		}
	}
	return nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	Index        int               `json:"index"`
	CodecName    string            `json:"codec_name"`
	CodecType    string            `json:"codec_type"`
	PixFmt       string            `json:"pix_fmt"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	AvgFrameRate string            `json:"avg_frame_rate"`
	NbFrames     string            `json:"nb_frames"`
	Disposition  map[string]int    `json:"disposition"`
	Tags         map[string]string `json:"tags"`
}

// --- Conversion from wire types to domain types ---

func buildResult(raw *ffprobeOutput) *ProbeResult {
	pr := &ProbeResult{
		Format: convertFormat(&raw.Format),
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType != "video" || s.Disposition["attached_pic"] == 1 {
			continue
		}
		vs := convertVideo(s)
		pr.PrimaryVideo = &vs
		break
	}
	return pr
}

func convertFormat(f *ffprobeFormat) FormatInfo {
	return FormatInfo{Duration: parseFloat(f.Duration)}
}

func convertVideo(s *ffprobeStream) VideoStream {
	frames := parseInt(s.NbFrames)
	if frames == 0 {
		frames = parseInt(tagValue(s.Tags, "NUMBER_OF_FRAMES"))
	}
	return VideoStream{
		Index:        s.Index,
		Codec:        s.CodecName,
		PixFmt:       s.PixFmt,
		Width:        s.Width,
		Height:       s.Height,
		AvgFrameRate: s.AvgFrameRate,
		Frames:       frames,
	}
}

// tagValue looks a tag up case-insensitively; Matroska writers differ in
// case and may add a language suffix ("NUMBER_OF_FRAMES-eng").
func tagValue(tags map[string]string, key string) string {
	for k, v := range tags {
		if strings.EqualFold(k, key) || strings.HasPrefix(strings.ToUpper(k), key+"-") {
			return v
		}
	}
	return ""
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	n, _ := strconv.Atoi(s)
	return n
}
