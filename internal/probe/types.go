package probe

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Duration float64 // seconds; zero when the container does not report it
}

// VideoStream holds the parsed properties of the primary video stream.
type VideoStream struct {
	Index        int
	Codec        string
	PixFmt       string
	Width        int
	Height       int
	AvgFrameRate string
	// Frames is nb_frames, or the Matroska NUMBER_OF_FRAMES tag; zero when
	// the container does not report a count.
	Frames int
}

// ProbeResult is the parsed output of one ffprobe call.
// PrimaryVideo is the first non-attached-pic video stream (nil if none).
type ProbeResult struct {
	Format       FormatInfo
	PrimaryVideo *VideoStream
}
