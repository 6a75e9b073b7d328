package pipeline

import "time"

// Stats describes one finished render.
type Stats struct {
	Frames      int
	Width       int // pixels
	Height      int // pixels
	RawBytes    int64
	OutputBytes int64
	Elapsed     time.Duration
}

// Ratio returns the output size as a percentage of the raw frame stream.
func (s *Stats) Ratio() int64 {
	if s.RawBytes <= 0 {
		return 100
	}
	return s.OutputBytes * 100 / s.RawBytes
}
