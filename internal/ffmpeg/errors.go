package ffmpeg

import (
	"fmt"
	"regexp"
)

// EncodeError reports that the encoder exited with a non-zero status. It
// carries the exit code and everything the encoder wrote to stderr.
type EncodeError struct {
	ExitCode int
	Stderr   string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("error creating animation, ffmpeg returned error code %d:\n\n%s", e.ExitCode, e.Stderr)
}

// Hint returns a short diagnosis of the stderr text, or "" when nothing
// known matches.
func (e *EncodeError) Hint() string {
	return Classify(e.Stderr)
}

// Pre-compiled regexes for classifying ffmpeg stderr output. Checked in
// order by [Classify]; the first match wins.
var (
	reUnknownEncoder = regexp.MustCompile(
		`(?i)Unknown encoder|Encoder not found|encoder .* not found|` +
			`Unrecognized option 'c(odec)?:v'`)

	reOddDimensions = regexp.MustCompile(
		`(?i)(width|height) not divisible by 2|` +
			`Picture size \d+x\d+ is invalid`)

	reOutputUnwritable = regexp.MustCompile(
		`(?i)Permission denied|No such file or directory|Read-only file system|` +
			`Could not open file|Unable to find a suitable output format`)

	reInvalidArgument = regexp.MustCompile(
		`(?i)Invalid argument|Error splitting the argument list|` +
			`Option not found|Unrecognized option`)
)

// Classify maps encoder stderr to a human hint.
func Classify(stderr string) string {
	switch {
	case reUnknownEncoder.MatchString(stderr):
		return "the requested codec is not available in this ffmpeg build (see 'animatrix check')"
	case reOddDimensions.MatchString(stderr):
		return "the encoder rejected the frame geometry"
	case reOutputUnwritable.MatchString(stderr):
		return "the output path cannot be written or its format is unknown"
	case reInvalidArgument.MatchString(stderr):
		return "ffmpeg rejected an argument; check codec, pixel format and extra args"
	default:
		return ""
	}
}
