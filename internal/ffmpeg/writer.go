package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/backmassage/animatrix/internal/config"
	"github.com/backmassage/animatrix/internal/planner"
)

// waitDelay bounds how long Wait keeps draining stderr after the encoder
// exits or is killed, in case a grandchild still holds the pipe open.
const waitDelay = 5 * time.Second

// WriteFrames starts one encoder process for plan and streams frames to its
// stdin strictly in order, then closes stdin and waits for the process.
// stdout is drained and discarded; stderr is captured in full and, when
// verbose, tee'd to os.Stderr in real time.
//
// The process is waited on every path. A non-zero exit yields
// *EncodeError; a cancelled ctx kills the process and yields an error
// wrapping ctx.Err().
func WriteFrames(ctx context.Context, cfg *config.Config, plan *planner.Plan, frames [][]byte) error {
	args := Build(cfg, plan)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.WaitDelay = waitDelay

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	if cfg.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create encoder stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start encoder %s: %w", args[0], err)
	}

	writeErr := writeAll(stdin, frames)
	closeErr := stdin.Close()
	waitErr := cmd.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("encode interrupted: %w", ctxErr)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return &EncodeError{ExitCode: exitErr.ExitCode(), Stderr: stderrBuf.String()}
		}
		return fmt.Errorf("wait for encoder: %w", waitErr)
	}
	if writeErr != nil {
		return fmt.Errorf("write frames to encoder: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close encoder stdin: %w", closeErr)
	}
	return nil
}

// writeAll writes each frame in order, stopping at the first error.
func writeAll(w io.Writer, frames [][]byte) error {
	for i, f := range frames {
		if _, err := w.Write(f); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}
