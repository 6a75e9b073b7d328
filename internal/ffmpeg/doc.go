// Package ffmpeg builds the encoder command line for a plan and streams raw
// RGBA frames into an ffmpeg subprocess over its stdin.
//
// Files:
//   - builder.go: Build(cfg, plan) → []string (rawvideo input from pipe:,
//     codec/pix_fmt/bitrate/metadata output section, container flags).
//   - writer.go: WriteFrames(ctx, cfg, plan, frames) → error. One process,
//     one sequential writer, stdin closed once, process always waited.
//   - errors.go: EncodeError (exit code + full stderr) and stderr hints.
package ffmpeg
