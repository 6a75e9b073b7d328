// Package pipeline sequences one animation render: generate frames, plan
// the encode, stream the frames to ffmpeg through a staging file, then
// publish and optionally verify the output.
package pipeline
