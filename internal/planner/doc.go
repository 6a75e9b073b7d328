// Package planner turns a validated Config and the derived frame size into
// a Plan: the exact pixel geometry, codec and container options the ffmpeg
// package needs to build the encoder command line.
package planner
