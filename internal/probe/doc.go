// Package probe inspects an encoded animation with a single ffprobe JSON
// call and checks it against the plan it was encoded from.
package probe
