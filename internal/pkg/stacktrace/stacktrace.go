// Package stacktrace trims runtime stacks down to this module's frames.
package stacktrace

import "strings"

// InternalPaths picks "internal/<pkg>/<file>.go:<line>" entries out of a
// debug.Stack dump. Runtime and third-party frames are skipped.
func InternalPaths(stack []byte) []string {
	var paths []string
	for line := range strings.Lines(string(stack)) {
		line = strings.TrimSpace(line)
		start := strings.Index(line, "/internal/")
		if start < 0 {
			continue
		}

		frame := line[start+1:]
		dot := strings.Index(frame, ".go:")
		if dot < 0 {
			continue
		}

		if sp := strings.IndexByte(frame[dot:], ' '); sp >= 0 {
			frame = frame[:dot+sp]
		}
		paths = append(paths, frame)
	}
	return paths
}
