// internal/writers/registry.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"syscall"
)

// Writer registry (format → handler). Handlers register themselves in
// init() blocks; the last registration for a format wins.
var resultWriters = map[string]func(w io.Writer, args resultArgs) error{}

func registerResult(format string, fn func(io.Writer, resultArgs) error) { resultWriters[format] = fn }

// Formats lists the registered result formats.
func Formats() []string {
	out := make([]string, 0, len(resultWriters))
	for f := range resultWriters {
		out = append(out, f)
	}
	return out
}

func writeResults(format string, w io.Writer, args resultArgs) error {
	fn, ok := resultWriters[format]
	if !ok {
		return fmt.Errorf("unknown result format %q (no writer registered)", format)
	}
	return fn(w, args)
}

// IsBrokenPipe reports whether err comes from a reader that went away
// early (e.g. `aniseek ... | head`). Such errors end a run successfully.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
