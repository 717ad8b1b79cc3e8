// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
)

func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

func Infof(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "INFO: "+format+"\n", a...)
}

func Debugf(dst io.Writer, verbose bool, format string, a ...any) {
	if !verbose {
		return
	}
	_, _ = fmt.Fprintf(dst, "DEBUG: "+format+"\n", a...)
}

// Logger bundles the destination and verbosity switches of one run.
type Logger struct {
	Out     io.Writer
	Quiet   bool // drop INFO and WARN
	Verbose bool // emit DEBUG
}

func (l Logger) Warnf(format string, a ...any) { Warnf(l.Out, l.Quiet, format, a...) }
func (l Logger) Infof(format string, a ...any) { Infof(l.Out, l.Quiet, format, a...) }
func (l Logger) Debugf(format string, a ...any) {
	Debugf(l.Out, l.Verbose && !l.Quiet, format, a...)
}
