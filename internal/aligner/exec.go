package aligner

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ExecError describes a failed external tool run.
type ExecError struct {
	Cmd      string
	ExitCode int // -1 when the process did not exit normally
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("failed to execute %s (exit=%d): %v\nstderr:\n%s", e.Cmd, e.ExitCode, e.Err, e.Stderr)
	}
	return fmt.Sprintf("failed to execute %s (exit=%d): %v", e.Cmd, e.ExitCode, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// Exec runs cmd capturing its stderr and turns a failure into *ExecError.
func Exec(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	full := strings.Join(cmd.Args, " ")

	if err := cmd.Run(); err != nil {
		code := -1
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			code = ee.ExitCode()
		}
		return &ExecError{Cmd: full, ExitCode: code, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return nil
}
