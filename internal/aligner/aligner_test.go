package aligner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// script writes an executable shell script into dir.
func script(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestNucmerAlign(t *testing.T) {
	bin := t.TempDir()
	work := t.TempDir()
	nucmer := script(t, bin, "nucmer", `echo "$@" > args.txt
printf 'r q\nNUCMER\n>r 1 10 10\n1 10 1 10 0 0 0\n0\n' > out.delta
`)
	filter := script(t, bin, "delta-filter", `[ "$1" = "-q" ] || exit 9
cat "$2"
`)

	n := Nucmer{Nucmer: nucmer, DeltaFilter: filter}
	out, err := n.Align(context.Background(), "/db/ref.fna", "/tmp/q.fna", work)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	if out != filepath.Join(work, FilteredDelta) {
		t.Fatalf("delta path = %s", out)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), ">r 1 10 10") {
		t.Fatalf("filtered delta not written: %q", data)
	}
	args, _ := os.ReadFile(filepath.Join(work, "args.txt"))
	if got := strings.TrimSpace(string(args)); got != "--threads=1 /db/ref.fna /tmp/q.fna" {
		t.Fatalf("nucmer args = %q", got)
	}
}

func TestNucmerFailureIsTyped(t *testing.T) {
	bin := t.TempDir()
	nucmer := script(t, bin, "nucmer", "echo boom >&2\nexit 3\n")

	_, err := Nucmer{Nucmer: nucmer}.Align(context.Background(), "r", "q", t.TempDir())
	var ee *ExecError
	if !errors.As(err, &ee) {
		t.Fatalf("want *ExecError, got %v", err)
	}
	if ee.ExitCode != 3 || ee.Stderr != "boom" {
		t.Fatalf("exit=%d stderr=%q", ee.ExitCode, ee.Stderr)
	}
}

func TestDeltaFilterFailure(t *testing.T) {
	bin := t.TempDir()
	nucmer := script(t, bin, "nucmer", "touch out.delta\n")
	filter := script(t, bin, "delta-filter", "exit 1\n")

	_, err := Nucmer{Nucmer: nucmer, DeltaFilter: filter}.Align(context.Background(), "r", "q", t.TempDir())
	var ee *ExecError
	if !errors.As(err, &ee) || !strings.Contains(ee.Cmd, "-q out.delta") {
		t.Fatalf("want delta-filter *ExecError, got %v", err)
	}
}

func TestMissingBinary(t *testing.T) {
	_, err := Nucmer{Nucmer: filepath.Join(t.TempDir(), "nope")}.Align(context.Background(), "r", "q", t.TempDir())
	var ee *ExecError
	if !errors.As(err, &ee) || ee.ExitCode != -1 {
		t.Fatalf("want *ExecError with exit -1, got %v", err)
	}
}

func TestCancelKillsNucmer(t *testing.T) {
	bin := t.TempDir()
	nucmer := script(t, bin, "nucmer", "exec sleep 5\n")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := Nucmer{Nucmer: nucmer}.Align(ctx, "r", "q", t.TempDir())
	if took := time.Since(start); took > 3*time.Second {
		t.Fatalf("cancel did not stop nucmer (took %s)", took)
	}
	var ee *ExecError
	if !errors.As(err, &ee) || ee.ExitCode != -1 {
		t.Fatalf("want *ExecError for killed child, got %v", err)
	}
	if ctx.Err() == nil {
		t.Fatal("context should be cancelled")
	}
}
