// Package aligner runs the external whole-genome aligner that produces the
// delta files interpreted by aniseek-core/delta.
package aligner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Aligner aligns query against reference inside workdir and returns the
// path of a best-hit-per-query filtered delta file.
type Aligner interface {
	Align(ctx context.Context, reference, query, workdir string) (string, error)
}

// Func adapts an ordinary function to Aligner.
type Func func(ctx context.Context, reference, query, workdir string) (string, error)

func (f Func) Align(ctx context.Context, reference, query, workdir string) (string, error) {
	return f(ctx, reference, query, workdir)
}

const (
	// RawDelta is the nucmer output name inside the workdir.
	RawDelta = "out.delta"
	// FilteredDelta is the delta-filter output name inside the workdir.
	FilteredDelta = "out-filtered.delta"
)

// Nucmer runs `nucmer` followed by `delta-filter -q`.
type Nucmer struct {
	Nucmer      string   // nucmer binary, default "nucmer"
	DeltaFilter string   // delta-filter binary, default "delta-filter"
	Threads     int      // --threads passed to nucmer, default 1
	Env         []string // extra environment for both tools
}

// Align implements Aligner.
func (n Nucmer) Align(ctx context.Context, reference, query, workdir string) (string, error) {
	nucmer := n.Nucmer
	if nucmer == "" {
		nucmer = "nucmer"
	}
	filter := n.DeltaFilter
	if filter == "" {
		filter = "delta-filter"
	}
	threads := n.Threads
	if threads <= 0 {
		threads = 1
	}

	cmd := exec.CommandContext(ctx, nucmer,
		fmt.Sprintf("--threads=%d", threads),
		reference,
		query,
	)
	cmd.Dir = workdir
	cmd.Env = n.env()
	if err := Exec(cmd); err != nil {
		return "", err
	}

	out := filepath.Join(workdir, FilteredDelta)
	fh, err := os.Create(out)
	if err != nil {
		return "", err
	}
	cmd = exec.CommandContext(ctx, filter, "-q", RawDelta)
	cmd.Dir = workdir
	cmd.Env = n.env()
	cmd.Stdout = fh
	err = Exec(cmd)
	if cerr := fh.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	return out, nil
}

func (n Nucmer) env() []string {
	if len(n.Env) == 0 {
		return nil
	}
	return append(os.Environ(), n.Env...)
}
