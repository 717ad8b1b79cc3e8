package compare

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"aniseek-core/delta"
	"aniseek-core/fragment"
	"aniseek/internal/aligner"
	"aniseek/internal/reference"
)

// fakeAligner writes a fixed delta file into the workdir.
func fakeAligner(body string, seen *string) aligner.Aligner {
	return aligner.Func(func(_ context.Context, ref, query, work string) (string, error) {
		if seen != nil {
			*seen = work
		}
		p := filepath.Join(work, aligner.FilteredDelta)
		return p, os.WriteFile(p, []byte(body), 0o644)
	})
}

func refFile(t *testing.T) reference.Genome {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ref.fna")
	if err := os.WriteFile(p, []byte(">r\nACGT\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return reference.FromPath(p)
}

func TestCompareScores(t *testing.T) {
	var work string
	c := &Comparer{
		Aligner: fakeAligner("r q\nNUCMER\n>r 1 1 1\n1 95 1 95 2 2 0\n0\n>r 2 1 1\n1 80 1 80 10 10 0\n0\n", &work),
		Table:   fragment.Table{1: {ID: 1, Length: 100}, 2: {ID: 2, Length: 100}},
	}
	res, err := c.Compare(context.Background(), refFile(t))
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	// fragment 1: 93/95 identity, 0.95 coverage; fragment 2: 70/80, 0.8.
	wantANI := (93.0/95.0 + 70.0/80.0) / 2
	if math.Abs(res.Genome.ANI-wantANI) > 1e-12 {
		t.Fatalf("ani = %v, want %v", res.Genome.ANI, wantANI)
	}
	if math.Abs(res.Genome.ConservedDNA-0.475) > 1e-12 {
		t.Fatalf("conserved = %v, want 0.475", res.Genome.ConservedDNA)
	}
	if res.Matches != 2 || res.Genome.ID != "ref" {
		t.Fatalf("result = %+v", res)
	}
	if _, err := os.Stat(work); !os.IsNotExist(err) {
		t.Fatalf("workdir %s not removed", work)
	}
}

func TestCompareKeepWorkdir(t *testing.T) {
	var work string
	c := &Comparer{
		Aligner:     fakeAligner("r q\nNUCMER\n", &work),
		Table:       fragment.Table{1: {ID: 1, Length: 100}},
		TempDir:     t.TempDir(),
		KeepWorkdir: true,
	}
	res, err := c.Compare(context.Background(), refFile(t))
	if err != nil {
		t.Fatal(err)
	}
	if res.Genome.ANI != 0 || res.Genome.ConservedDNA != 0 {
		t.Fatalf("no matches should score zero: %+v", res.Genome)
	}
	if _, err := os.Stat(filepath.Join(work, aligner.FilteredDelta)); err != nil {
		t.Fatalf("workdir not kept: %v", err)
	}
}

func TestCompareMalformedDelta(t *testing.T) {
	c := &Comparer{
		Aligner: fakeAligner(">broken\n", nil),
		Table:   fragment.Table{1: {ID: 1, Length: 100}},
	}
	_, err := c.Compare(context.Background(), refFile(t))
	if !errors.Is(err, delta.ErrFormat) {
		t.Fatalf("want delta.ErrFormat, got %v", err)
	}
}

func TestCompareAlignerError(t *testing.T) {
	boom := errors.New("boom")
	c := &Comparer{
		Aligner: aligner.Func(func(context.Context, string, string, string) (string, error) { return "", boom }),
		Table:   fragment.Table{},
	}
	if _, err := c.Compare(context.Background(), refFile(t)); !errors.Is(err, boom) {
		t.Fatalf("want wrapped aligner error, got %v", err)
	}
}

func TestCompareMissingReference(t *testing.T) {
	c := &Comparer{Aligner: fakeAligner("", nil)}
	if _, err := c.Compare(context.Background(), reference.Resolve(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing reference file")
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize("a/b c:1.fna"); got != "a_b_c_1.fna" {
		t.Fatalf("sanitize = %q", got)
	}
}

func TestCompareCancelledReportsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Comparer{
		Aligner: aligner.Func(func(context.Context, string, string, string) (string, error) {
			cancel()
			return "", errors.New("signal: killed")
		}),
		Table: fragment.Table{},
	}
	if _, err := c.Compare(ctx, refFile(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
