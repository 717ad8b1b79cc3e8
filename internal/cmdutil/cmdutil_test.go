package cmdutil

import (
	"bytes"
	"context"
	"testing"

	"aniseek/internal/compare"
	"aniseek/internal/pipeline"
	"aniseek/internal/reference"
)

func TestLoggerLevels(t *testing.T) {
	var b bytes.Buffer
	l := Logger{Out: &b}
	l.Infof("a %d", 1)
	l.Debugf("hidden")
	l.Warnf("w")
	if got := b.String(); got != "INFO: a 1\nWARN: w\n" {
		t.Fatalf("got %q", got)
	}

	b.Reset()
	Logger{Out: &b, Quiet: true, Verbose: true}.Debugf("x")
	if b.Len() != 0 {
		t.Fatalf("quiet must win over verbose, got %q", b.String())
	}

	Logger{Out: &b, Verbose: true}.Debugf("d")
	if b.String() != "DEBUG: d\n" {
		t.Fatalf("got %q", b.String())
	}
}

type scoreByID struct{}

func (scoreByID) Compare(_ context.Context, g reference.Genome) (compare.Result, error) {
	if g.ID == "good" {
		g.ANI = 1
	}
	return compare.Result{Genome: g}, nil
}

func TestRunStreamCountsKept(t *testing.T) {
	refs := []reference.Genome{{ID: "good"}, {ID: "bad"}, {ID: "good2"}}
	var sent []string
	n, err := RunStream[string](context.Background(), pipeline.Config{Threads: 2}, refs, scoreByID{},
		func(r compare.Result) (bool, string, error) {
			return r.Genome.ANI > 0, r.Genome.ID, nil
		},
		func(id string) error {
			sent = append(sent, id)
			return nil
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || len(sent) != 1 || sent[0] != "good" {
		t.Fatalf("n=%d sent=%v", n, sent)
	}
}
