// Package compare scores one reference genome against the fragmented query.
package compare

import (
	"context"
	"fmt"
	"os"
	"time"

	"aniseek-core/delta"
	"aniseek-core/fragment"
	"aniseek-core/similarity"
	"aniseek/internal/aligner"
	"aniseek/internal/reference"
)

// Result is the outcome of one comparison.
type Result struct {
	Genome  reference.Genome
	Matches int // alignment blocks attributed to known fragments
	Elapsed time.Duration
	Err     error // set only when the pipeline keeps going past failures
}

// Comparer holds everything shared by the comparisons of one query.
// Table is only read, so one Comparer may serve concurrent calls.
type Comparer struct {
	Aligner   aligner.Aligner
	Table     fragment.Table
	QueryPath string // fragment FASTA handed to the aligner
	TempDir   string // parent for per-comparison workdirs ("" = os.TempDir)
	Policy    delta.Policy

	// KeepWorkdir leaves the aligner workdir on disk (debugging).
	KeepWorkdir bool
}

// Compare aligns the query against g, interprets the filtered delta and
// returns g scored with ANI and conserved DNA.
func (c *Comparer) Compare(ctx context.Context, g reference.Genome) (Result, error) {
	start := time.Now()
	res := Result{Genome: g}

	if _, err := os.Stat(g.Path); err != nil {
		return res, fmt.Errorf("reference %s: %w", g.ID, err)
	}

	work, err := os.MkdirTemp(c.TempDir, "aniseek-"+sanitize(g.ID)+"-")
	if err != nil {
		return res, err
	}
	if !c.KeepWorkdir {
		defer os.RemoveAll(work)
	}

	deltaPath, err := c.Aligner.Align(ctx, g.Path, c.QueryPath, work)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			err = cerr
		}
		return res, fmt.Errorf("reference %s: %w", g.ID, err)
	}
	matches, err := delta.ParseFile(deltaPath, c.Table, c.Policy)
	if err != nil {
		return res, fmt.Errorf("reference %s: %w", g.ID, err)
	}

	sc := similarity.Estimate(c.Table, matches)
	res.Genome.ANI = sc.ANI
	res.Genome.ConservedDNA = sc.ConservedDNA
	res.Matches = len(matches)
	res.Elapsed = time.Since(start)
	return res, nil
}

// sanitize keeps temp dir names portable.
func sanitize(id string) string {
	b := []byte(id)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '_', c == '-':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
