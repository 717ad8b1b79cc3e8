// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"aniseek-core/delta"
	"aniseek-core/fragment"
	"aniseek/internal/aligner"
	"aniseek/internal/cmdutil"
	"aniseek/internal/common"
	"aniseek/internal/compare"
	"aniseek/internal/config"
	"aniseek/internal/pipeline"
	"aniseek/internal/progress"
	"aniseek/internal/reference"
	"aniseek/internal/store"
	"aniseek/internal/writers"
)

// FragmentFile is the name of the fragmented query inside the run dir.
const FragmentFile = "query-fragments.fna"

type Options struct {
	Query string
	Refs  []reference.Genome
	Conf  config.Config

	All         bool
	KeepWorkdir bool
	KeepGoing   bool

	Output   string
	Sort     bool
	Header   bool
	Progress bool

	Quiet           bool
	Verbose         bool
	NoMatchExitCode int

	// Aligner overrides the nucmer pipeline built from Conf.
	Aligner aligner.Aligner
}

// Run fragments the query, compares it against every reference and writes
// the references passing the thresholds. It returns the process exit code.
func Run(parent context.Context, stdout, stderr io.Writer, o Options) int {
	log := cmdutil.Logger{Out: stderr, Quiet: o.Quiet, Verbose: o.Verbose}
	outw := bufio.NewWriter(stdout)

	policy, err := delta.ParsePolicy(o.Conf.MatchPolicy)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	if len(o.Refs) == 0 {
		fmt.Fprintln(stderr, "error: no reference genomes to compare")
		return 2
	}

	thr := o.Conf.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	runDir, err := os.MkdirTemp(o.Conf.TempDir, "aniseek-query-")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	if !o.KeepWorkdir {
		defer os.RemoveAll(runDir)
	}
	fragPath := filepath.Join(runDir, FragmentFile)

	table, err := fragment.Build(ctx, o.Query, fragPath, o.Conf.FragmentSize)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, err)
		return 3
	}
	log.Infof("query %s: %s fragments, %s bp", o.Query,
		humanize.Comma(int64(len(table))), humanize.Comma(int64(table.GenomeLength())))
	log.Debugf("fragments written to %s", fragPath)

	aln := o.Aligner
	if aln == nil {
		aln = aligner.Nucmer{Nucmer: o.Conf.Nucmer, DeltaFilter: o.Conf.DeltaFilter, Threads: 1}
	}
	cmp := &compare.Comparer{
		Aligner:     aln,
		Table:       table,
		QueryPath:   fragPath,
		TempDir:     o.Conf.TempDir,
		Policy:      policy,
		KeepWorkdir: o.KeepWorkdir,
	}

	var (
		st    *store.Store
		runID string
	)
	if o.Conf.Store != "" {
		st, err = store.Open(o.Conf.Store)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
		defer st.Close()
		runID, err = st.BeginRun(o.Query, len(table), table.GenomeLength(), policy.String())
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
		log.Infof("recording run %s in %s", runID, o.Conf.Store)
	}

	var bar *progress.Bar
	if o.Progress && !o.Quiet {
		bar = progress.New(stderr, len(o.Refs))
	}
	// Log lines go above the bar while it is drawn.
	log.Out = bar.Writer(stderr)

	th := common.Thresholds{MinANI: o.Conf.MinANI, MinConservedDNA: o.Conf.MinConservedDNA}
	inCh, writeErr := writers.StartResultWriter(outw, o.Output, o.Sort, o.Header, thr*4)

	start := time.Now()
	compared, failed := 0, 0
	total, perr := cmdutil.RunStream[compare.Result](
		ctx,
		pipeline.Config{Threads: thr, KeepGoing: o.KeepGoing},
		o.Refs,
		cmp,
		func(r compare.Result) (bool, compare.Result, error) {
			bar.Increment()
			compared++
			if st != nil {
				if err := st.AddResult(runID, r); err != nil {
					return false, r, err
				}
			}
			if r.Err != nil {
				failed++
				log.Warnf("%v", r.Err)
				return false, r, nil
			}
			log.Debugf("%s: ANI %.4f, conserved DNA %.4f, %d matches in %s",
				r.Genome.ID, r.Genome.ANI, r.Genome.ConservedDNA, r.Matches, r.Elapsed.Round(time.Millisecond))
			return o.All || th.Pass(r), r, nil
		},
		func(r compare.Result) error {
			select {
			case inCh <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)
	bar.Wait()
	log.Out = stderr

	if st != nil {
		if err := st.FinishRun(runID, compared); err != nil {
			log.Warnf("%v", err)
		}
	}

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}
	log.Infof("compared %s of %s references in %s (%d failed, %d reported)",
		humanize.Comma(int64(compared)), humanize.Comma(int64(len(o.Refs))),
		time.Since(start).Round(time.Millisecond), failed, total)
	if total == 0 {
		return o.NoMatchExitCode
	}
	return 0
}
