// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"aniseek/internal/aligner"
	"aniseek/internal/appcore"
	"aniseek/internal/cli"
	"aniseek/internal/config"
	"aniseek/internal/reference"
	"aniseek/internal/version"
	"aniseek/internal/writers"
)

// flush writes out buffered usage/version text and maps the result to an
// exit code.
func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}

// RunContext is RunWithAligner using nucmer from the configuration.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return RunWithAligner(parent, argv, stdout, stderr, nil)
}

// RunWithAligner parses argv and runs one comparison job. A nil aln runs
// nucmer and delta-filter as configured.
func RunWithAligner(parent context.Context, argv []string, stdout, stderr io.Writer, aln aligner.Aligner) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet("aniseek")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flush(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "aniseek version %s\n", version.Version)
		return flush(outw, stderr, 0)
	}

	conf := opts.Conf
	if opts.ConfigFile != "" {
		fileConf, err := config.LoadFile(opts.ConfigFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		conf = conf.FlagMerge(fileConf, opts.Set)
	}
	if err := conf.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	refs, err := collectRefs(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	return appcore.Run(parent, stdout, stderr, appcore.Options{
		Query:           opts.Query,
		Refs:            refs,
		Conf:            conf,
		All:             opts.All,
		KeepWorkdir:     opts.KeepWorkdir,
		KeepGoing:       opts.KeepGoing,
		Output:          opts.Output,
		Sort:            opts.Sort,
		Header:          opts.Header,
		Progress:        opts.Progress,
		Quiet:           opts.Quiet,
		Verbose:         opts.Verbose,
		NoMatchExitCode: opts.NoMatchExitCode,
		Aligner:         aln,
	})
}

// collectRefs gathers positional reference files followed by the --db
// references (the --ids subset, or every *.fna in the directory). A file
// named twice is compared once; two files sharing an id are rejected.
func collectRefs(opts cli.Options) ([]reference.Genome, error) {
	refs := make([]reference.Genome, 0, len(opts.RefFiles))
	for _, p := range opts.RefFiles {
		refs = append(refs, reference.FromPath(p))
	}
	if opts.DBDir == "" {
		return reference.Dedupe(refs)
	}
	var (
		db  []reference.Genome
		err error
	)
	if opts.IDFile != "" {
		db, err = reference.LoadIDs(opts.IDFile, opts.DBDir)
	} else {
		db, err = reference.ScanDir(opts.DBDir)
	}
	if err != nil {
		return nil, err
	}
	refs = append(refs, db...)
	if len(refs) == 0 {
		return nil, fmt.Errorf("no reference genomes (*%s) in %s", reference.Ext, opts.DBDir)
	}
	return reference.Dedupe(refs)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
