// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"aniseek-core/delta"
	"aniseek/internal/cliutil"
	"aniseek/internal/config"
	"aniseek/internal/output"
	"aniseek/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Query      string
	DBDir      string
	IDFile     string
	RefFiles   []string
	ConfigFile string

	// Tools and scoring; defaults come from config.Default
	Conf config.Config
	All  bool // report every reference regardless of thresholds

	// Execution
	KeepWorkdir bool
	KeepGoing   bool

	// Output
	Output          string
	Sort            bool
	Header          bool
	Progress        bool
	NoMatchExitCode int

	// Misc
	Quiet   bool
	Verbose bool
	Version bool

	// Set records flags given explicitly on the command line.
	Set map[string]bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: ANI / conserved DNA between a query genome and reference genomes

Version: %s

Usage of %s:
  %s --query Q.fna [--db DIR [--ids FILE]] [REF.fna ...] [flags]

`, name, version.Version, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool
	def := config.Default()
	opt.Conf = def

	// Input
	fs.StringVar(&opt.Query, "query", "", "query genome FASTA (.gz ok) [*]")
	fs.StringVar(&opt.Query, "i", "", "alias of --query")
	fs.StringVar(&opt.DBDir, "db", "", "reference directory holding <id>.fna files")
	fs.StringVar(&opt.IDFile, "ids", "", "file of reference ids (one per line) resolved against --db")
	fs.StringVar(&opt.ConfigFile, "config", "", "TOML config file; explicit flags win")

	// Tools
	fs.StringVar(&opt.Conf.Nucmer, "nucmer", def.Nucmer, "nucmer binary ["+def.Nucmer+"]")
	fs.StringVar(&opt.Conf.DeltaFilter, "delta-filter", def.DeltaFilter, "delta-filter binary ["+def.DeltaFilter+"]")
	fs.StringVar(&opt.Conf.TempDir, "temp-dir", "", "parent directory for aligner workdirs [system temp]")

	// Scoring
	fs.IntVar(&opt.Conf.FragmentSize, "fragment-size", def.FragmentSize, fmt.Sprintf("query fragment length in bp [%d]", def.FragmentSize))
	fs.StringVar(&opt.Conf.MatchPolicy, "match-policy", def.MatchPolicy, "repeated blocks per fragment: last-block | per-block ["+def.MatchPolicy+"]")
	fs.Float64Var(&opt.Conf.MinANI, "min-ani", def.MinANI, fmt.Sprintf("minimum ANI to report [%g]", def.MinANI))
	fs.Float64Var(&opt.Conf.MinConservedDNA, "min-conserved-dna", def.MinConservedDNA, fmt.Sprintf("minimum conserved DNA to report [%g]", def.MinConservedDNA))
	fs.BoolVar(&opt.All, "all", false, "report all references, ignoring --min-ani/--min-conserved-dna [false]")

	// Execution
	fs.IntVar(&opt.Conf.Threads, "threads", 0, "concurrent comparisons (0 = all CPUs) [0]")
	fs.IntVar(&opt.Conf.Threads, "t", 0, "alias of --threads")
	fs.BoolVar(&opt.KeepWorkdir, "keep-workdir", false, "keep aligner workdirs for inspection [false]")
	fs.BoolVar(&opt.KeepGoing, "keep-going", false, "continue when a comparison fails [false]")
	fs.StringVar(&opt.Conf.Store, "store", "", "SQLite file to record the run in")

	// Output
	fs.StringVar(&opt.Output, "output", output.FormatText, "output: text | json | jsonl [text]")
	fs.StringVar(&opt.Output, "o", output.FormatText, "alias of --output")
	noSort := false
	fs.BoolVar(&noSort, "no-sort", false, "emit results in completion order instead of best first [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text output [false]")
	fs.BoolVar(&opt.Progress, "progress", false, "show a progress bar on stderr [false]")
	fs.IntVar(&opt.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no reference passes the thresholds [1]")

	// Misc
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress non-essential messages [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Verbose, "verbose", false, "print per-reference debug messages [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	posArgs = append(posArgs, fs.Args()...)
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Sort = !noSort
	opt.Header = !noHeader
	opt.Set = cliutil.SetFlags(fs)

	refs, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}
	opt.RefFiles = refs
	return opt, Validate(&opt)
}

// Validate applies CLI invariants that do not depend on the config file.
func Validate(o *Options) error {
	if o.Query == "" {
		return errors.New("--query is required")
	}
	if o.IDFile != "" && o.DBDir == "" {
		return errors.New("--ids requires --db")
	}
	if o.DBDir == "" && len(o.RefFiles) == 0 {
		return errors.New("provide reference FASTA files or --db")
	}
	for _, r := range o.RefFiles {
		if r == "-" {
			return errors.New("references must be files ('-' is not supported)")
		}
	}
	if !output.ValidFormat(o.Output) {
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if _, err := delta.ParsePolicy(o.Conf.MatchPolicy); err != nil {
		return err
	}
	if o.Conf.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.Conf.FragmentSize <= 0 {
		return errors.New("--fragment-size must be > 0")
	}
	return nil
}
