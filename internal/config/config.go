// Package config holds run settings that may come from a TOML file and be
// overridden on the command line.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"aniseek-core/delta"
	"aniseek-core/fragment"
)

// Config is the persisted shape of a run configuration.
type Config struct {
	Nucmer       string `toml:"nucmer"`
	DeltaFilter  string `toml:"delta_filter"`
	FragmentSize int    `toml:"fragment_size"`
	MatchPolicy  string `toml:"match_policy"`

	MinANI          float64 `toml:"min_ani"`
	MinConservedDNA float64 `toml:"min_conserved_dna"`

	Threads int    `toml:"threads"`
	TempDir string `toml:"temp_dir"`
	Store   string `toml:"store"`
}

// Default mirrors the built-in flag defaults.
func Default() Config {
	return Config{
		Nucmer:          "nucmer",
		DeltaFilter:     "delta-filter",
		FragmentSize:    fragment.DefaultSize,
		MatchPolicy:     delta.LastBlock.String(),
		MinANI:          0.95,
		MinConservedDNA: 0.69,
	}
}

// Load decodes TOML from r on top of Default. Unknown keys are an error.
func Load(r io.Reader) (Config, error) {
	conf := Default()
	md, err := toml.NewDecoder(r).Decode(&conf)
	if err != nil {
		return Config{}, err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undec[0].String())
	}
	return conf, conf.Validate()
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (Config, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer fh.Close()
	conf, err := Load(fh)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.FragmentSize <= 0 {
		return fmt.Errorf("fragment_size must be > 0 (got %d)", c.FragmentSize)
	}
	if c.MinANI < 0 || c.MinANI > 1 {
		return fmt.Errorf("min_ani must be within [0,1] (got %g)", c.MinANI)
	}
	if c.MinConservedDNA < 0 || c.MinConservedDNA > 1 {
		return fmt.Errorf("min_conserved_dna must be within [0,1] (got %g)", c.MinConservedDNA)
	}
	if c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0 (got %d)", c.Threads)
	}
	if _, err := delta.ParsePolicy(c.MatchPolicy); err != nil {
		return err
	}
	return nil
}

// FlagMerge returns flagConf with every setting the user did not pass
// explicitly (per set, keyed by flag name) taken from fileConf.
func (flagConf Config) FlagMerge(fileConf Config, set map[string]bool) Config {
	out := flagConf
	if !set["nucmer"] {
		out.Nucmer = fileConf.Nucmer
	}
	if !set["delta-filter"] {
		out.DeltaFilter = fileConf.DeltaFilter
	}
	if !set["fragment-size"] {
		out.FragmentSize = fileConf.FragmentSize
	}
	if !set["match-policy"] {
		out.MatchPolicy = fileConf.MatchPolicy
	}
	if !set["min-ani"] {
		out.MinANI = fileConf.MinANI
	}
	if !set["min-conserved-dna"] {
		out.MinConservedDNA = fileConf.MinConservedDNA
	}
	if !set["threads"] && !set["t"] {
		out.Threads = fileConf.Threads
	}
	if !set["temp-dir"] {
		out.TempDir = fileConf.TempDir
	}
	if !set["store"] {
		out.Store = fileConf.Store
	}
	return out
}
