// Package reference describes the reference genomes a query is scored
// against and how they are located on disk.
package reference

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Genome is one candidate reference. ANI and ConservedDNA are zero until
// the genome has been scored.
type Genome struct {
	ID           string
	Path         string
	ANI          float64
	ConservedDNA float64
}

// Score is the ranking key, ANI weighted by conserved DNA.
func (g Genome) Score() float64 { return g.ANI * g.ConservedDNA }

// Ext is the file extension of reference sequences inside a database dir.
const Ext = ".fna"

// Resolve returns the genome for id stored as <dbDir>/<id>.fna.
func Resolve(dbDir, id string) Genome {
	return Genome{ID: id, Path: filepath.Join(dbDir, id+Ext)}
}

var knownExts = []string{".gz", ".fna", ".fasta", ".fas", ".fa"}

// FromPath derives a genome id from a FASTA file name by stripping a
// compression suffix and a FASTA extension.
func FromPath(path string) Genome {
	id := filepath.Base(path)
	for _, ext := range knownExts {
		id = strings.TrimSuffix(id, ext)
	}
	return Genome{ID: id, Path: path}
}

// LoadIDs reads one reference id per line from path and resolves each
// against dbDir. Blank lines and lines starting with '#' are skipped; only
// the first whitespace-separated token of a line is used.
func LoadIDs(path, dbDir string) ([]Genome, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var list []Genome
	seen := map[string]int{}
	sc := bufio.NewScanner(fh)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		id := strings.Fields(line)[0]
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%s:%d duplicate reference id %q (first on line %d)", path, ln, id, prev)
		}
		seen[id] = ln
		list = append(list, Resolve(dbDir, id))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// ScanDir lists every reference FASTA (*.fna) in dbDir.
func ScanDir(dbDir string) ([]Genome, error) {
	matches, err := filepath.Glob(filepath.Join(dbDir, "*"+Ext))
	if err != nil {
		return nil, err
	}
	list := make([]Genome, 0, len(matches))
	for _, m := range matches {
		list = append(list, Resolve(dbDir, strings.TrimSuffix(filepath.Base(m), Ext)))
	}
	return list, nil
}

// Dedupe drops repeated entries for the same file and keeps the first
// occurrence. Two different files with the same id are an error, since
// results are keyed by id.
func Dedupe(list []Genome) ([]Genome, error) {
	out := make([]Genome, 0, len(list))
	byID := make(map[string]string, len(list))
	for _, g := range list {
		p := filepath.Clean(g.Path)
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if prev, ok := byID[g.ID]; ok {
			if prev == p {
				continue
			}
			return nil, fmt.Errorf("reference id %q names two files: %s and %s", g.ID, prev, p)
		}
		byID[g.ID] = p
		out = append(out, g)
	}
	return out, nil
}
