// internal/common/sort.go
package common

import (
	"sort"

	"aniseek/internal/compare"
)

// LessResult orders results best first: score, then ANI, then conserved DNA
// (all descending), then reference id. Failed comparisons sort last.
func LessResult(a, b compare.Result) bool {
	if (a.Err == nil) != (b.Err == nil) {
		return a.Err == nil
	}
	if sa, sb := a.Genome.Score(), b.Genome.Score(); sa != sb {
		return sa > sb
	}
	if a.Genome.ANI != b.Genome.ANI {
		return a.Genome.ANI > b.Genome.ANI
	}
	if a.Genome.ConservedDNA != b.Genome.ConservedDNA {
		return a.Genome.ConservedDNA > b.Genome.ConservedDNA
	}
	return a.Genome.ID < b.Genome.ID
}

// SortResults sorts list in place with LessResult.
func SortResults(list []compare.Result) {
	sort.SliceStable(list, func(i, j int) bool { return LessResult(list[i], list[j]) })
}
