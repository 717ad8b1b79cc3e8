package common

import "aniseek/internal/compare"

// Thresholds are the minimum scores a reference needs to be reported.
type Thresholds struct {
	MinANI          float64
	MinConservedDNA float64
}

// Pass reports whether r scored at or above both thresholds. Failed
// comparisons never pass.
func (t Thresholds) Pass(r compare.Result) bool {
	if r.Err != nil {
		return false
	}
	return r.Genome.ANI >= t.MinANI && r.Genome.ConservedDNA >= t.MinConservedDNA
}
