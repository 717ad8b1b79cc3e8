// Package similarity reduces parsed alignment blocks to genome-level
// similarity scores.
package similarity

import (
	"aniseek-core/delta"
	"aniseek-core/fragment"
)

const (
	// ConservedIdentity is the identical-bases-per-fragment fraction a block
	// must exceed to count as conserved DNA.
	ConservedIdentity = 0.9
	// ANIMinIdentity is the identity a block must exceed to enter the ANI mean.
	ANIMinIdentity = 0.3
	// ANIMinCoverage is the fragment coverage a block must reach to enter the
	// ANI mean.
	ANIMinCoverage = 0.7
)

// Scores holds both metrics for one query/reference comparison.
type Scores struct {
	ANI          float64
	ConservedDNA float64
}

// Score is the ranking key, ANI weighted by conserved DNA.
func (s Scores) Score() float64 { return s.ANI * s.ConservedDNA }

// Estimate computes both metrics.
func Estimate(table fragment.Table, matches []delta.Match) Scores {
	return Scores{
		ANI:          ANI(table, matches),
		ConservedDNA: ConservedDNA(table, matches),
	}
}

// ConservedDNA is the aligned length of near-perfect blocks divided by the
// total length of all fragments in table. Near-perfect means identical bases
// make up more than ConservedIdentity of the fragment. Returns 0 for an
// empty genome.
func ConservedDNA(table fragment.Table, matches []delta.Match) float64 {
	alignmentSum := 0
	for _, m := range matches {
		f, ok := table.Lookup(m.FragmentID)
		if !ok || f.Length <= 0 {
			continue
		}
		if float64(m.Identities())/float64(f.Length) > ConservedIdentity {
			alignmentSum += m.AlignmentLength
		}
	}
	genomeLength := table.GenomeLength()
	if genomeLength <= 0 {
		return 0
	}
	return float64(alignmentSum) / float64(genomeLength)
}

// ANI is the mean identity (identical bases / aligned length) over blocks
// with identity above ANIMinIdentity that cover at least ANIMinCoverage of
// their fragment. Returns 0 when no block qualifies.
func ANI(table fragment.Table, matches []delta.Match) float64 {
	var (
		niSum float64
		n     int
	)
	for _, m := range matches {
		f, ok := table.Lookup(m.FragmentID)
		if !ok || f.Length <= 0 || m.AlignmentLength <= 0 {
			continue
		}
		identity := float64(m.Identities()) / float64(m.AlignmentLength)
		coverage := float64(m.AlignmentLength) / float64(f.Length)
		if identity > ANIMinIdentity && coverage >= ANIMinCoverage {
			niSum += identity
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return niSum / float64(n)
}
