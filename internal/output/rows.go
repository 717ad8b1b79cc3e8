package output

import (
	"fmt"

	"aniseek/internal/compare"
)

// Percent renders a [0,1] fraction with two decimals as a percentage.
func Percent(f float64) string {
	return fmt.Sprintf("%.2f", f*100)
}

// FormatRowTSV returns the TSV columns for r (no trailing newline).
// ANI and conserved DNA are printed as percentages.
func FormatRowTSV(r compare.Result) string {
	return fmt.Sprintf("%s\t%s\t%s\t%.4f\t%d",
		r.Genome.ID,
		Percent(r.Genome.ANI),
		Percent(r.Genome.ConservedDNA),
		r.Genome.Score(),
		r.Matches,
	)
}
