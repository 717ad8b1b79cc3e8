// internal/output/json.go
package output

import (
	"io"

	"aniseek/internal/compare"
	"aniseek/internal/jsonutil"
	"aniseek/pkg/api"
)

// ToAPIResult converts a comparison result to the stable wire schema (v1).
func ToAPIResult(r compare.Result) api.ResultV1 {
	v := api.ResultV1{
		ReferenceID:  r.Genome.ID,
		ANI:          r.Genome.ANI,
		ConservedDNA: r.Genome.ConservedDNA,
		Score:        r.Genome.Score(),
		Matches:      r.Matches,
		ElapsedMs:    r.Elapsed.Milliseconds(),
		Path:         r.Genome.Path,
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
	}
	return v
}

func toAPIResults(list []compare.Result) []api.ResultV1 {
	out := make([]api.ResultV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIResult(r))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 results (pretty-indented).
func WriteJSON(w io.Writer, list []compare.Result) error {
	return jsonutil.EncodePretty(w, toAPIResults(list))
}
