// pkg/api/results_v1.go
package api

// ResultV1 is the stable JSON/JSONL schema for one scored reference genome.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	ReferenceID  string  `json:"reference_id"`
	ANI          float64 `json:"ani"`
	ConservedDNA float64 `json:"conserved_dna"`
	Score        float64 `json:"score"`
	Matches      int     `json:"matches"`
	ElapsedMs    int64   `json:"elapsed_ms,omitempty"`
	Path         string  `json:"path,omitempty"`
	Error        string  `json:"error,omitempty"`
}
