// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"aniseek/internal/compare"
	"aniseek/internal/jsonlutil"
	"aniseek/internal/output"
)

// StartResultJSONLWriter streams each result as one JSON line (v1).
func StartResultJSONLWriter(out io.Writer, bufSize int) (chan<- compare.Result, <-chan error) {
	return jsonlutil.Start[compare.Result](out, bufSize,
		func(enc *json.Encoder, r compare.Result) error {
			return enc.Encode(output.ToAPIResult(r))
		},
		IsBrokenPipe,
	)
}
