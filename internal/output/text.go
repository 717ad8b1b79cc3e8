// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"aniseek/internal/compare"
)

// WriteText prints an optional header and one TSV line per result.
func WriteText(w io.Writer, list []compare.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, r := range list {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}

// StreamText writes results as they arrive on in.
func StreamText(w io.Writer, in <-chan compare.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for r := range in {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}
