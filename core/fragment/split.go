package fragment

import (
	"context"
	"fmt"
	"os"

	"aniseek-core/fasta"
)

const (
	// DefaultSize is the nominal fragment length in bp.
	DefaultSize = 1020
	// MinTail is how much longer than size a sequence must be before
	// another full-size fragment is cut; shorter remainders stay attached
	// to the last fragment.
	MinTail = 100
)

// Split cuts seq into pieces of size bp. A piece is only cut while the
// remaining sequence is longer than size+MinTail; whatever remains becomes
// the final piece. The returned slices alias seq.
func Split(seq []byte, size int) [][]byte {
	if len(seq) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]byte{seq}
	}
	var out [][]byte
	for len(seq) > size+MinTail {
		out = append(out, seq[:size])
		seq = seq[size:]
	}
	return append(out, seq)
}

// Build splits every record of the query FASTA at queryPath into fragments,
// numbers them from 1 across all records, writes them to outPath as FASTA
// (header = numeric id) and returns the fragment table.
func Build(ctx context.Context, queryPath, outPath string, size int) (Table, error) {
	fh, err := os.Create(outPath)
	if err != nil {
		return nil, err
	}
	w := fasta.NewWriter(fh)

	table := Table{}
	next := 1
	err = fasta.StreamPathCtx(ctx, queryPath, func(r fasta.Record) error {
		for _, piece := range Split(r.Seq, size) {
			if err := w.Write(fmt.Sprint(next), piece); err != nil {
				return err
			}
			table.Add(Fragment{ID: next, Length: len(piece)})
			next++
		}
		return nil
	})
	if err == nil {
		err = w.Flush()
	}
	if cerr := fh.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("fragment %s: %w", queryPath, err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("fragment %s: no sequence data", queryPath)
	}
	return table, nil
}
