// core/fasta/reader.go
package fasta

import (
	"context"
)

// Record represents one parsed FASTA sequence.
type Record struct {
	ID  string
	Seq []byte
}

// StreamCtx is the channel wrapper around StreamPathCtx.
//   - gzip and "-" for stdin are handled the same way (early open error for non-stdin)
//   - scan-time errors are delivered on the error channel after the records channel closes
func StreamCtx(ctx context.Context, path string) (<-chan Record, <-chan error, error) {
	if path != "-" {
		rc, err := openReader(path)
		if err != nil {
			return nil, nil, err
		}
		_ = rc.Close()
	}

	out := make(chan Record, 8)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(out)
		errc <- StreamPathCtx(ctx, path, func(r Record) error {
			select {
			case out <- r:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()
	return out, errc, nil
}

// ReadAll loads every record of path into memory.
func ReadAll(ctx context.Context, path string) ([]Record, error) {
	var recs []Record
	err := StreamPathCtx(ctx, path, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}
