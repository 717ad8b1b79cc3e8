package writers

import (
	"io"

	"aniseek/internal/common"
	"aniseek/internal/compare"
	"aniseek/internal/output"
)

type resultArgs struct {
	Sort   bool
	Header bool
	In     <-chan compare.Result
}

func drainResults(ch <-chan compare.Result) []compare.Result {
	list := make([]compare.Result, 0, 64)
	for r := range ch {
		list = append(list, r)
	}
	return list
}

func init() {
	// TSV (stream or buffered+sort)
	registerResult(output.FormatText, func(w io.Writer, args resultArgs) error {
		if args.Sort {
			list := drainResults(args.In)
			common.SortResults(list)
			return output.WriteText(w, list, args.Header)
		}
		return output.StreamText(w, args.In, args.Header)
	})

	// JSON array
	registerResult(output.FormatJSON, func(w io.Writer, args resultArgs) error {
		list := drainResults(args.In)
		if args.Sort {
			common.SortResults(list)
		}
		return output.WriteJSON(w, list)
	})

	// JSONL (stream or buffered+sort)
	registerResult(output.FormatJSONL, func(w io.Writer, args resultArgs) error {
		pipe, done := StartResultJSONLWriter(w, 64)
		if args.Sort {
			list := drainResults(args.In)
			common.SortResults(list)
			for _, r := range list {
				pipe <- r
			}
		} else {
			for r := range args.In {
				pipe <- r
			}
		}
		close(pipe)
		return <-done
	})
}

// StartResultWriter spins up a writer goroutine for comparison results in
// the given format. With sort, results are buffered and written best first.
func StartResultWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- compare.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan compare.Result, bufSize)
	errCh := make(chan error, 1)

	go func() {
		err := writeResults(format, out, resultArgs{Sort: sort, Header: header, In: in})
		// Keep senders unblocked if the handler bailed out early.
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}
