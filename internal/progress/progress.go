// Package progress draws a terminal progress bar over the reference genomes
// of a run.
package progress

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/cwriter"
	"github.com/vbauerster/mpb/v8/decor"
)

// Bar counts finished comparisons. A nil *Bar is a valid no-op bar.
type Bar struct {
	p   *mpb.Progress
	bar *mpb.Bar
	tty bool // mpb only redraws (and flushes Writer output) on a terminal
}

const label = "compared genomes: "

// New starts a bar for total comparisons rendered to w.
func New(w io.Writer, total int) *Bar {
	p := mpb.New(mpb.WithWidth(40), mpb.WithOutput(w))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(label, decor.WC{W: len(label), C: decor.DindentRight}),
			decor.Name("", decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
			decor.AverageETA(decor.ET_STYLE_GO),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)
	return &Bar{p: p, bar: bar, tty: cwriter.New(w).IsTerminal()}
}

// Writer returns a writer that prints complete lines above the running bar,
// or fallback when there is no bar to draw around. It must not be used
// after Wait.
func (b *Bar) Writer(fallback io.Writer) io.Writer {
	if b == nil || !b.tty {
		return fallback
	}
	return b.p
}

// Increment marks one comparison as finished.
func (b *Bar) Increment() {
	if b == nil {
		return
	}
	b.bar.Increment()
}

// Wait completes the bar (even if fewer comparisons finished) and waits for
// the final render.
func (b *Bar) Wait() {
	if b == nil {
		return
	}
	if !b.bar.Completed() {
		b.bar.Abort(false)
	}
	b.p.Wait()
}
