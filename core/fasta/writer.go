package fasta

import (
	"bufio"
	"io"
)

// DefaultLineWidth is the sequence wrap width used by Writer.
const DefaultLineWidth = 80

// Writer emits FASTA records with wrapped sequence lines.
type Writer struct {
	bw    *bufio.Writer
	Width int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w), Width: DefaultLineWidth}
}

// Write emits one record. Width <= 0 writes the sequence on a single line.
func (w *Writer) Write(id string, seq []byte) error {
	if err := w.bw.WriteByte('>'); err != nil {
		return err
	}
	if _, err := w.bw.WriteString(id); err != nil {
		return err
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return err
	}
	width := w.Width
	if width <= 0 {
		width = len(seq)
	}
	for off := 0; off < len(seq); off += width {
		end := off + width
		if end > len(seq) {
			end = len(seq)
		}
		if _, err := w.bw.Write(seq[off:end]); err != nil {
			return err
		}
		if err := w.bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error { return w.bw.Flush() }
