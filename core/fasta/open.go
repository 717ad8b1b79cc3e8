package fasta

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"
)

var gzipMagic = []byte{0x1f, 0x8b}

// readCloser pairs a decoding reader with the closers of the layers below.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var first error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openReader opens a FASTA source. "-" reads stdin. Compressed input is
// recognised by the gzip magic bytes, so pipes work too; a ".gz" name with
// other content is still handed to gzip and fails there.
func openReader(path string) (io.ReadCloser, error) {
	var src io.ReadCloser = io.NopCloser(os.Stdin)
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src = fh
	}
	br := bufio.NewReaderSize(src, 1<<16)
	head, _ := br.Peek(len(gzipMagic))
	if !strings.HasSuffix(path, ".gz") && string(head) != string(gzipMagic) {
		return &readCloser{Reader: br, closers: []io.Closer{src}}, nil
	}
	gz, err := gzip.NewReader(br)
	if err != nil {
		_ = src.Close()
		return nil, err
	}
	return &readCloser{Reader: gz, closers: []io.Closer{gz, src}}, nil
}
