package progress

import (
	"bytes"
	"testing"
)

func TestNilBarIsNoop(t *testing.T) {
	var b *Bar
	var fallback bytes.Buffer
	if b.Writer(&fallback) != &fallback {
		t.Fatal("nil bar must log to the fallback writer")
	}
	b.Increment()
	b.Wait()
}

func TestWriterOffTerminal(t *testing.T) {
	var out, fallback bytes.Buffer
	b := New(&out, 2)
	w := b.Writer(&fallback)
	if w != &fallback {
		t.Fatal("non-terminal bar must log to the fallback writer")
	}
	if _, err := w.Write([]byte("WARN: x\n")); err != nil {
		t.Fatal(err)
	}
	b.Wait()
	if fallback.String() != "WARN: x\n" {
		t.Fatalf("fallback got %q", fallback.String())
	}
}

func TestBarCompletes(t *testing.T) {
	var out bytes.Buffer
	b := New(&out, 3)
	for i := 0; i < 3; i++ {
		b.Increment()
	}
	b.Wait()
}

func TestBarAbortedEarly(t *testing.T) {
	var out bytes.Buffer
	b := New(&out, 5)
	b.Increment()
	b.Wait()
}
