package reference

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	g := Resolve("/db", "GCF_000005845.2")
	if g.ID != "GCF_000005845.2" || g.Path != filepath.Join("/db", "GCF_000005845.2.fna") {
		t.Fatalf("resolve = %+v", g)
	}
}

func TestFromPath(t *testing.T) {
	tests := map[string]string{
		"/x/ecoli.fna":       "ecoli",
		"/x/ecoli.fna.gz":    "ecoli",
		"salmonella.fasta":   "salmonella",
		"GCF_000006945.2.fa": "GCF_000006945.2",
		"plain":              "plain",
	}
	for in, want := range tests {
		if got := FromPath(in).ID; got != want {
			t.Errorf("FromPath(%q).ID = %q, want %q", in, got, want)
		}
	}
}

func TestLoadIDs(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "ids.txt")
	data := "# refs\nA extra columns\n\nB\n"
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	list, err := LoadIDs(fn, "/db")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(list) != 2 || list[0].ID != "A" || list[1].Path != filepath.Join("/db", "B.fna") {
		t.Fatalf("list = %+v", list)
	}
}

func TestLoadIDsDuplicate(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "ids.txt")
	if err := os.WriteFile(fn, []byte("A\nA\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadIDs(fn, "/db"); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("want duplicate error, got %v", err)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.fna", "b.fna", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(">x\nA\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	list, err := ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Fatalf("list = %+v", list)
	}
}

func TestDedupe(t *testing.T) {
	dir := t.TempDir()
	list := []Genome{
		FromPath(filepath.Join(dir, "a.fna")),
		Resolve(dir, "b"),
		Resolve(dir, "a"),
		FromPath(filepath.Join(dir, ".", "b.fna")),
	}
	got, err := Dedupe(list)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("dedupe = %+v", got)
	}

	_, err = Dedupe([]Genome{
		FromPath(filepath.Join(dir, "x", "a.fna")),
		FromPath(filepath.Join(dir, "y", "a.fna")),
	})
	if err == nil || !strings.Contains(err.Error(), `"a"`) {
		t.Fatalf("want id clash error, got %v", err)
	}
}
