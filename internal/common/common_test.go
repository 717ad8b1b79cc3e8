package common

import (
	"errors"
	"testing"

	"aniseek/internal/compare"
	"aniseek/internal/reference"
)

func res(id string, ani, cdna float64) compare.Result {
	return compare.Result{Genome: reference.Genome{ID: id, ANI: ani, ConservedDNA: cdna}}
}

func TestSortResults(t *testing.T) {
	failed := res("aaa", 1, 1)
	failed.Err = errors.New("x")
	list := []compare.Result{
		res("b", 0.5, 0.5),
		failed,
		res("a", 0.5, 0.5),
		res("c", 0.9, 0.9),
		res("d", 1.0, 0.25), // same score as b, higher ANI
	}
	SortResults(list)
	want := []string{"c", "d", "a", "b", "aaa"}
	for i, id := range want {
		if list[i].Genome.ID != id {
			t.Fatalf("pos %d = %s, want %s (order %v)", i, list[i].Genome.ID, id, ids(list))
		}
	}
}

func ids(list []compare.Result) []string {
	var out []string
	for _, r := range list {
		out = append(out, r.Genome.ID)
	}
	return out
}

func TestThresholds(t *testing.T) {
	th := Thresholds{MinANI: 0.95, MinConservedDNA: 0.69}
	tests := []struct {
		r    compare.Result
		want bool
	}{
		{res("edge", 0.95, 0.69), true},
		{res("low ani", 0.9499, 0.9), false},
		{res("low cdna", 0.99, 0.6), false},
	}
	for _, tc := range tests {
		if got := th.Pass(tc.r); got != tc.want {
			t.Errorf("%s: pass=%v want %v", tc.r.Genome.ID, got, tc.want)
		}
	}
	failed := res("f", 1, 1)
	failed.Err = errors.New("x")
	if th.Pass(failed) {
		t.Error("failed comparison passed thresholds")
	}
}
