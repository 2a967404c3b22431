package crossing

import (
	"testing"

	"parkcross/internal/model"
)

func TestLeftJoin_Cardinality(t *testing.T) {
	t.Parallel()

	left := table([]string{"k", "a"},
		map[string]any{"k": "1", "a": "first"},
		map[string]any{"k": "2", "a": "second"},
		map[string]any{"k": "3", "a": "third"},
	)
	right := table([]string{"k", "b"},
		map[string]any{"k": "2", "b": "x"},
		map[string]any{"k": "2", "b": "y"},
		map[string]any{"k": "1", "b": "z"},
	)

	out, stats := LeftJoin(left, right, "k", []string{"b"})

	if out.Len() != 4 {
		t.Fatalf("rows=%d, want 4", out.Len())
	}
	got := []string{}
	for _, r := range out.Rows {
		got = append(got, r.Get("a").String()+":"+r.Get("b").String())
	}
	want := []string{"first:z", "second:x", "second:y", "third:"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row order=%v, want %v", got, want)
		}
	}
	if !out.Rows[3].Get("b").IsNull() {
		t.Fatalf("unmatched attach column should be null")
	}
	if stats.Matched != 2 || stats.Unmatched != 1 || stats.Expanded != 1 {
		t.Fatalf("stats=%+v", stats)
	}
}

func TestLeftJoin_NeverDropsLeftRows(t *testing.T) {
	t.Parallel()

	left := table([]string{"k"},
		map[string]any{"k": "a"},
		map[string]any{"k": "b"},
	)
	right := model.NewTable("k", "v")

	out, stats := LeftJoin(left, right, "k", []string{"v"})
	if out.Len() != 2 || stats.Unmatched != 2 {
		t.Fatalf("rows=%d stats=%+v", out.Len(), stats)
	}
	if !out.HasColumn("v") {
		t.Fatalf("attach column must exist even without matches")
	}
}

func TestLeftJoin_CollidingColumnRenamed(t *testing.T) {
	t.Parallel()

	left := table([]string{"k", "saldo"},
		map[string]any{"k": "1", "saldo": "request-side"},
	)
	right := table([]string{"k", "saldo"},
		map[string]any{"k": "1", "saldo": 10},
	)

	out, _ := LeftJoin(left, right, "k", []string{"saldo"})
	r := out.Rows[0]
	if r.Get("saldo_x").String() != "request-side" {
		t.Fatalf("saldo_x=%q", r.Get("saldo_x").String())
	}
	if f, _ := r.Float("saldo"); f != 10 {
		t.Fatalf("saldo=%v, want 10", f)
	}
}
