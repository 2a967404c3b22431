package crossing

import (
	"testing"

	"parkcross/internal/model"
)

func TestSplitParking(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       model.Value
		num      model.Value
		kind     model.Value
		nullKind bool
	}{
		{in: model.Text("12-Carro"), num: model.Text("12"), kind: model.Text("Carro")},
		{in: model.Text("12-A-Carro"), num: model.Text("12"), kind: model.Text("A-Carro")},
		{in: model.Text("Sotano"), num: model.Text("Sotano"), nullKind: true},
		{in: model.NumberCell("45"), num: model.Text("45"), nullKind: true},
	}

	for _, tc := range cases {
		num, kind := SplitParking(tc.in)
		if !sameValue(num, tc.num) {
			t.Fatalf("%q: num=%q, want %q", tc.in.String(), num.String(), tc.num.String())
		}
		if tc.nullKind {
			if !kind.IsNull() {
				t.Fatalf("%q: kind should be null, got %q", tc.in.String(), kind.String())
			}
			continue
		}
		if !sameValue(kind, tc.kind) {
			t.Fatalf("%q: kind=%q, want %q", tc.in.String(), kind.String(), tc.kind.String())
		}
	}

	num, kind := SplitParking(model.Null)
	if !num.IsNull() || !kind.IsNull() {
		t.Fatalf("null parking should split into nulls")
	}
}

func TestAssignmentCode(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		in   model.Value
		want int64
	}{
		"number":    {model.NumberCell("100"), 100},
		"truncated": {model.Number(100.9), 100},
		"text num":  {model.Text("42"), 42},
		"null":      {model.Null, 0},
		"text":      {model.Text("abc"), 0},
	}
	for name, tc := range cases {
		if got := AssignmentCode(tc.in); got != tc.want {
			t.Fatalf("%s: got %d, want %d", name, got, tc.want)
		}
	}
}

func TestPrepareAssignments(t *testing.T) {
	t.Parallel()

	assignments := table([]string{"Codigo", "PlacaVehiculo1", "Parqueadero", "SheetName"},
		map[string]any{"Codigo": 100, "PlacaVehiculo1": "ABC123", "Parqueadero": "12-Carro", "SheetName": "S1"},
		map[string]any{"Codigo": nil, "PlacaVehiculo1": "XYZ", "Parqueadero": "7", "SheetName": "S1"},
	)

	out := PrepareAssignments(assignments)

	if got := out.Rows[0].Get(model.ColConcatenatedInfo).String(); got != "100_ABC123_S1" {
		t.Fatalf("key=%q", got)
	}
	if got := out.Rows[1].Get(model.ColConcatenatedInfo).String(); got != "0_XYZ_S1" {
		t.Fatalf("missing Codigo should become 0, key=%q", got)
	}
	if out.Rows[0].Text(model.ColNumParq) != "12" || out.Rows[0].Text(model.ColTipoParq) != "Carro" {
		t.Fatalf("split=%q/%q", out.Rows[0].Text(model.ColNumParq), out.Rows[0].Text(model.ColTipoParq))
	}
	if !out.Rows[1].Get(model.ColTipoParq).IsNull() {
		t.Fatalf("value without separator should leave Tipo_parq null")
	}
	// 源表不应被修改
	if _, leaked := assignments.Rows[1][model.ColConcatenatedInfo]; leaked {
		t.Fatalf("source assignment table mutated")
	}
}

func TestPrepareAssignments_NoParkingColumn(t *testing.T) {
	t.Parallel()

	assignments := table([]string{"Codigo", "PlacaVehiculo1", "SheetName"},
		map[string]any{"Codigo": 1, "PlacaVehiculo1": "A", "SheetName": "S1"},
	)
	out := PrepareAssignments(assignments)

	num, kind := out.Rows[0].Get(model.ColNumParq), out.Rows[0].Get(model.ColTipoParq)
	if num.Kind() != model.KindText || num.String() != "" || kind.Kind() != model.KindText || kind.String() != "" {
		t.Fatalf("absent Parqueadero should yield empty strings, got %q/%q", num.String(), kind.String())
	}
}
