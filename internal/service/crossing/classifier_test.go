package crossing

import (
	"testing"

	"parkcross/internal/model"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		row  map[string]any
		want model.Verdict
	}{
		{"debt and legal flag", map[string]any{"cal_cartera": 350, "juridico": "Y"}, model.VerdictReview},
		{"debt and null legal flag", map[string]any{"cal_cartera": 10}, model.VerdictReview},
		{"debt without legal process", map[string]any{"cal_cartera": 350, "juridico": "N"}, model.VerdictDeny},
		{"no debt", map[string]any{"cal_cartera": 0, "juridico": "Y"}, model.VerdictGrant},
		{"negative balance", map[string]any{"cal_cartera": -5, "juridico": "N"}, model.VerdictGrant},
		{"unmatched ledger", map[string]any{"cal_cartera": nil}, model.VerdictGrant},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(row(tc.row)); got != tc.want {
				t.Fatalf("Classify=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestFilterByStatus(t *testing.T) {
	t.Parallel()

	requests := table([]string{"Estado", "Codigo"},
		map[string]any{"Estado": "Autorizado", "Codigo": 1},
		map[string]any{"Estado": "Rechazado", "Codigo": 2},
		map[string]any{"Estado": "Solicitud", "Codigo": 3},
		map[string]any{"Estado": nil, "Codigo": 4},
		map[string]any{"Estado": "autorizado", "Codigo": 5},
	)

	got := FilterByStatus(requests, model.DefaultAcceptedStatuses)
	if got.Len() != 2 {
		t.Fatalf("rows=%d, want 2", got.Len())
	}
	if got.Rows[0].Text("Codigo") != "1" || got.Rows[1].Text("Codigo") != "3" {
		t.Fatalf("unexpected rows kept: %q, %q", got.Rows[0].Text("Codigo"), got.Rows[1].Text("Codigo"))
	}
}

func TestClassifyRequests_TotalVerdicts(t *testing.T) {
	t.Parallel()

	requests := table([]string{"Codigo", "SheetName", "Estado"},
		map[string]any{"Codigo": 1, "SheetName": "S1", "Estado": "Autorizado"},
		map[string]any{"Codigo": 2, "SheetName": "S1", "Estado": "Autorizado"},
		map[string]any{"Codigo": 3, "SheetName": "S1", "Estado": "Solicitud"},
	)
	ledger := table([]string{"codigo", "saldo", "juridico", "SheetName"},
		map[string]any{"codigo": 1, "saldo": 100, "juridico": "N", "SheetName": "S1"},
		map[string]any{"codigo": 2, "saldo": 0, "juridico": "S", "SheetName": "S1"},
	)
	enriched, _ := EnrichLedger(ledger)
	AddSheetCodigo(requests, model.ColCodigo)
	AddSheetCodigo(enriched, model.ColLedgerCodigo)

	out, stats := ClassifyRequests(requests, enriched)

	want := []model.Verdict{model.VerdictDeny, model.VerdictGrant, model.VerdictGrant}
	for i, w := range want {
		if got := model.Verdict(out.Rows[i].Get(model.ColAsignarPark).String()); got != w {
			t.Fatalf("row %d verdict=%q, want %q", i, got, w)
		}
	}
	if stats.Unmatched != 1 {
		t.Fatalf("unmatched=%d, want 1", stats.Unmatched)
	}
	if !out.Rows[2].Get(model.ColCalCartera).IsNull() {
		t.Fatalf("unmatched row should carry null cal_cartera")
	}
	for _, col := range model.LedgerAttachColumns {
		if !out.HasColumn(col) {
			t.Fatalf("missing attached column %s", col)
		}
	}
}
