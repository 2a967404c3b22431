package crossing

import "parkcross/internal/model"

// FilterByStatus 仅保留 Estado 在 statuses 内的申请（精确匹配）
func FilterByStatus(requests *model.Table, statuses []string) *model.Table {
	accepted := make(map[string]struct{}, len(statuses))
	for _, s := range statuses {
		accepted[s] = struct{}{}
	}
	return requests.Filter(func(row model.Row) bool {
		v := row.Get(model.ColEstado)
		if v.IsNull() {
			return false
		}
		_, ok := accepted[v.String()]
		return ok
	})
}

// Classify 分配结论，cal_cartera 为空（未匹配账务）按 <= 0 处理
func Classify(row model.Row) model.Verdict {
	net, ok := row.Float(model.ColCalCartera)
	if !ok || net <= 0 {
		return model.VerdictGrant
	}
	if row.Get(model.ColJuridico).String() == "N" {
		return model.VerdictDeny
	}
	return model.VerdictReview
}

// ClassifyRequests 申请表左连接账务表（Sheet_Codigo），写入 Asignar_Park 与 Concatenated_Info
// 两张表都需已有 Sheet_Codigo 列
func ClassifyRequests(requests, ledger *model.Table) (*model.Table, JoinStats) {
	joined, stats := LeftJoin(requests, ledger, model.ColSheetCodigo, model.LedgerAttachColumns)

	joined.Set(model.ColAsignarPark, func(row model.Row) model.Value {
		return model.Text(string(Classify(row)))
	})
	joined.Set(model.ColConcatenatedInfo, func(row model.Row) model.Value {
		return model.Text(RequestAssignmentKey(row))
	})
	return joined, stats
}
