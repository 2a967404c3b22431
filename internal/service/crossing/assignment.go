package crossing

import (
	"math"
	"strconv"
	"strings"

	"parkcross/internal/model"
)

const parkingSeparator = "-"

// PrepareAssignments 车位分配表：Codigo 取整（缺失/非数值 → 0），构造 Concatenated_Info，拆分 Parqueadero
func PrepareAssignments(assignments *model.Table) *model.Table {
	out := &model.Table{
		Columns: append([]string(nil), assignments.Columns...),
		Rows:    make([]model.Row, 0, assignments.Len()),
	}
	hasParking := assignments.HasColumn(model.ColParqueadero)

	for _, src := range assignments.Rows {
		row := src.Clone()
		code := AssignmentCode(row.Get(model.ColCodigo))
		row[model.ColCodigo] = model.Number(float64(code))
		row[model.ColConcatenatedInfo] = model.Text(AssignmentKey(
			strconv.FormatInt(code, 10),
			row.Get(model.ColPlacaVehiculo1).String(),
			row.Get(model.ColSheetName).String(),
		))

		if hasParking {
			row[model.ColNumParq], row[model.ColTipoParq] = SplitParking(row.Get(model.ColParqueadero))
		} else {
			row[model.ColNumParq], row[model.ColTipoParq] = model.Text(""), model.Text("")
		}
		out.Rows = append(out.Rows, row)
	}

	out.AddColumn(model.ColConcatenatedInfo)
	out.AddColumn(model.ColNumParq)
	out.AddColumn(model.ColTipoParq)
	return out
}

// AssignmentCode Codigo 转整数，数字文本同样接受，小数向零截断；空值或非数值返回 0
func AssignmentCode(v model.Value) int64 {
	f, ok := v.Numeric()
	if !ok || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}

// SplitParking 按第一个 "-" 拆分 "<编号>-<类型>"
// 无分隔符 → 编号为整个值、类型为空；值为空 → 两者皆空
func SplitParking(v model.Value) (num, kind model.Value) {
	if v.IsNull() {
		return model.Null, model.Null
	}
	left, right, found := strings.Cut(v.String(), parkingSeparator)
	if !found {
		return model.Text(left), model.Null
	}
	return model.Text(left), model.Text(right)
}

// LinkAssignments 分类后的申请表左连接车位分配表（Concatenated_Info），附加 Num_parq / Tipo_parq
func LinkAssignments(classified, assignments *model.Table) (*model.Table, JoinStats) {
	return LeftJoin(classified, assignments, model.ColConcatenatedInfo, model.AssignmentAttachColumns)
}
