package crossing

import (
	"strings"

	"parkcross/internal/model"
)

const keySeparator = "_"

// compositeKey 关联主键的唯一构造方式，两侧必须共用
func compositeKey(parts ...string) string {
	trimmed := make([]string, len(parts))
	for i, p := range parts {
		trimmed[i] = strings.TrimSpace(p)
	}
	return strings.Join(trimmed, keySeparator)
}

// SheetCodigo 申请表 ↔ 账务表主键：SheetName_Codigo
func SheetCodigo(sheet, codigo model.Value) string {
	return compositeKey(sheet.String(), codigo.String())
}

// AssignmentKey 申请表 ↔ 车位分配表主键：Codigo_车牌_SheetName
func AssignmentKey(codigo, plate, sheet string) string {
	return compositeKey(codigo, plate, sheet)
}

// AddSheetCodigo 为每行写入 Sheet_Codigo（不去重）
func AddSheetCodigo(table *model.Table, idColumn string) {
	table.Set(model.ColSheetCodigo, func(row model.Row) model.Value {
		return model.Text(SheetCodigo(row.Get(model.ColSheetName), row.Get(idColumn)))
	})
}

// requestPlate 车牌优先级：摩托车 → 汽车 → NoPlaca
func requestPlate(row model.Row) string {
	if p := plateText(row.Get(model.ColPlacaMoto)); p != "" {
		return p
	}
	if p := plateText(row.Get(model.ColPlacaCarro)); p != "" {
		return p
	}
	return model.NoPlate
}

// plateText 空值、空串以及文本 "nan" 均视为无车牌
func plateText(v model.Value) string {
	p := strings.TrimSpace(v.String())
	if p == "" || strings.EqualFold(p, "nan") {
		return ""
	}
	return p
}

// RequestAssignmentKey 申请行的 Concatenated_Info
func RequestAssignmentKey(row model.Row) string {
	return AssignmentKey(row.Get(model.ColCodigo).String(), requestPlate(row), row.Get(model.ColSheetName).String())
}
