package model

// SheetInfo 工作表信息
type SheetInfo struct {
	Name     string   `json:"name"`
	RowCount int      `json:"rowCount"` // 数据行数（不含表头）
	Columns  []string `json:"columns"`
}
