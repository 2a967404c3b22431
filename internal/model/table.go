package model

import "strings"

// Row 一行数据：列名 → 值
// 访问不存在的列返回空值，不会报错
type Row map[string]Value

// Get 取值，列不存在时返回 Null
func (r Row) Get(col string) Value {
	if r == nil {
		return Null
	}
	return r[col]
}

// Float 数值视图
func (r Row) Float(col string) (float64, bool) {
	return r.Get(col).Float()
}

// Text 去除首尾空白后的字符串，空值为 ""
func (r Row) Text(col string) string {
	return strings.TrimSpace(r.Get(col).String())
}

// Clone 浅拷贝（Value 为值类型，足够隔离）
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table 有序列 + 行集合
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable 创建空表
func NewTable(columns ...string) *Table {
	t := &Table{}
	for _, c := range columns {
		t.AddColumn(c)
	}
	return t
}

// Len 行数
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn 是否包含列
func (t *Table) HasColumn(col string) bool {
	return t.columnIndex(col) >= 0
}

// AddColumn 追加列名（已存在则忽略）
func (t *Table) AddColumn(col string) {
	if t.HasColumn(col) {
		return
	}
	t.Columns = append(t.Columns, col)
}

// Set 为所有行写入 fn 计算出的列值
func (t *Table) Set(col string, fn func(Row) Value) {
	t.AddColumn(col)
	for _, row := range t.Rows {
		row[col] = fn(row)
	}
}

// Filter 返回满足条件的行组成的新表（行不复制）
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Select 只保留 columns 中存在于表内的列，顺序按 columns
func (t *Table) Select(columns ...string) *Table {
	out := &Table{}
	for _, c := range columns {
		if t.HasColumn(c) {
			out.AddColumn(c)
		}
	}
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		r := make(Row, len(out.Columns))
		for _, c := range out.Columns {
			if v, ok := row[c]; ok {
				r[c] = v
			}
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

// Head 前 n 行
func (t *Table) Head(n int) []Row {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// Concat 纵向拼接：列按首次出现顺序合并，行顺序保持不变
func Concat(tables ...*Table) *Table {
	out := &Table{}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.Columns {
			out.AddColumn(c)
		}
		out.Rows = append(out.Rows, t.Rows...)
	}
	return out
}

func (t *Table) columnIndex(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}
