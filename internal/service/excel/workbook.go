package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"parkcross/internal/model"
)

// Workbook 已加载的 Excel 工作簿
type Workbook struct {
	file       *excelize.File
	date1904   bool
	dateStyles map[int]bool
}

// OpenWorkbook 从 reader 加载工作簿
func OpenWorkbook(reader io.Reader) (*Workbook, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, malformed("", fmt.Errorf("failed to open excel: %w", err))
	}
	wb := &Workbook{file: file, dateStyles: make(map[int]bool)}
	if props, err := file.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb, nil
}

// Close 释放工作簿
func (w *Workbook) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}

// SheetNames 工作表列表（按工作簿内顺序）
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// ReadSheet 读取单个工作表：首行为表头，每行追加 SheetName 列
// 单元格保留源类型：文本仍是文本，日期格式的数值转为日期
func (w *Workbook) ReadSheet(sheet string) (*model.Table, error) {
	// 原始值读取，避免数字格式（千分位、货币符号）干扰数值识别
	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, malformed(sheet, err)
	}

	table := model.NewTable()
	if len(rows) == 0 {
		table.AddColumn(model.ColSheetName)
		return table, nil
	}

	header := headerNames(rows[0])
	for _, h := range header {
		table.AddColumn(h)
	}
	table.AddColumn(model.ColSheetName)

	for r, cells := range rows[1:] {
		if isBlankRow(cells) {
			continue
		}
		row := make(model.Row, len(header)+1)
		for i, col := range header {
			if i >= len(cells) {
				row[col] = model.Null
				continue
			}
			// rows[0] 为第 1 行表头
			v, err := w.readCell(sheet, i+1, r+2, cells[i])
			if err != nil {
				return nil, malformed(sheet, err)
			}
			row[col] = v
		}
		row[model.ColSheetName] = model.Text(sheet)
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// Aggregate 读取全部工作表并纵向拼接
// 工作表顺序、表内行顺序均保持不变；空表贡献 0 行
func (w *Workbook) Aggregate() (*model.Table, []model.SheetInfo, error) {
	sheets := w.SheetNames()
	if len(sheets) == 0 {
		return nil, nil, malformed("", errors.New("workbook has no sheets"))
	}

	tables := make([]*model.Table, 0, len(sheets))
	infos := make([]model.SheetInfo, 0, len(sheets))
	for _, name := range sheets {
		t, err := w.ReadSheet(name)
		if err != nil {
			return nil, nil, err
		}
		tables = append(tables, t)
		infos = append(infos, model.SheetInfo{
			Name:     name,
			RowCount: t.Len(),
			Columns:  t.Columns,
		})
	}

	return model.Concat(tables...), infos, nil
}

// LoadTable 加载工作簿并汇总为一张表
func LoadTable(reader io.Reader) (*model.Table, []model.SheetInfo, error) {
	wb, err := OpenWorkbook(reader)
	if err != nil {
		return nil, nil, err
	}
	defer wb.Close()

	return wb.Aggregate()
}

// headerNames 规范表头：空列名 → "Unnamed: <i>"，重复列名追加 .1/.2
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))
	dups := make(map[string]int)
	for i, h := range raw {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if seen[name] {
			base := name
			for seen[name] {
				dups[base]++
				name = fmt.Sprintf("%s.%d", base, dups[base])
			}
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
