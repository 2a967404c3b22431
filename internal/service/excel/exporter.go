package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"parkcross/internal/model"
)

// DefaultSheetName 导出工作表名
const DefaultSheetName = "Sheet1"

// DateFormat 日期单元格导出格式
const DateFormat = "yyyy-mm-dd hh:mm:ss"

// ContentType xlsx MIME 类型
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter Excel导出器
type Exporter struct {
	sheetName string
}

// NewExporter 创建导出器，sheetName 为空时使用 Sheet1
func NewExporter(sheetName string) *Exporter {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	return &Exporter{sheetName: sheetName}
}

// Export 导出表格：首行表头，数值写为数字单元格，日期写为日期单元格，文本保持文本，空值留空
func (e *Exporter) Export(table *model.Table) (*excelize.File, error) {
	f := excelize.NewFile()

	if e.sheetName != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, e.sheetName); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to rename sheet: %w", err)
		}
	}

	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(e.sheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	// 设置表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		_ = f.SetRowStyle(e.sheetName, 1, 1, headerStyle)
	}

	dateFormat := DateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create date style: %w", err)
	}

	// 写入数据
	for i, row := range table.Rows {
		values := make([]interface{}, len(table.Columns))
		var dateCols []int
		for j, col := range table.Columns {
			v := row.Get(col)
			if v.Kind() == model.KindTime {
				dateCols = append(dateCols, j+1)
			}
			values[j] = cellValue(v)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(e.sheetName, cell, &values); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
		for _, col := range dateCols {
			cell, _ := excelize.CoordinatesToCellName(col, i+2)
			if err := f.SetCellStyle(e.sheetName, cell, cell, dateStyle); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("failed to style date cell %s: %w", cell, err)
			}
		}
	}

	return f, nil
}

// ExportBytes 导出为 xlsx 字节流
func (e *Exporter) ExportBytes(table *model.Table) ([]byte, error) {
	f, err := e.Export(table)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(v model.Value) interface{} {
	switch v.Kind() {
	case model.KindNumber:
		f, _ := v.Float()
		return f
	case model.KindTime:
		t, _ := v.Time()
		return t
	case model.KindText:
		return v.String()
	default:
		return nil
	}
}
