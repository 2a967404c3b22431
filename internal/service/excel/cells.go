package excel

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/xuri/nfp"

	"parkcross/internal/model"
)

// builtInDateFormats 内置日期/时间数字格式编号（含中日韩区域格式）
var builtInDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isoDateLayouts 类型为 "d" 的单元格按 ISO 8601 存储
var isoDateLayouts = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05.999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// readCell 按源单元格类型转换原始值
//
//	共享字符串 / 内联字符串 / 公式文本 / 错误 → 文本（"0012" 原样保留）
//	数值且带日期格式、或日期类型             → 日期
//	其余数值                                 → 数值
func (w *Workbook) readCell(sheet string, col, row int, raw string) (model.Value, error) {
	if strings.TrimSpace(raw) == "" {
		return model.Null, nil
	}

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return model.Null, err
	}
	typ, err := w.file.GetCellType(sheet, cell)
	if err != nil {
		return model.Null, err
	}

	switch typ {
	case excelize.CellTypeDate:
		if t, ok := w.parseDate(raw); ok {
			return model.Time(t), nil
		}
		return model.TextCell(raw), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		isDate, err := w.hasDateFormat(sheet, cell)
		if err != nil {
			return model.Null, err
		}
		if isDate {
			if t, ok := w.serialToTime(raw); ok {
				return model.Time(t), nil
			}
		}
		return model.NumberCell(raw), nil
	case excelize.CellTypeBool:
		if strings.TrimSpace(raw) == "1" {
			return model.Text("TRUE"), nil
		}
		return model.Text("FALSE"), nil
	default:
		return model.TextCell(raw), nil
	}
}

// hasDateFormat 单元格数字格式是否为日期/时间，按样式编号缓存
func (w *Workbook) hasDateFormat(sheet, cell string) (bool, error) {
	styleID, err := w.file.GetCellStyle(sheet, cell)
	if err != nil {
		return false, err
	}
	if styleID == 0 {
		return false, nil
	}
	if isDate, ok := w.dateStyles[styleID]; ok {
		return isDate, nil
	}

	isDate := false
	if style, err := w.file.GetStyle(styleID); err == nil {
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		} else {
			isDate = builtInDateFormats[style.NumFmt]
		}
	}
	w.dateStyles[styleID] = isDate
	return isDate, nil
}

// isDateFormatCode 自定义格式中含日期/时间占位符（引号内文字不算）
func isDateFormatCode(code string) bool {
	parser := nfp.NumberFormatParser()
	for _, section := range parser.Parse(code) {
		for _, token := range section.Items {
			if token.TType == nfp.TokenTypeDateTimes || token.TType == nfp.TokenTypeElapsedDateTimes {
				return true
			}
		}
	}
	return false
}

func (w *Workbook) serialToTime(raw string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, w.date1904)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (w *Workbook) parseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return w.serialToTime(value)
}
