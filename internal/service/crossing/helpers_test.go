package crossing

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"parkcross/internal/model"
)

// row 用 map[string]any 快速构造测试行：string → 文本，数值 → 数值，nil → 空
func row(fields map[string]any) model.Row {
	r := make(model.Row, len(fields))
	for k, v := range fields {
		r[k] = toValue(v)
	}
	return r
}

func toValue(v any) model.Value {
	switch x := v.(type) {
	case nil:
		return model.Null
	case string:
		return model.Text(x)
	case int:
		return model.Number(float64(x))
	case float64:
		return model.Number(x)
	case model.Value:
		return x
	default:
		panic("unsupported test value")
	}
}

// sameValue 类型与字符串形式均相同
func sameValue(a, b model.Value) bool {
	return a.Kind() == b.Kind() && a.String() == b.String()
}

func table(columns []string, rows ...map[string]any) *model.Table {
	t := model.NewTable(columns...)
	for _, r := range rows {
		t.Rows = append(t.Rows, row(r))
	}
	return t
}

type testSheet struct {
	name string
	rows [][]interface{} // 第一行为表头
}

// buildWorkbook 构造内存 xlsx 并返回字节
func buildWorkbook(t *testing.T, sheets ...testSheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				t.Fatalf("SetSheetName failed: %v", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			t.Fatalf("NewSheet failed: %v", err)
		}
		for r, values := range s.rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			vals := values
			if err := f.SetSheetRow(s.name, cell, &vals); err != nil {
				t.Fatalf("SetSheetRow failed: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}
