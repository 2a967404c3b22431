package excel

import (
	"errors"
	"fmt"
)

// ErrMalformedWorkbook 工作簿或工作表无法按表格解析
var ErrMalformedWorkbook = errors.New("malformed workbook")

// MalformedWorkbookError 解析失败详情
type MalformedWorkbookError struct {
	Sheet string // 为空表示整个文件无法打开
	Err   error
}

// Error implements the error interface
func (e *MalformedWorkbookError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("malformed workbook: %v", e.Err)
	}
	return fmt.Sprintf("malformed workbook: sheet %q: %v", e.Sheet, e.Err)
}

// Unwrap 返回底层错误
func (e *MalformedWorkbookError) Unwrap() error {
	return e.Err
}

// Is 支持 errors.Is(err, ErrMalformedWorkbook)
func (e *MalformedWorkbookError) Is(target error) bool {
	return target == ErrMalformedWorkbook
}

func malformed(sheet string, err error) error {
	return &MalformedWorkbookError{Sheet: sheet, Err: err}
}
