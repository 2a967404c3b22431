package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// ValueKind 单元格值类型
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindText
	KindNumber
	KindTime
)

// TimeLayout 日期单元格的字符串形式
const TimeLayout = "2006-01-02 15:04:05"

// Value 单元格值：空 / 文本 / 数值 / 日期
// 类型取自源单元格；数值保留原始单元格文本，拼接主键时按原文输出，避免 100 变成 100.0
type Value struct {
	kind ValueKind
	raw  string
	num  float64
	at   time.Time
}

// Null 空值
var Null = Value{}

// Text 文本值
func Text(s string) Value {
	return Value{kind: KindText, raw: s}
}

// Number 数值（计算结果）
func Number(f float64) Value {
	return Value{kind: KindNumber, raw: FormatNumber(f), num: f}
}

// Time 日期值
func Time(t time.Time) Value {
	return Value{kind: KindTime, raw: t.Format(TimeLayout), at: t}
}

// TextCell 文本单元格：空白为空值，其余原样保留（"0012" 不会变成 12）
func TextCell(raw string) Value {
	if strings.TrimSpace(raw) == "" {
		return Null
	}
	return Text(raw)
}

// NumberCell 数值单元格的原始文本；无法解析时按文本保留
func NumberCell(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Null
	}
	f, ok := parseFinite(trimmed)
	if !ok {
		return Text(raw)
	}
	return Value{kind: KindNumber, raw: trimmed, num: f}
}

// Kind 返回值类型
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull 是否为空
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Float 数值视图，仅数值单元格返回 ok
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Numeric 宽松数值转换：数值直接返回，文本按内容解析
func (v Value) Numeric() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		return parseFinite(strings.TrimSpace(v.raw))
	default:
		return 0, false
	}
}

// Time 日期视图
func (v Value) Time() (time.Time, bool) {
	return v.at, v.kind == KindTime
}

// String 字符串形式，空值为 ""
func (v Value) String() string {
	return v.raw
}

// FormatNumber 数值的最短十进制表示（500、350、12.5）
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarshalJSON 预览输出：空值 → null，数值 → number，文本与日期 → string
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return []byte(FormatNumber(v.num)), nil
	case KindText, KindTime:
		return json.Marshal(v.raw)
	default:
		return []byte("null"), nil
	}
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
