package crossing

import (
	"strings"

	"github.com/shopspring/decimal"

	"parkcross/internal/model"
)

// EnrichLedger 账务表：按白名单选列（缺失列直接省略，始终保留 SheetName），并计算 cal_cartera
// 返回的 recovered 为公式计算失败、按 0 处理的行数
func EnrichLedger(ledger *model.Table) (enriched *model.Table, recovered int) {
	columns := append(append([]string{}, model.LedgerColumns...), model.ColSheetName)
	enriched = ledger.Select(columns...)

	enriched.Set(model.ColCalCartera, func(row model.Row) model.Value {
		net, ok := NetBalance(row)
		if !ok {
			recovered++
		}
		return model.Number(net)
	})
	return enriched, recovered
}

// NetBalance 净欠款，按十进制精确计算
//
//	saldo > 0  → saldo - (vrcuota + cuotaparqu + moto)，缺失/空的扣减项按 0
//	saldo <= 0 → 0
//
// saldo 缺失或不是数值单元格、扣减项存在但不是数值单元格时公式失败，结果记为 0，ok=false
// 文本单元格即使内容形如 "200" 也不参与运算
func NetBalance(row model.Row) (net float64, ok bool) {
	saldo, ok := amount(row.Get(model.ColSaldo))
	if !ok {
		return 0, false
	}
	if !saldo.IsPositive() {
		return 0, true
	}

	deductions := decimal.Zero
	for _, col := range []string{model.ColVrCuota, model.ColCuotaParqu, model.ColMoto} {
		v := row.Get(col)
		if v.IsNull() {
			continue
		}
		d, ok := amount(v)
		if !ok {
			return 0, false
		}
		deductions = deductions.Add(d)
	}
	return saldo.Sub(deductions).InexactFloat64(), true
}

// amount 数值单元格金额：优先按原始文本解析，保留 100.3 这类值的精度
func amount(v model.Value) (decimal.Decimal, bool) {
	f, ok := v.Float()
	if !ok {
		return decimal.Zero, false
	}
	if d, err := decimal.NewFromString(strings.TrimSpace(v.String())); err == nil {
		return d, true
	}
	return decimal.NewFromFloat(f), true
}
