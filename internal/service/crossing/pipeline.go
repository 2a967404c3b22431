package crossing

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"parkcross/internal/model"
	"parkcross/internal/service/excel"
)

// 输入角色，用于错误信息与日志
const (
	RoleRequests    = "requests"
	RoleLedger      = "ledger"
	RoleAssignments = "assignments"
)

// Inputs 三个待交叉的工作簿
type Inputs struct {
	Requests    io.Reader // PQR.xlsx
	Ledger      io.Reader // CARTERA.xlsx
	Assignments io.Reader // PARQ_ASIGNADOS.xlsx
}

// Options 运行选项
type Options struct {
	AcceptedStatuses []string // 为空时使用 Autorizado / Solicitud
	Logger           *zerolog.Logger
	Progress         func(ProgressEvent)
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

// Report 运行报告
type Report struct {
	RunID             string                       `json:"runId"`
	Sheets            map[string][]model.SheetInfo `json:"sheets"`
	RequestRows       int                          `json:"requestRows"`
	FilteredRows      int                          `json:"filteredRows"`
	LedgerRows        int                          `json:"ledgerRows"`
	AssignmentRows    int                          `json:"assignmentRows"`
	OutputRows        int                          `json:"outputRows"`
	RecoveredBalances int                          `json:"recoveredBalances"` // cal_cartera 公式失败按 0 处理的行数
	LedgerJoin        JoinStats                    `json:"ledgerJoin"`
	AssignmentJoin    JoinStats                    `json:"assignmentJoin"`
	Verdicts          map[model.Verdict]int        `json:"verdicts"`
	Duration          time.Duration                `json:"duration"`
}

// Result 运行结果
type Result struct {
	Table  *model.Table
	Report *Report
}

// Run 执行完整交叉流程
// 仅工作簿结构性解析失败会返回错误，数据质量问题一律降级为默认值
func Run(in Inputs, opts Options) (*Result, error) {
	start := time.Now()
	report := &Report{
		RunID:    uuid.New().String(),
		Sheets:   make(map[string][]model.SheetInfo, 3),
		Verdicts: make(map[model.Verdict]int, len(model.Verdicts)),
	}

	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	log := logger.With().Str("run_id", report.RunID).Logger()

	statuses := opts.AcceptedStatuses
	if len(statuses) == 0 {
		statuses = model.DefaultAcceptedStatuses
	}

	reportProgress(opts.Progress, 0, "读取工作簿")
	tables, err := loadAll(report, in)
	if err != nil {
		return nil, err
	}
	requests, ledger, assignments := tables[0], tables[1], tables[2]
	report.RequestRows = requests.Len()
	report.LedgerRows = ledger.Len()
	report.AssignmentRows = assignments.Len()

	// 申请状态过滤
	if !requests.HasColumn(model.ColEstado) {
		log.Warn().Str("column", model.ColEstado).Msg("申请表缺少状态列，没有申请参与判定")
	}
	filtered := FilterByStatus(requests, statuses)
	report.FilteredRows = filtered.Len()

	// 账务表：选列 + 净欠款
	reportProgress(opts.Progress, 40, "计算 cal_cartera")
	enriched, recovered := EnrichLedger(ledger)
	report.RecoveredBalances = recovered
	if recovered > 0 {
		log.Debug().Int("rows", recovered).Msg("cal_cartera 计算失败的行已按 0 处理")
	}

	// 主键 + 第一次关联 + 判定
	reportProgress(opts.Progress, 60, "关联 CARTERA 并判定")
	AddSheetCodigo(filtered, model.ColCodigo)
	AddSheetCodigo(enriched, model.ColLedgerCodigo)
	classified, ledgerStats := ClassifyRequests(filtered, enriched)
	report.LedgerJoin = ledgerStats

	// 第二次关联：车位编号与类型
	reportProgress(opts.Progress, 80, "关联 PARQ_ASIGNADOS")
	if !assignments.HasColumn(model.ColParqueadero) {
		log.Warn().Str("column", model.ColParqueadero).Msg("车位分配表缺少车位列，Num_parq/Tipo_parq 置空")
	}
	prepared := PrepareAssignments(assignments)
	final, assignStats := LinkAssignments(classified, prepared)
	report.AssignmentJoin = assignStats

	for _, row := range final.Rows {
		report.Verdicts[model.Verdict(row.Get(model.ColAsignarPark).String())]++
	}
	report.OutputRows = final.Len()
	report.Duration = time.Since(start)

	reportProgress(opts.Progress, 100, "完成")
	log.Info().
		Int("requests", report.RequestRows).
		Int("filtered", report.FilteredRows).
		Int("output", report.OutputRows).
		Int("unmatched_ledger", ledgerStats.Unmatched).
		Int("unmatched_assignment", assignStats.Unmatched).
		Dur("duration", report.Duration).
		Msg("交叉完成")

	return &Result{Table: final, Report: report}, nil
}

// loadAll 并发解析三个工作簿，结果按 requests / ledger / assignments 顺序返回
// 多个输入同时失败时按同一顺序返回第一个错误
func loadAll(report *Report, in Inputs) ([3]*model.Table, error) {
	inputs := [3]struct {
		role string
		r    io.Reader
	}{
		{RoleRequests, in.Requests},
		{RoleLedger, in.Ledger},
		{RoleAssignments, in.Assignments},
	}

	var (
		tables [3]*model.Table
		sheets [3][]model.SheetInfo
		errs   [3]error
		g      errgroup.Group
	)
	for i, input := range inputs {
		g.Go(func() error {
			if input.r == nil {
				errs[i] = fmt.Errorf("%s: missing input", input.role)
				return errs[i]
			}
			table, info, err := excel.LoadTable(input.r)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", input.role, err)
				return errs[i]
			}
			tables[i], sheets[i] = table, info
			return nil
		})
	}
	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return tables, err
			}
		}
	}

	for i, input := range inputs {
		report.Sheets[input.role] = sheets[i]
	}
	return tables, nil
}

func reportProgress(progress func(ProgressEvent), percent int, stage string) {
	if progress == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	progress(ProgressEvent{
		Percent: percent,
		Stage:   stage,
	})
}
