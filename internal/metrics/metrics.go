// Package metrics 交叉运行的 Prometheus 指标
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parkcross/internal/model"
	"parkcross/internal/service/crossing"
)

const namespace = "parkcross"

// 运行结果
const (
	OutcomeSuccess   = "success"
	OutcomeMalformed = "malformed_workbook"
	OutcomeError     = "error"
)

// Metrics 指标集合，每个实例使用独立 registry
type Metrics struct {
	registry  *prometheus.Registry
	runs      *prometheus.CounterVec
	verdicts  *prometheus.CounterVec
	unmatched *prometheus.CounterVec
	recovered prometheus.Counter
	duration  prometheus.Histogram
}

// New 创建并注册指标
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Crossing runs by outcome.",
		}, []string{"outcome"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verdicts_total",
			Help:      "Output rows by Asignar_Park verdict.",
		}, []string{"verdict"}),
		unmatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unmatched_rows_total",
			Help:      "Request rows without a match in the joined table.",
		}, []string{"join"}),
		recovered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recovered_balances_total",
			Help:      "Ledger rows whose cal_cartera formula failed and was recorded as 0.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Crossing run duration.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}

	m.registry.MustRegister(
		m.runs, m.verdicts, m.unmatched, m.recovered, m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRun 记录一次成功运行
func (m *Metrics) ObserveRun(report *crossing.Report) {
	if m == nil || report == nil {
		return
	}
	m.runs.WithLabelValues(OutcomeSuccess).Inc()
	for _, v := range model.Verdicts {
		m.verdicts.WithLabelValues(string(v)).Add(float64(report.Verdicts[v]))
	}
	m.unmatched.WithLabelValues(crossing.RoleLedger).Add(float64(report.LedgerJoin.Unmatched))
	m.unmatched.WithLabelValues(crossing.RoleAssignments).Add(float64(report.AssignmentJoin.Unmatched))
	m.recovered.Add(float64(report.RecoveredBalances))
	m.duration.Observe(report.Duration.Seconds())
}

// ObserveFailure 记录一次失败运行
func (m *Metrics) ObserveFailure(outcome string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
}

// Handler /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
