package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry 是 edfsizer 专用的指标注册表, 由 /metrics 端点暴露
var Registry = prometheus.NewRegistry()

// 定义指标变量
var (
	// EvaluationsTotal 记录评估次数
	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edfsizer_evaluations_total",
			Help: "Total number of catalog evaluations.",
		},
		[]string{"status"}, // status: success/failed
	)

	// EvaluationDuration 记录一次完整评估 (加载 + 枚举 + 帕累托过滤) 的耗时
	EvaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "edfsizer_evaluation_duration_seconds",
			Help:    "Duration of a full catalog evaluation.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Candidates 记录最近一次评估通过约束的组合数
	Candidates = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "edfsizer_candidates",
			Help: "Number of accepted powertrain candidates in the last evaluation.",
		},
	)

	// FrontierSize 记录最近一次评估的帕累托前沿大小
	FrontierSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "edfsizer_frontier_size",
			Help: "Number of Pareto-optimal candidates in the last evaluation.",
		},
	)
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		EvaluationsTotal,
		EvaluationDuration,
		Candidates,
		FrontierSize,
	)
}

// ObserveEvaluation records the outcome of one evaluation that started at start.
func ObserveEvaluation(start time.Time, candidates, frontier int, err error) {
	EvaluationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		EvaluationsTotal.WithLabelValues(StatusFailed).Inc()
		return
	}
	EvaluationsTotal.WithLabelValues(StatusSuccess).Inc()
	Candidates.Set(float64(candidates))
	FrontierSize.Set(float64(frontier))
}
