package boundary

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// boundaryCallsTotal 边界调用次数（按操作和结果分类）
	boundaryCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signer",
			Subsystem: "boundary",
			Name:      "calls_total",
			Help:      "Total number of signing boundary calls by operation and result",
		},
		[]string{"op", "result"}, // success, failure
	)

	// boundaryFailuresTotal 边界失败次数（按分类）
	boundaryFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signer",
			Subsystem: "boundary",
			Name:      "failures_total",
			Help:      "Total number of failed signing boundary calls by kind",
		},
		[]string{"kind"},
	)

	// handlesLive 存活句柄数
	handlesLive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "signer",
		Name:      "handles_live",
		Help:      "Number of signer handles constructed and not yet released",
	})
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

func init() {
	prometheus.MustRegister(
		boundaryCallsTotal,
		boundaryFailuresTotal,
		handlesLive,
	)
}

func recordSuccess(op Op) {
	boundaryCallsTotal.WithLabelValues(string(op), resultSuccess).Inc()
}

func recordFailure(op Op, kind Kind) {
	boundaryCallsTotal.WithLabelValues(string(op), resultFailure).Inc()
	boundaryFailuresTotal.WithLabelValues(kind.String()).Inc()
}
