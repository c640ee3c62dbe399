package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	auditPagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cvpress",
			Subsystem: "layout",
			Name:      "audited_pages_total",
			Help:      "溢出审计实测过的页面总数。",
		},
	)

	auditOverflowTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cvpress",
			Subsystem: "layout",
			Name:      "overflow_pages_total",
			Help:      "实测内容高度超出页面预算的页面总数。",
		},
	)

	auditHeightRatio = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cvpress",
			Subsystem: "layout",
			Name:      "content_height_ratio",
			Help:      "实测内容高度与页面预算之比（>1 即溢出）。",
			Buckets:   []float64{0.25, 0.5, 0.75, 0.9, 1.0, 1.1, 1.25, 1.5, 2},
		},
	)
)

// ObservePageAudit 记录一次页面实测结果。
func ObservePageAudit(measuredPx, availablePx int) {
	auditPagesTotal.Inc()
	if availablePx > 0 {
		auditHeightRatio.Observe(float64(measuredPx) / float64(availablePx))
	}
	if measuredPx > availablePx {
		auditOverflowTotal.Inc()
	}
}
