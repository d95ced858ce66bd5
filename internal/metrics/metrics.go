package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "post_generations_total",
			Help: "Total board post generation attempts by outcome",
		},
		[]string{"status"},
	)

	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_extractions_total",
			Help: "Total menu extraction runs by executed path",
		},
		[]string{"path"},
	)

	AlertsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_alerts_recorded_total",
			Help: "Total failure escalation records written",
		},
		[]string{"type"},
	)
)
