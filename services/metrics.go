package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "retail",
		Name:      "mutations_total",
		Help:      "Entity mutations by kind, operation and outcome.",
	}, []string{"kind", "operation", "outcome"})

	rejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "retail",
		Name:      "rejections_total",
		Help:      "Rejected mutations by kind and reason.",
	}, []string{"kind", "reason"})

	rowsAffected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "retail",
		Name:      "rows_affected_total",
		Help:      "Rows written or deleted by committed mutations.",
	}, []string{"kind", "operation"})
)
