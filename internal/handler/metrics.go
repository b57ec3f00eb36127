package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubsite_record_writes_total",
		Help: "Record mutations accepted per collection and operation.",
	}, []string{"collection", "op"})

	certificateChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubsite_certificate_checks_total",
		Help: "Public certificate verifications by verdict.",
	}, []string{"verdict"})
)
