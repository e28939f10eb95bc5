package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agrotoken_receipt_validations_total",
		Help: "Receipt validations by outcome (valid, warning, invalid).",
	}, []string{"outcome"})

	conversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agrotoken_conversions_total",
		Help: "Currency conversions by source currency and result.",
	}, []string{"currency", "result"})

	rateRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agrotoken_rate_refreshes_total",
		Help: "Exchange rate refresh attempts outside the cache window.",
	}, []string{"result"})

	ledgerOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agrotoken_ledger_operations_total",
		Help: "Simulated ledger operations by kind and result.",
	}, []string{"operation", "result"})
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
