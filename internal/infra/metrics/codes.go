package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(codesIssuedTotal, redemptionsTotal) }

var codesIssuedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "access_codes_issued_total",
		Help: "Access codes created by the admin issuance flow.",
	},
)

var redemptionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redemptions_total",
		Help: "Redemption attempts by outcome (ok/not_found/already_used/invalid_input/error).",
	},
	[]string{"outcome"},
)

func IncCodeIssued() { codesIssuedTotal.Inc() }

func IncRedemption(outcome string) {
	redemptionsTotal.WithLabelValues(norm(outcome)).Inc()
}
