package competition

import "github.com/prometheus/client_golang/prometheus"

var (
	scoreMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "podium_score_mutations_total",
			Help: "Score ledger writes by operation",
		},
		[]string{"op"},
	)
	pointsAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "podium_points_awarded_total",
			Help: "Points plus bonus granted through new scores",
		},
	)
)

// Collectors returns the domain metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{scoreMutations, pointsAwarded}
}
