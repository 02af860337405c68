package gridserve

import (
	"github.com/prometheus/client_golang/prometheus"
)

var CommandCount = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "treegrid",
	Subsystem: "gridserve",
	Name:      "commands",
}, []string{"status"})

var SessionEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "treegrid",
	Subsystem: "gridserve",
	Name:      "session_events",
}, []string{"event"})

var AttachedSessions = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "treegrid",
	Subsystem: "gridserve",
	Name:      "attached_sessions",
})

var CommandDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Namespace: "treegrid",
	Subsystem: "gridserve",
	Name:      "command_duration_seconds",
	Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
})

// Collectors returns every metric of this package, for registering.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{CommandCount, SessionEvents, AttachedSessions, CommandDuration}
}
