package conversation

import "github.com/prometheus/client_golang/prometheus"

var (
	messagesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lingod",
			Subsystem: "conversation",
			Name:      "messages_total",
			Help:      "Messages appended to the log",
		},
	)

	flowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lingod",
			Subsystem: "conversation",
			Name:      "flows_total",
			Help:      "Completed message flows by outcome",
		},
		[]string{"flow", "outcome"},
	)

	detectingGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lingod",
			Subsystem: "conversation",
			Name:      "detecting",
			Help:      "Messages still waiting for language detection",
		},
	)
)

func init() {
	prometheus.MustRegister(messagesTotal, flowsTotal, detectingGauge)
}

func observeFlow(flow string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	flowsTotal.WithLabelValues(flow, outcome).Inc()
}
