package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carenote",
		Name:      "reports_generated_total",
		Help:      "Report generation requests by language and outcome.",
	}, []string{"language", "outcome"})

	ModelCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "carenote",
		Name:      "model_call_duration_seconds",
		Help:      "Latency of language-model calls by prompt.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
	}, []string{"prompt", "outcome"})

	ConditionsDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carenote",
		Name:      "conditions_detected_total",
		Help:      "Conditions with a positive risk score, by condition.",
	}, []string{"condition"})
)

func ObserveModelCall(prompt string, start time.Time, err error) {
	ModelCallDuration.WithLabelValues(prompt, outcome(err)).Observe(time.Since(start).Seconds())
}

func ObserveReport(language string, err error) {
	ReportsGenerated.WithLabelValues(language, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
