package ui

import (
	"errors"
	"net/http"
	"time"

	"github.com/dhamidi/tinyjs/js/parser"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Parse outcomes used as the "outcome" label of tinyjs_parse_total.
const (
	OutcomeOK         = "ok"
	OutcomeLexError   = "lex_error"
	OutcomeParseError = "parse_error"
)

// Metrics records the parses served over HTTP.
//
//   - tinyjs_parse_total{outcome}: parse requests by outcome
//   - tinyjs_parse_duration_seconds: time spent in the parser
type Metrics struct {
	registry      *prometheus.Registry
	parseTotal    *prometheus.CounterVec
	parseDuration prometheus.Histogram
}

// NewMetrics registers the parse metrics with registry, or with a fresh
// registry if it is nil.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: registry,
		parseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tinyjs",
				Name:      "parse_total",
				Help:      "Total number of parse requests by outcome",
			},
			[]string{"outcome"},
		),
		parseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "tinyjs",
				Name:      "parse_duration_seconds",
				Help:      "Time spent parsing a request body in seconds",
				Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
			},
		),
	}
	registry.MustRegister(m.parseTotal, m.parseDuration)
	for _, outcome := range []string{OutcomeOK, OutcomeLexError, OutcomeParseError} {
		m.parseTotal.WithLabelValues(outcome)
	}
	return m
}

// ObserveParse records one parse that took d and returned err.
func (m *Metrics) ObserveParse(d time.Duration, err error) {
	m.parseDuration.Observe(d.Seconds())
	m.parseTotal.WithLabelValues(Outcome(err)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// Outcome classifies a parse result for the outcome label.
func Outcome(err error) string {
	var lexErr *parser.LexError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &lexErr):
		return OutcomeLexError
	default:
		return OutcomeParseError
	}
}
