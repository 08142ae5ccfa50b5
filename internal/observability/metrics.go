package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

type Metrics struct {
	rulesLoadedTotal     *prometheus.CounterVec
	ruleFilesLoadedTotal *prometheus.CounterVec
	filterQueriesTotal   *prometheus.CounterVec
	filterResults        prometheus.Histogram
	rulesetRules         prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rulesLoadedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "devskim_rules_loaded_total", Help: "Total rules appended to a ruleset"},
			[]string{"tag"},
		),
		ruleFilesLoadedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "devskim_rule_files_loaded_total", Help: "Total rule files read"},
			[]string{"result"},
		),
		filterQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "devskim_filter_queries_total", Help: "Total language filter queries"},
			[]string{"language"},
		),
		filterResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "devskim_filter_results",
				Help:    "Rules returned per language filter query",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		rulesetRules: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "devskim_ruleset_rules", Help: "Rules currently held by the ruleset"},
		),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.rulesLoadedTotal,
		m.ruleFilesLoadedTotal,
		m.filterQueriesTotal,
		m.filterResults,
		m.rulesetRules,
	)

	return m
}

// Handler serves reg, or the default gatherer when reg is nil.
func Handler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// ObserveRules records rules appended under tag and the new ruleset size.
func (m *Metrics) ObserveRules(tag string, added, total int) {
	if m == nil {
		return
	}
	m.rulesLoadedTotal.WithLabelValues(labelOrNone(tag)).Add(float64(added))
	m.rulesetRules.Set(float64(total))
}

func (m *Metrics) ObserveFile(err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.ruleFilesLoadedTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveFilter(language string, results int) {
	if m == nil {
		return
	}
	m.filterQueriesTotal.WithLabelValues(labelOrNone(language)).Inc()
	m.filterResults.Observe(float64(results))
}

func labelOrNone(value string) string {
	if value == "" {
		return "none"
	}
	return value
}
