package metrics

import "github.com/prometheus/client_golang/prometheus"

// CalendarMetrics exposes counters/histograms for month view flows.
type CalendarMetrics struct {
	monthViews    *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	sourceLatency *prometheus.HistogramVec
}

func NewCalendarMetrics(reg prometheus.Registerer) *CalendarMetrics {
	m := &CalendarMetrics{
		monthViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "calendar",
			Name:      "month_views_total",
			Help:      "Total month views built",
		}, []string{"status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "calendar",
			Name:      "cache_lookups_total",
			Help:      "Month cache lookups by result",
		}, []string{"result"}),
		sourceLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "calendar",
			Name:      "source_latency_seconds",
			Help:      "Latency of loading a month of bookings from its source",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.monthViews, m.cacheLookups, m.sourceLatency)
	return m
}

// ObserveMonthView counts a month view by outcome ("ok", "error").
func (m *CalendarMetrics) ObserveMonthView(status string) {
	if m == nil {
		return
	}
	m.monthViews.WithLabelValues(status).Inc()
}

// ObserveCache counts a cache lookup ("hit", "miss", "error").
func (m *CalendarMetrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *CalendarMetrics) ObserveSourceLatency(source string, seconds float64) {
	if m == nil {
		return
	}
	m.sourceLatency.WithLabelValues(source).Observe(seconds)
}
