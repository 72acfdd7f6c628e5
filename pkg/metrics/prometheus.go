// Package metrics provides Prometheus metrics for the quizboard pipeline.
//
// The pipeline is a batch tool, so nothing is scraped: counters accumulate on
// a custom registry during a run and Summary gathers them for the end-of-run
// log line.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Cleaner metrics
	linesRead          prometheus.Counter
	linesDropped       *prometheus.CounterVec
	linesKept          prometheus.Counter
	blankLinesInserted prometheus.Counter
	anomalies          prometheus.Counter

	// Aggregator metrics
	resultsParsed   prometheus.Counter
	linesSkipped    prometheus.Counter
	resultsRejected prometheus.Counter
	participants    prometheus.Gauge

	// Stage timings
	stageDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry so default Go runtime metrics stay out of the summary.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "quizboard",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.linesRead = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lines_read_total",
		Help:      "Total number of raw input lines read",
	})

	m.linesDropped = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "lines_dropped_total",
			Help:      "Total number of lines dropped during filtering, by rule",
		},
		[]string{"rule"},
	)

	m.linesKept = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lines_kept_total",
		Help:      "Total number of lines retained after filtering",
	})

	m.blankLinesInserted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "blank_lines_inserted_total",
		Help:      "Total number of blank lines inserted between quiz blocks",
	})

	m.anomalies = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_anomalies_total",
		Help:      "Total number of rank-marked lines failing the result pattern",
	})

	m.resultsParsed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "results_parsed_total",
		Help:      "Total number of quiz results extracted from the cleaned file",
	})

	m.linesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lines_skipped_total",
		Help:      "Total number of cleaned-file lines not matching the result grammar",
	})

	m.resultsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "results_rejected_total",
		Help:      "Total number of matched lines rejected by the result invariant",
	})

	m.participants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "participants_ranked",
		Help:      "Number of distinct participants in the produced leaderboard",
	})

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stage_duration_milliseconds",
			Help:      "Stage wall-clock duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"stage"},
	)
}

// Package-level helpers operating on the global manager.

// RecordLineRead increments the raw-line counter.
func RecordLineRead() {
	if globalManager.enabled {
		globalManager.linesRead.Inc()
	}
}

// RecordLineDropped increments the dropped-line counter for a filter rule.
func RecordLineDropped(rule string) {
	if globalManager.enabled {
		globalManager.linesDropped.WithLabelValues(rule).Inc()
	}
}

// RecordLineKept increments the kept-line counter.
func RecordLineKept() {
	if globalManager.enabled {
		globalManager.linesKept.Inc()
	}
}

// RecordBlankLinesInserted adds to the inserted-blank counter.
func RecordBlankLinesInserted(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.blankLinesInserted.Add(float64(n))
	}
}

// RecordAnomaly increments the validation-anomaly counter.
func RecordAnomaly() {
	if globalManager.enabled {
		globalManager.anomalies.Inc()
	}
}

// RecordResultParsed increments the parsed-result counter.
func RecordResultParsed() {
	if globalManager.enabled {
		globalManager.resultsParsed.Inc()
	}
}

// RecordLineSkipped increments the non-matching-line counter.
func RecordLineSkipped() {
	if globalManager.enabled {
		globalManager.linesSkipped.Inc()
	}
}

// RecordResultRejected increments the invariant-rejection counter.
func RecordResultRejected() {
	if globalManager.enabled {
		globalManager.resultsRejected.Inc()
	}
}

// UpdateParticipants sets the ranked-participant gauge.
func UpdateParticipants(n int) {
	if globalManager.enabled {
		globalManager.participants.Set(float64(n))
	}
}

// RecordStageDuration observes a stage's wall-clock duration in milliseconds.
func RecordStageDuration(stage string, ms float64) {
	if globalManager.enabled {
		globalManager.stageDuration.WithLabelValues(stage).Observe(ms)
	}
}

// Summary gathers the custom registry into a flat name -> value map of
// counters and gauges, suitable for one structured log line at end of run.
func Summary() (map[string]float64, error) {
	families, err := customRegistry.Gather()
	if err != nil {
		return nil, ErrGatherFailed
	}

	out := make(map[string]float64, len(families))
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			name := fam.GetName()
			for _, lp := range m.GetLabel() {
				name += "{" + lp.GetName() + "=" + lp.GetValue() + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[name] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[name] = m.GetGauge().GetValue()
			}
		}
	}
	return out, nil
}
