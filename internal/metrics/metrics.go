package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecordsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custgen_records_generated_total",
			Help: "Generated customer records by status",
		},
		[]string{"status"}, // ACTIVE|INACTIVE|BLOCKED|CLOSED
	)

	GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "custgen_generation_duration_seconds",
			Help:    "Wall time of one dataset generation",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)

	SinkRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custgen_sink_rows_total",
			Help: "Rows written to a sink",
		},
		[]string{"sink"}, // postgres|mysql|clickhouse|kafka|file
	)

	PreviewRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custgen_preview_requests_total",
			Help: "HTTP preview requests by route",
		},
		[]string{"route"},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		RecordsGenerated,
		GenerationDuration,
		SinkRows,
		PreviewRequests,
	)
}

// WriteTextfile dumps g in the node_exporter textfile format; empty path is a no-op.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, g)
}
