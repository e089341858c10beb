// Package metrics exposes Prometheus collectors for the CSV engine.
// All metrics register themselves with the default registry on first
// import; serving them is up to the embedding application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RowsRead counts rows materialized into tables by Read.
	RowsRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tabular_rows_read_total",
			Help: "Total number of rows read from CSV input",
		},
	)

	// RowsWritten counts rows serialized by Write.
	RowsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tabular_rows_written_total",
			Help: "Total number of rows written to CSV output",
		},
	)

	// BytesRead counts input bytes consumed by Read.
	BytesRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tabular_bytes_read_total",
			Help: "Total number of CSV input bytes parsed",
		},
	)

	// BytesWritten counts output bytes produced by Write.
	BytesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tabular_bytes_written_total",
			Help: "Total number of CSV output bytes produced",
		},
	)

	// TypePromotions counts column type widenings discovered during the
	// parse phase. A nonzero rate means the sample missed the true type
	// and full re-parses are happening.
	TypePromotions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tabular_type_promotions_total",
			Help: "Total number of column type promotions during parsing",
		},
	)

	// ReadDuration tracks wall-clock time of whole Read calls.
	ReadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "tabular_read_duration_seconds",
			Help: "Duration of CSV read operations",
			Buckets: []float64{
				1e-5, // 10μs - tiny inputs
				1e-4, // 100μs
				1e-3, // 1ms
				1e-2, // 10ms
				1e-1, // 100ms
				1,    // 1s - multi-gigabyte inputs
				10,   // 10s
			},
		},
	)

	// WriteDuration tracks wall-clock time of whole Write calls.
	WriteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "tabular_write_duration_seconds",
			Help: "Duration of CSV write operations",
			Buckets: []float64{
				1e-5, 1e-4, 1e-3, 1e-2, 1e-1, 1, 10,
			},
		},
	)
)

// ObserveRead records the outcome of one successful Read call.
func ObserveRead(rows, bytes int, elapsed time.Duration) {
	RowsRead.Add(float64(rows))
	BytesRead.Add(float64(bytes))
	ReadDuration.Observe(elapsed.Seconds())
}

// ObserveWrite records the outcome of one successful Write call.
func ObserveWrite(rows, bytes int, elapsed time.Duration) {
	RowsWritten.Add(float64(rows))
	BytesWritten.Add(float64(bytes))
	WriteDuration.Observe(elapsed.Seconds())
}
