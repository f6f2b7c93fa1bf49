// Package metrics exposes Prometheus instrumentation for the editor
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// operationsTotal counts editing operations by name and result
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gomesh_operations_total",
		Help: "Editing operations by operation and result",
	}, []string{"operation", "result"})

	// syncTotal counts buffer rebuilds
	syncTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gomesh_sync_total",
		Help: "Render buffer rebuilds",
	})

	// syncDuration tracks how long a buffer rebuild takes
	syncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gomesh_sync_duration_seconds",
		Help:    "Render buffer rebuild duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
	})

	// meshTriangles reports the triangle count after the last rebuild
	meshTriangles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gomesh_mesh_triangles",
		Help: "Triangles in the mesh after the last rebuild",
	})

	// autosaveTotal counts autosave attempts by result
	autosaveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gomesh_autosave_total",
		Help: "Autosave attempts by result",
	}, []string{"result"})

	// historyDepth reports the number of undo steps
	historyDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gomesh_history_depth",
		Help: "Undo steps currently kept",
	})
)

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "rejected"
}

// RecordOperation counts an editing operation
func RecordOperation(operation string, ok bool) {
	operationsTotal.WithLabelValues(operation, result(ok)).Inc()
}

// ObserveSync records a buffer rebuild
func ObserveSync(d time.Duration, triangles int) {
	syncTotal.Inc()
	syncDuration.Observe(d.Seconds())
	meshTriangles.Set(float64(triangles))
}

// RecordAutosave counts an autosave attempt
func RecordAutosave(err error) {
	if err != nil {
		autosaveTotal.WithLabelValues("error").Inc()
		return
	}
	autosaveTotal.WithLabelValues("ok").Inc()
}

// SetHistoryDepth reports the current undo depth
func SetHistoryDepth(depth int) {
	historyDepth.Set(float64(depth))
}

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
