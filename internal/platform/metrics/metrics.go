package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del servicio sobre un registry propio (no el global),
// para que los tests puedan crear tantos como quieran.
type Metrics struct {
	Registry *prometheus.Registry

	StoreOps      *prometheus.CounterVec
	StoreDuration *prometheus.HistogramVec
	StoreRecords  *prometheus.CounterVec
	SnapshotSize  prometheus.Gauge
}

func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "shelter"
	}

	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		StoreOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Operaciones contra el document store por operación y resultado.",
		}, []string{"op", "outcome"}),
		StoreDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Latencia de las operaciones contra el document store.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		StoreRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "records_total",
			Help:      "Documentos afectados (insertados, modificados, borrados).",
		}, []string{"op"}),
		SnapshotSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "snapshot_records",
			Help:      "Cantidad de registros en el snapshot del dashboard.",
		}),
	}

	reg.MustRegister(
		m.StoreOps,
		m.StoreDuration,
		m.StoreRecords,
		m.SnapshotSize,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveStore registra una operación; outcome es "ok" o "error".
func (m *Metrics) ObserveStore(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.StoreOps.WithLabelValues(op, outcome).Inc()
	m.StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) AddRecords(op string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.StoreRecords.WithLabelValues(op).Add(float64(n))
}

func (m *Metrics) SetSnapshotSize(n int) {
	if m == nil {
		return
	}
	m.SnapshotSize.Set(float64(n))
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
