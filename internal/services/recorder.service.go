package services

import (
	"net/http"
	"sync"

	"jelly/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "jelly"

	// aggregateLabel marks network series that sum every interface
	aggregateLabel = "all"
)

// Recorder exports the last sample as Prometheus gauges
type Recorder struct {
	registry *prometheus.Registry

	mu    sync.Mutex
	label string

	cpuPercent    prometheus.Gauge
	memoryPercent prometheus.Gauge
	bytesSent     *prometheus.GaugeVec
	bytesRecv     *prometheus.GaugeVec
	sentPerSecond *prometheus.GaugeVec
	recvPerSecond *prometheus.GaugeVec
}

// NewRecorder creates the gauges on a dedicated registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		cpuPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_percent",
			Help:      "Average CPU usage across cores.",
		}),
		memoryPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_percent",
			Help:      "Virtual memory usage.",
		}),
		bytesSent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "network",
			Name:      "bytes_sent",
			Help:      "Cumulative bytes sent by the selected interface.",
		}, []string{"interface"}),
		bytesRecv: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "network",
			Name:      "bytes_recv",
			Help:      "Cumulative bytes received by the selected interface.",
		}, []string{"interface"}),
		sentPerSecond: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "network",
			Name:      "sent_per_second",
			Help:      "Bytes sent per second between the last two samples.",
		}, []string{"interface"}),
		recvPerSecond: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "network",
			Name:      "recv_per_second",
			Help:      "Bytes received per second between the last two samples.",
		}, []string{"interface"}),
	}

	r.registry.MustRegister(
		r.cpuPercent,
		r.memoryPercent,
		r.bytesSent,
		r.bytesRecv,
		r.sentPerSecond,
		r.recvPerSecond,
	)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Observe updates the gauges from a sample. Rate gauges keep their last value
// when the sample carries no rate, and network series only exist for the
// interface of the latest sample.
func (r *Recorder) Observe(stats *models.SystemStats) {
	r.cpuPercent.Set(stats.CPUPercent)
	r.memoryPercent.Set(stats.Memory.Percent)

	net := stats.Network
	label := networkLabel(net)

	r.mu.Lock()
	defer r.mu.Unlock()
	if label != r.label {
		// drop the series of the previous selection
		r.bytesSent.Reset()
		r.bytesRecv.Reset()
		r.sentPerSecond.Reset()
		r.recvPerSecond.Reset()
		r.label = label
	}
	r.bytesSent.WithLabelValues(label).Set(float64(net.BytesSent))
	r.bytesRecv.WithLabelValues(label).Set(float64(net.BytesRecv))
	if net.SentPerSec != nil {
		r.sentPerSecond.WithLabelValues(label).Set(*net.SentPerSec)
	}
	if net.RecvPerSec != nil {
		r.recvPerSecond.WithLabelValues(label).Set(*net.RecvPerSec)
	}
}

// networkLabel names the series a result belongs to. A selection that is not
// among the current interfaces was reported as the aggregate.
func networkLabel(net models.RateResult) string {
	if net.SelectedInterface == nil {
		return aggregateLabel
	}
	for _, name := range net.Interfaces {
		if name == *net.SelectedInterface {
			return name
		}
	}
	return aggregateLabel
}
