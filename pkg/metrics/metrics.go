package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry metrics
	VolumesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "xetvolume_volumes",
			Help: "Number of volumes currently registered with the plugin",
		},
	)

	// Protocol metrics
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xetvolume_requests_total",
			Help: "Total number of plugin requests by method and status",
		},
		[]string{"method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "xetvolume_request_duration_seconds",
			Help:    "Plugin request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Mount tool metrics
	MountsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xetvolume_mounts_total",
			Help: "Total number of git-xet mount invocations by result",
		},
		[]string{"result"},
	)

	UnmountsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xetvolume_unmounts_total",
			Help: "Total number of umount invocations by result",
		},
		[]string{"result"},
	)

	MountDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "xetvolume_mount_duration_seconds",
			Help:    "Time spent waiting for git-xet mount in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(VolumesTotal)
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(MountsTotal)
	prometheus.MustRegister(UnmountsTotal)
	prometheus.MustRegister(MountDuration)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
