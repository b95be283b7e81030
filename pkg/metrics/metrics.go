package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var startTime = time.Now()

var (
	UptimeSeconds = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "example_app_uptime_seconds",
		Help: "Application uptime in seconds",
	}, func() float64 {
		return time.Since(startTime).Seconds()
	})
	AppInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "example_app_info",
		Help: "Application information",
	}, []string{"version", "service"})
	BuildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "example_app_build_info",
		Help: "Build information",
	}, []string{"go_version"})
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "example_app_http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"path", "status"})
)

func init() {
	prometheus.MustRegister(UptimeSeconds)
	prometheus.MustRegister(AppInfo)
	prometheus.MustRegister(BuildInfo)
	prometheus.MustRegister(HTTPRequests)

	BuildInfo.WithLabelValues(runtime.Version()).Set(1)
}

// SetAppInfo records the static application info gauge.
func SetAppInfo(version, service string) {
	AppInfo.WithLabelValues(version, service).Set(1)
}

// Uptime returns the time since process start.
func Uptime() time.Duration {
	return time.Since(startTime)
}

// Handler returns an http.Handler exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
