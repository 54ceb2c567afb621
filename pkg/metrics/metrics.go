// Package metrics expõe os contadores da aplicação no formato do Prometheus.
// Um *Recorder nil é válido e descarta todas as medições.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roas"

type Recorder struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	sessionsCreated prometheus.Counter
	sessionsSwept   prometheus.Counter
	sessionsActive  prometheus.Gauge
	dashboardBuilds *prometheus.CounterVec
	archiveFailures prometheus.Counter
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requisições HTTP por rota, método e status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP por rota.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Sessões de dashboard criadas.",
		}),
		sessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_swept_total",
			Help:      "Sessões removidas por inatividade.",
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessões armazenadas após a última varredura.",
		}),
		dashboardBuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_builds_total",
			Help:      "Dashboards montados por período selecionado.",
		}, []string{"period"}),
		archiveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_archive_failures_total",
			Help:      "Falhas ao arquivar snapshots no Postgres.",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests,
		r.requestDuration,
		r.sessionsCreated,
		r.sessionsSwept,
		r.sessionsActive,
		r.dashboardBuilds,
		r.archiveFailures,
	)

	return r
}

// Handler serve o endpoint /metrics
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (r *Recorder) SessionCreated() {
	if r == nil {
		return
	}
	r.sessionsCreated.Inc()
}

func (r *Recorder) SessionsSwept(removed, remaining int) {
	if r == nil {
		return
	}
	r.sessionsSwept.Add(float64(removed))
	r.sessionsActive.Set(float64(remaining))
}

func (r *Recorder) DashboardBuilt(period string) {
	if r == nil {
		return
	}
	r.dashboardBuilds.WithLabelValues(period).Inc()
}

func (r *Recorder) ArchiveFailed() {
	if r == nil {
		return
	}
	r.archiveFailures.Inc()
}
