package handler

import (
	"net/http"

	"github.com/vfg2006/cohort-roas-api/internal/api/handler/router"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/dashboard"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/sessioning"
	"github.com/vfg2006/cohort-roas-api/pkg/metrics"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Sessions(service sessioning.SessionManager) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sessions",
			Method:  http.MethodPost,
			Handler: CreateSession(service),
		},
		{
			Path:    "/v1/sessions/:id/cohorts",
			Method:  http.MethodGet,
			Handler: GetSessionCohorts(service),
		},
		{
			Path:    "/v1/sessions/:id/metrics",
			Method:  http.MethodGet,
			Handler: GetSessionMetrics(service),
		},
		{
			Path:    "/v1/sessions/:id/snapshot",
			Method:  http.MethodGet,
			Handler: GetSessionSnapshot(service),
		},
	}
}

func Dashboard(sessions sessioning.SessionManager, builder dashboard.Builder, recorder *metrics.Recorder) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sessions/:id/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(sessions, builder, recorder),
		},
		{
			Path:    "/v1/filters",
			Method:  http.MethodGet,
			Handler: GetFilterOptions(),
		},
		{
			Path:    pagePath,
			Method:  http.MethodGet,
			Handler: DashboardPage(sessions, builder, recorder),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/:type/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}

// Metrics expõe o registro do Prometheus; sem recorder a rota responde 404
func Metrics(recorder *metrics.Recorder) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: recorder.Handler(),
		},
	}
}
