package handler

import (
	"net/http"
	"net/url"

	"github.com/vfg2006/cohort-roas-api/internal/domain"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/dashboard"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/sessioning"
	"github.com/vfg2006/cohort-roas-api/pkg/apiErrors"
	"github.com/vfg2006/cohort-roas-api/pkg/log"
	"github.com/vfg2006/cohort-roas-api/pkg/metrics"
)

// GetDashboard projeta a sessão segundo os filtros da query string
func GetDashboard(sessions sessioning.SessionManager, builder dashboard.Builder, recorder *metrics.Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r.URL.Query())
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		session, ok := loadSession(w, r, sessions)
		if !ok {
			return
		}

		view, err := builder.Build(session, filter)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("session_id", session.ID).Error("dashboard: erro ao montar visualização")
			writeDomainError(w, r, err)
			return
		}

		recorder.DashboardBuilt(view.Filters.Period)
		writeJSON(w, r, http.StatusOK, view)
	})
}

// GetFilterOptions lista as opções dos seletores
func GetFilterOptions() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, dashboard.Options())
	})
}

func parseFilter(query url.Values) (domain.FilterState, error) {
	return domain.ParseFilterState(domain.FilterInput{
		Channel: query.Get("channel"),
		Country: query.Get("country"),
		Device:  query.Get("device"),
		Period:  query.Get("period"),
	})
}
