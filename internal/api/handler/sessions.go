package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/cohort-roas-api/internal/domain"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/sessioning"
	"github.com/vfg2006/cohort-roas-api/pkg/apiErrors"
	"github.com/vfg2006/cohort-roas-api/pkg/log"
)

// CreateSession gera a série de uma nova sessão
func CreateSession(service sessioning.SessionManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := service.Open(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("sessions: erro ao criar sessão")
			writeDomainError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, domain.SessionResponse{
			ID:        session.ID,
			Weeks:     len(session.Series),
			CreatedAt: session.CreatedAt,
		})
	})
}

func GetSessionCohorts(service sessioning.SessionManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := loadSession(w, r, service)
		if !ok {
			return
		}

		writeJSON(w, r, http.StatusOK, session.Series)
	})
}

func GetSessionMetrics(service sessioning.SessionManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := loadSession(w, r, service)
		if !ok {
			return
		}

		// lista na ordem de exibição dos canais
		metrics := make([]domain.ChannelMetrics, 0, len(session.Metrics))
		for _, channel := range domain.Channels() {
			if m, found := session.Metrics.Lookup(channel); found {
				metrics = append(metrics, m)
			}
		}

		writeJSON(w, r, http.StatusOK, metrics)
	})
}

func GetSessionSnapshot(service sessioning.SessionManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da sessão não informado", nil)
			return
		}

		entries, err := service.Snapshot(r.Context(), id)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, entries)
	})
}

func loadSession(w http.ResponseWriter, r *http.Request, service sessioning.SessionManager) (*domain.Session, bool) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if id == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da sessão não informado", nil)
		return nil, false
	}

	session, err := service.Get(r.Context(), id)
	if err != nil {
		log.ForContext(r.Context()).WithError(err).WithField("session_id", id).Warn("sessions: erro ao carregar sessão")
		writeDomainError(w, r, err)
		return nil, false
	}

	return session, true
}
