package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/cohort-roas-api/internal/domain"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/dashboard"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/sessioning"
	"github.com/vfg2006/cohort-roas-api/pkg/apiErrors"
	"github.com/vfg2006/cohort-roas-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("handler: erro ao codificar resposta")
	}
}

// writeDomainError traduz os erros dos casos de uso para o formato da API
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var sessionErr *sessioning.SessionError
	if errors.As(err, &sessionErr) {
		apiErrors.WriteError(w, sessionErr.Code, sessionErr.Error(), sessionDetails(sessionErr))
		return
	}

	var viewErr *dashboard.ViewError
	if errors.As(err, &viewErr) {
		apiErrors.WriteError(w, viewErr.Code, viewErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnknownChannel),
		errors.Is(err, domain.ErrUnknownCountry),
		errors.Is(err, domain.ErrUnknownDevice),
		errors.Is(err, domain.ErrUnknownHorizon):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	default:
		log.ForContext(r.Context()).WithError(err).Error("handler: erro inesperado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
	}
}

func sessionDetails(err *sessioning.SessionError) any {
	if err.SessionID == "" {
		return nil
	}
	return map[string]string{"session_id": err.SessionID}
}
