package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/cohort-roas-api/pkg/apiErrors"
	"github.com/vfg2006/cohort-roas-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeSessionSweep = "session-sweep"
	CronJobTypeAll          = "all"
)

// SyncJob é uma tarefa agendada que também pode ser disparada manualmente
type SyncJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	SessionSweepService SyncJob
}

func (s CronJobServices) jobs() map[string]SyncJob {
	jobs := make(map[string]SyncJob)
	if s.SessionSweepService != nil {
		jobs[CronJobTypeSessionSweep] = s.SessionSweepService
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs := services.jobs()

		var selected []SyncJob
		switch cronType {
		case CronJobTypeAll:
			for _, job := range jobs {
				selected = append(selected, job)
			}
		default:
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: session-sweep, all", nil)
				return
			}
			selected = append(selected, job)
		}

		started := 0
		for _, job := range selected {
			if job.TriggerManualSync(r.Context()) {
				started++
			}
		}

		if len(selected) > 0 && started == 0 {
			apiErrors.WriteError(w, apiErrors.ErrSyncRunning, "Cron job já está em execução", map[string]string{"type": cronType})
			return
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("cron: execução manual iniciada")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		jobs := services.jobs()

		status := make(map[string]any)
		switch cronType {
		case CronJobTypeAll:
			for name, job := range jobs {
				status[name] = job.GetStatus()
			}
		default:
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: session-sweep, all", nil)
				return
			}
			status[cronType] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
