package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cohort-roas-api/internal/config"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/sessioning"
)

// SessionSweepConfig representa a configuração do agendador de limpeza de sessões
type SessionSweepConfig struct {
	CronSchedule  string
	SyncEnabled   bool
	RetentionDays int
}

// SessionSweepService remove periodicamente sessões ociosas e snapshots fora da retenção
type SessionSweepService struct {
	scheduler           *gocron.Scheduler
	config              SessionSweepConfig
	sessions            sessioning.SessionManager
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          *sessioning.SweepResult
	lastPruned          int64
}

func NewSessionSweepService(
	sessions sessioning.SessionManager,
	appConfig *config.Config,
) *SessionSweepService {
	sweepConfig := SessionSweepConfig{
		CronSchedule:  appConfig.SessionSweep.CronSchedule,
		SyncEnabled:   appConfig.SessionSweep.Enabled,
		RetentionDays: appConfig.SnapshotArchive.RetentionDays,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  sweepConfig.CronSchedule,
		"sync_enabled":   sweepConfig.SyncEnabled,
		"retention_days": sweepConfig.RetentionDays,
	}).Info("Configuração do agendador de limpeza de sessões carregada")

	return &SessionSweepService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    sweepConfig,
		sessions:  sessions,
	}
}

// Start inicia o agendador
func (s *SessionSweepService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Limpeza de sessões desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza de sessões")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de sessões: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de sessões")
		s.scheduler.Stop()
	}()

	return nil
}

// sweep executa uma limpeza, ignorando chamadas enquanto outra estiver em andamento
func (s *SessionSweepService) sweep(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Limpeza de sessões já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	startTime := time.Now()

	result, err := s.sessions.Sweep(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover sessões ociosas")
		return
	}

	pruned, err := s.sessions.PruneSnapshots(ctx, s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover snapshots antigos")
	}

	s.syncMutex.Lock()
	s.lastResult = result
	s.lastPruned = pruned
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"duration":         time.Since(startTime).String(),
		"sweep_removed":    result.Removed,
		"sweep_remaining":  result.Remaining,
		"snapshots_pruned": pruned,
	}).Info("Limpeza de sessões concluída")
}

// TriggerManualSync inicia manualmente uma limpeza. Retorna falso se já houver uma em andamento.
func (s *SessionSweepService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Limpeza de sessões já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando limpeza manual de sessões")
	go s.sweep(context.WithoutCancel(ctx))
	return true
}

// IsRunning informa se há uma limpeza em andamento
func (s *SessionSweepService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *SessionSweepService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"retention_days":         s.config.RetentionDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_snapshots_pruned":  s.lastPruned,
	}
	if s.lastResult != nil {
		status["last_sessions_removed"] = s.lastResult.Removed
		status["last_sessions_remaining"] = s.lastResult.Remaining
	}

	return status
}
