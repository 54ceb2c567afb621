// Package sessioning memoriza a série gerada por sessão do dashboard
package sessioning

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vfg2006/cohort-roas-api/infrastructure/repository"
	"github.com/vfg2006/cohort-roas-api/infrastructure/sessionstore"
	"github.com/vfg2006/cohort-roas-api/internal/domain"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/cohorting"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/insighting"
	"github.com/vfg2006/cohort-roas-api/pkg/apiErrors"
	"github.com/vfg2006/cohort-roas-api/pkg/log"
	"github.com/vfg2006/cohort-roas-api/pkg/metrics"
	"github.com/vfg2006/cohort-roas-api/pkg/utils"
)

type SessionManager interface {
	// Open gera a série uma única vez e guarda a sessão
	Open(ctx context.Context) (*domain.Session, error)
	// Get retorna a sessão memorizada e registra o acesso
	Get(ctx context.Context, id string) (*domain.Session, error)
	Sweep(ctx context.Context) (*SweepResult, error)
	Snapshot(ctx context.Context, id string) ([]*domain.SnapshotEntry, error)
	PruneSnapshots(ctx context.Context, retentionDays int) (int64, error)
}

type SweepResult struct {
	Removed   int `json:"removed"`
	Remaining int `json:"remaining"`
}

type Options struct {
	TTL       time.Duration
	Snapshots repository.SnapshotRepository // nil desabilita o arquivamento
	Metrics   *metrics.Recorder
}

type Service struct {
	store      sessionstore.Store
	generator  cohorting.SeriesGenerator
	aggregator insighting.MetricsAggregator
	snapshots  repository.SnapshotRepository
	metrics    *metrics.Recorder
	ttl        time.Duration
	now        func() time.Time
	newID      func() (string, error)

	// o gerador usa uma fonte aleatória sem sincronização própria
	generatorMu sync.Mutex
}

func NewService(
	store sessionstore.Store,
	generator cohorting.SeriesGenerator,
	aggregator insighting.MetricsAggregator,
	opts Options,
) SessionManager {
	return &Service{
		store:      store,
		generator:  generator,
		aggregator: aggregator,
		snapshots:  opts.Snapshots,
		metrics:    opts.Metrics,
		ttl:        opts.TTL,
		now:        time.Now,
		newID:      utils.GenerateSessionID,
	}
}

func (s *Service) Open(ctx context.Context) (*domain.Session, error) {
	id, err := s.newID()
	if err != nil {
		return nil, NewSessionError(ErrGenerateID, apiErrors.ErrInternalServer, "", err.Error())
	}

	s.generatorMu.Lock()
	series := s.generator.Generate()
	s.generatorMu.Unlock()

	channelMetrics, err := s.aggregator.ComputeChannelMetrics(series, domain.Channels())
	if err != nil {
		return nil, NewSessionError(ErrComputeMetrics, apiErrors.ErrInternalServer, id, err.Error())
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:         id,
		Series:     series,
		Metrics:    channelMetrics,
		CreatedAt:  now,
		LastAccess: now,
	}

	if err := s.store.Save(ctx, session); err != nil {
		log.ForContext(ctx).WithError(err).WithField("session_id", id).Error("sessions: erro ao salvar sessão")
		return nil, NewSessionError(ErrStoreSession, apiErrors.ErrSessionStore, id, err.Error())
	}

	s.archive(ctx, session)
	s.metrics.SessionCreated()

	log.ForContext(ctx).WithFields(log.Fields{
		"session_id": id,
		"weeks":      len(series),
	}).Info("sessions: sessão criada")

	return session, nil
}

// archive nunca falha a criação da sessão
func (s *Service) archive(ctx context.Context, session *domain.Session) {
	if s.snapshots == nil {
		return
	}

	if err := s.snapshots.Save(ctx, session.ID, session.Series); err != nil {
		s.metrics.ArchiveFailed()
		log.ForContext(ctx).WithError(err).WithField("session_id", session.ID).Warn("sessions: erro ao arquivar snapshot")
	}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, NewSessionError(domain.ErrSessionNotFound, apiErrors.ErrSessionNotFound, id, "")
		}
		return nil, NewSessionError(ErrStoreSession, apiErrors.ErrSessionStore, id, err.Error())
	}

	now := s.now().UTC()
	if s.expired(session, now) {
		if err := s.store.Delete(ctx, id); err != nil {
			log.ForContext(ctx).WithError(err).WithField("session_id", id).Warn("sessions: erro ao remover sessão expirada")
		}
		return nil, NewSessionError(domain.ErrSessionNotFound, apiErrors.ErrSessionNotFound, id, domain.ErrSessionExpired.Error())
	}

	if err := s.store.Touch(ctx, id, now); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, NewSessionError(domain.ErrSessionNotFound, apiErrors.ErrSessionNotFound, id, "")
		}
		return nil, NewSessionError(ErrStoreSession, apiErrors.ErrSessionStore, id, err.Error())
	}
	session.LastAccess = now

	return session, nil
}

func (s *Service) expired(session *domain.Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(session.LastAccess) > s.ttl
}

func (s *Service) Sweep(ctx context.Context) (*SweepResult, error) {
	if s.ttl <= 0 {
		return &SweepResult{}, nil
	}

	removed, err := s.store.Sweep(ctx, s.now().UTC().Add(-s.ttl))
	if err != nil {
		return nil, NewSessionError(ErrStoreSession, apiErrors.ErrSessionStore, "", err.Error())
	}

	remaining, err := s.store.Count(ctx)
	if err != nil {
		return nil, NewSessionError(ErrStoreSession, apiErrors.ErrSessionStore, "", err.Error())
	}

	s.metrics.SessionsSwept(removed, remaining)

	return &SweepResult{Removed: removed, Remaining: remaining}, nil
}

func (s *Service) Snapshot(ctx context.Context, id string) ([]*domain.SnapshotEntry, error) {
	if s.snapshots == nil {
		return nil, NewSessionError(ErrSnapshotDisabled, apiErrors.ErrFeatureDisabled, id, "")
	}

	entries, err := s.snapshots.GetBySession(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("session_id", id).Error("sessions: erro ao buscar snapshot")
		return nil, NewSessionError(ErrFetchSnapshot, apiErrors.ErrDatabaseOperation, id, "")
	}

	if len(entries) == 0 {
		return nil, NewSessionError(ErrSnapshotEmpty, apiErrors.ErrSnapshotEmpty, id, "")
	}

	return entries, nil
}

// PruneSnapshots remove snapshots antigos; retenção zero mantém tudo
func (s *Service) PruneSnapshots(ctx context.Context, retentionDays int) (int64, error) {
	if s.snapshots == nil || retentionDays <= 0 {
		return 0, nil
	}

	deleted, err := s.snapshots.DeleteOlderThan(ctx, retentionDays)
	if err != nil {
		return 0, NewSessionError(ErrFetchSnapshot, apiErrors.ErrDatabaseOperation, "", err.Error())
	}

	return deleted, nil
}
