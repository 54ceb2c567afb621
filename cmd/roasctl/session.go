package main

import (
	"context"
	"time"

	"github.com/vfg2006/cohort-roas-api/infrastructure/sessionstore"
	"github.com/vfg2006/cohort-roas-api/internal/domain"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/cohorting"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/dashboard"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/insighting"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/sessioning"
)

// localSession abre uma sessão em memória, como a API faz a cada visita
func localSession(ctx context.Context, seed uint64) (*domain.Session, error) {
	var generator cohorting.SeriesGenerator = cohorting.NewGenerator(nil)
	if seed > 0 {
		generator = cohorting.NewSeededGenerator(seed)
	}

	sessions := sessioning.NewService(
		sessionstore.NewMemoryStore(),
		generator,
		insighting.NewService(),
		sessioning.Options{TTL: time.Hour},
	)

	return sessions.Open(ctx)
}

// buildView gera a sessão e projeta segundo os filtros informados
func buildView(ctx context.Context, seed uint64, input domain.FilterInput) (*dashboard.View, error) {
	filter, err := domain.ParseFilterState(input)
	if err != nil {
		return nil, err
	}

	session, err := localSession(ctx, seed)
	if err != nil {
		return nil, err
	}

	return dashboard.NewService().Build(session, filter)
}
