package sessioning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/cohort-roas-api/infrastructure/repository/mocks"
	"github.com/vfg2006/cohort-roas-api/infrastructure/sessionstore"
	storemocks "github.com/vfg2006/cohort-roas-api/infrastructure/sessionstore/mocks"
	"github.com/vfg2006/cohort-roas-api/internal/domain"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/cohorting"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/insighting"
	"github.com/vfg2006/cohort-roas-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, time.December, 20, 12, 0, 0, 0, time.UTC)

type countingGenerator struct {
	calls     int
	generator *cohorting.Generator
}

func (g *countingGenerator) Generate() domain.CohortSeries {
	g.calls++
	return g.generator.Generate()
}

func newTestService(store sessionstore.Store, opts Options) (*Service, *countingGenerator) {
	generator := &countingGenerator{generator: cohorting.NewSeededGenerator(7)}
	svc := NewService(store, generator, insighting.NewService(), opts).(*Service)
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() (string, error) { return "sess-0001", nil }
	return svc, generator
}

func TestService_OpenAndGet(t *testing.T) {
	svc, generator := newTestService(sessionstore.NewMemoryStore(), Options{TTL: 30 * time.Minute})
	ctx := context.Background()

	session, err := svc.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sess-0001", session.ID)
	assert.Len(t, session.Series, cohorting.WeekCount)
	assert.Len(t, session.Metrics, 5)
	assert.Equal(t, fixedNow, session.CreatedAt)

	// A série é memorizada: leituras não geram novos valores
	for i := 0; i < 3; i++ {
		got, err := svc.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.Series, got.Series)
		assert.Equal(t, session.Metrics, got.Metrics)
	}
	assert.Equal(t, 1, generator.calls)
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		setup    func(store *storemocks.MockStore)
		validate func(t *testing.T, session *domain.Session, err error)
	}{
		{
			name: "Sessão inexistente",
			setup: func(store *storemocks.MockStore) {
				store.EXPECT().Get(gomock.Any(), "abc").Return(nil, domain.ErrSessionNotFound)
			},
			validate: func(t *testing.T, session *domain.Session, err error) {
				assert.Nil(t, session)
				assert.ErrorIs(t, err, domain.ErrSessionNotFound)

				var sessionErr *SessionError
				require.ErrorAs(t, err, &sessionErr)
				assert.Equal(t, apiErrors.ErrSessionNotFound, sessionErr.Code)
				assert.Equal(t, "abc", sessionErr.SessionID)
			},
		},
		{
			name: "Sessão expirada é removida",
			setup: func(store *storemocks.MockStore) {
				store.EXPECT().Get(gomock.Any(), "abc").Return(&domain.Session{
					ID:         "abc",
					LastAccess: fixedNow.Add(-time.Hour),
				}, nil)
				store.EXPECT().Delete(gomock.Any(), "abc").Return(nil)
			},
			validate: func(t *testing.T, session *domain.Session, err error) {
				assert.Nil(t, session)
				assert.ErrorIs(t, err, domain.ErrSessionNotFound)
				assert.Contains(t, err.Error(), "session expired")
			},
		},
		{
			name: "Sessão válida registra o acesso",
			setup: func(store *storemocks.MockStore) {
				store.EXPECT().Get(gomock.Any(), "abc").Return(&domain.Session{
					ID:         "abc",
					LastAccess: fixedNow.Add(-time.Minute),
				}, nil)
				store.EXPECT().Touch(gomock.Any(), "abc", fixedNow).Return(nil)
			},
			validate: func(t *testing.T, session *domain.Session, err error) {
				require.NoError(t, err)
				assert.Equal(t, fixedNow, session.LastAccess)
			},
		},
		{
			name: "Falha no armazenamento",
			setup: func(store *storemocks.MockStore) {
				store.EXPECT().Get(gomock.Any(), "abc").Return(nil, errors.New("connection reset"))
			},
			validate: func(t *testing.T, session *domain.Session, err error) {
				assert.ErrorIs(t, err, ErrStoreSession)

				var sessionErr *SessionError
				require.ErrorAs(t, err, &sessionErr)
				assert.Equal(t, apiErrors.ErrSessionStore, sessionErr.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := storemocks.NewMockStore(ctrl)
			tt.setup(store)

			svc, _ := newTestService(store, Options{TTL: 30 * time.Minute})
			session, err := svc.Get(ctx, "abc")
			tt.validate(t, session, err)
		})
	}
}

func TestService_Open_Archive(t *testing.T) {
	ctx := context.Background()

	t.Run("Arquiva a série gerada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		snapshots := repomocks.NewMockSnapshotRepository(ctrl)
		snapshots.EXPECT().
			Save(gomock.Any(), "sess-0001", gomock.Len(cohorting.WeekCount)).
			Return(nil)

		svc, _ := newTestService(sessionstore.NewMemoryStore(), Options{TTL: time.Minute, Snapshots: snapshots})
		_, err := svc.Open(ctx)
		assert.NoError(t, err)
	})

	t.Run("Falha no arquivamento não impede a sessão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		snapshots := repomocks.NewMockSnapshotRepository(ctrl)
		snapshots.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		store := sessionstore.NewMemoryStore()
		svc, _ := newTestService(store, Options{TTL: time.Minute, Snapshots: snapshots})
		session, err := svc.Open(ctx)
		require.NoError(t, err)

		_, err = store.Get(ctx, session.ID)
		assert.NoError(t, err)
	})

	t.Run("Falha ao salvar a sessão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := storemocks.NewMockStore(ctrl)
		store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		svc, _ := newTestService(store, Options{TTL: time.Minute})
		_, err := svc.Open(ctx)
		assert.ErrorIs(t, err, ErrStoreSession)
	})

	t.Run("Falha ao gerar o ID", func(t *testing.T) {
		svc, generator := newTestService(sessionstore.NewMemoryStore(), Options{TTL: time.Minute})
		svc.newID = func() (string, error) { return "", errors.New("entropy") }

		_, err := svc.Open(ctx)
		assert.ErrorIs(t, err, ErrGenerateID)
		assert.Zero(t, generator.calls)
	})
}

func TestService_Sweep(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.NewMemoryStore()
	svc, _ := newTestService(store, Options{TTL: 30 * time.Minute})

	require.NoError(t, store.Save(ctx, &domain.Session{ID: "old", LastAccess: fixedNow.Add(-time.Hour)}))
	require.NoError(t, store.Save(ctx, &domain.Session{ID: "fresh", LastAccess: fixedNow.Add(-time.Minute)}))

	result, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SweepResult{Removed: 1, Remaining: 1}, result)

	svc.ttl = 0
	result, err = svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SweepResult{}, result)
}

func TestService_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("Arquivamento desabilitado", func(t *testing.T) {
		svc, _ := newTestService(sessionstore.NewMemoryStore(), Options{})
		_, err := svc.Snapshot(ctx, "abc")
		assert.ErrorIs(t, err, ErrSnapshotDisabled)

		deleted, err := svc.PruneSnapshots(ctx, 30)
		assert.NoError(t, err)
		assert.Zero(t, deleted)
	})

	t.Run("Snapshot vazio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		snapshots := repomocks.NewMockSnapshotRepository(ctrl)
		snapshots.EXPECT().GetBySession(gomock.Any(), "abc").Return([]*domain.SnapshotEntry{}, nil)

		svc, _ := newTestService(sessionstore.NewMemoryStore(), Options{Snapshots: snapshots})
		_, err := svc.Snapshot(ctx, "abc")
		assert.ErrorIs(t, err, ErrSnapshotEmpty)
	})

	t.Run("Snapshot encontrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		snapshots := repomocks.NewMockSnapshotRepository(ctrl)
		snapshots.EXPECT().GetBySession(gomock.Any(), "abc").Return([]*domain.SnapshotEntry{
			{SessionID: "abc", WeekIndex: 0, Channel: domain.ChannelPaidMedia, D7: 1.2},
		}, nil)

		svc, _ := newTestService(sessionstore.NewMemoryStore(), Options{Snapshots: snapshots})
		entries, err := svc.Snapshot(ctx, "abc")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 1.2, entries[0].D7)
	})

	t.Run("Limpeza por retenção", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		snapshots := repomocks.NewMockSnapshotRepository(ctrl)
		snapshots.EXPECT().DeleteOlderThan(gomock.Any(), 30).Return(int64(96), nil)

		svc, _ := newTestService(sessionstore.NewMemoryStore(), Options{Snapshots: snapshots})
		deleted, err := svc.PruneSnapshots(ctx, 30)
		require.NoError(t, err)
		assert.Equal(t, int64(96), deleted)

		deleted, err = svc.PruneSnapshots(ctx, 0)
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})
}
