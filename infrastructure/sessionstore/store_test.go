package sessionstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cohort-roas-api/internal/domain"
)

func newSession(id string, lastAccess time.Time) *domain.Session {
	return &domain.Session{
		ID: id,
		Series: domain.CohortSeries{
			{
				Index:     0,
				Week:      "Week 1",
				Date:      time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC),
				DateLabel: "Oct 1",
				Values: map[domain.Channel]domain.HorizonValues{
					domain.ChannelPaidMedia: {domain.Day7: 1.1, domain.Day30: 1.6, domain.Day90: 2.2, domain.Day180: 3.0},
				},
			},
		},
		Metrics: domain.MetricsByChannel{
			domain.ChannelPaidMedia: {Channel: domain.ChannelPaidMedia, D7: 1.1, D7Trend: domain.NewTrend(10)},
		},
		CreatedAt:  lastAccess,
		LastAccess: lastAccess,
	}
}

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	s := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), RedisOptions{Addr: s.Addr(), TTL: ttl})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, s
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		KindMemory: func(t *testing.T) Store { return NewMemoryStore() },
		KindRedis: func(t *testing.T) Store {
			store, _ := newRedisStore(t, time.Hour)
			return store
		},
	}

	for kind, build := range stores {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			now := time.Date(2024, time.December, 20, 10, 0, 0, 0, time.UTC)

			t.Run("Salva e recupera a sessão", func(t *testing.T) {
				store := build(t)
				require.NoError(t, store.Save(ctx, newSession("s1", now)))

				got, err := store.Get(ctx, "s1")
				require.NoError(t, err)
				assert.Equal(t, "s1", got.ID)
				require.Len(t, got.Series, 1)
				v, ok := got.Series[0].Value(domain.ChannelPaidMedia, domain.Day30)
				assert.True(t, ok)
				assert.Equal(t, 1.6, v)
				assert.Equal(t, domain.NewTrend(10), got.Metrics[domain.ChannelPaidMedia].D7Trend)
				assert.True(t, now.Equal(got.LastAccess))
			})

			t.Run("Sessão desconhecida", func(t *testing.T) {
				store := build(t)
				_, err := store.Get(ctx, "nope")
				assert.ErrorIs(t, err, domain.ErrSessionNotFound)
				assert.ErrorIs(t, store.Touch(ctx, "nope", now), domain.ErrSessionNotFound)
			})

			t.Run("Touch atualiza o último acesso", func(t *testing.T) {
				store := build(t)
				require.NoError(t, store.Save(ctx, newSession("s1", now)))
				later := now.Add(5 * time.Minute)
				require.NoError(t, store.Touch(ctx, "s1", later))

				got, err := store.Get(ctx, "s1")
				require.NoError(t, err)
				assert.True(t, later.Equal(got.LastAccess))
			})

			t.Run("Sweep remove apenas sessões ociosas", func(t *testing.T) {
				store := build(t)
				require.NoError(t, store.Save(ctx, newSession("old", now.Add(-time.Hour))))
				require.NoError(t, store.Save(ctx, newSession("fresh", now)))

				removed, err := store.Sweep(ctx, now.Add(-30*time.Minute))
				require.NoError(t, err)
				assert.Equal(t, 1, removed)

				_, err = store.Get(ctx, "old")
				assert.ErrorIs(t, err, domain.ErrSessionNotFound)
				_, err = store.Get(ctx, "fresh")
				assert.NoError(t, err)

				count, err := store.Count(ctx)
				require.NoError(t, err)
				assert.Equal(t, 1, count)
			})

			t.Run("Delete", func(t *testing.T) {
				store := build(t)
				require.NoError(t, store.Save(ctx, newSession("s1", now)))
				require.NoError(t, store.Delete(ctx, "s1"))

				_, err := store.Get(ctx, "s1")
				assert.ErrorIs(t, err, domain.ErrSessionNotFound)
			})
		})
	}
}

func TestRedisStore_Expiration(t *testing.T) {
	store, s := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSession("s1", time.Now())))
	assert.Equal(t, time.Minute, s.TTL(sessionKey("s1")))

	s.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRedisStore_TouchRenewsTTL(t *testing.T) {
	store, s := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSession("s1", time.Now())))
	s.FastForward(50 * time.Second)
	require.NoError(t, store.Touch(ctx, "s1", time.Now()))
	s.FastForward(50 * time.Second)

	_, err := store.Get(ctx, "s1")
	assert.NoError(t, err)
}

func TestNewRedisStore_ConnectionError(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	_, err := NewRedisStore(context.Background(), RedisOptions{Addr: addr})
	assert.Error(t, err)
}
