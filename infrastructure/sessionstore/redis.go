package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/cohort-roas-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	sessionKeyPrefix = "roas:session:"
	accessKey        = "roas:session-access"
)

// RedisOptions agrupa a conexão e o TTL das chaves de sessão
type RedisOptions struct {
	Addr     string
	DB       int
	Password string
	TTL      time.Duration
}

// RedisStore guarda cada sessão como JSON com TTL e mantém o último acesso em um sorted set
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: opts.TTL}, nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *RedisStore) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(session.ID), data, r.ttl)
		pipe.ZAdd(ctx, accessKey, redis.Z{
			Score:  float64(session.LastAccess.UnixMilli()),
			Member: session.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	val, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(val, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	score, err := r.client.ZScore(ctx, accessKey, id).Result()
	if err == nil {
		session.LastAccess = time.UnixMilli(int64(score)).UTC()
	} else if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get session access: %w", err)
	}

	return &session, nil
}

// Touch renova o TTL da chave e registra o acesso
func (r *RedisStore) Touch(ctx context.Context, id string, at time.Time) error {
	var exists *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		exists = pipe.Exists(ctx, sessionKey(id))
		if r.ttl > 0 {
			pipe.Expire(ctx, sessionKey(id), r.ttl)
		}
		pipe.ZAddXX(ctx, accessKey, redis.Z{
			Score:  float64(at.UnixMilli()),
			Member: id,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}

	if exists.Val() == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(id))
		pipe.ZRem(ctx, accessKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Sweep remove sessões ociosas e também limpa entradas cujas chaves já expiraram
func (r *RedisStore) Sweep(ctx context.Context, idleSince time.Time) (int, error) {
	ids, err := r.client.ZRangeByScore(ctx, accessKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(idleSince.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list idle sessions: %w", err)
	}

	removed := 0
	for _, id := range ids {
		if err := r.Delete(ctx, id); err != nil {
			return removed, err
		}
		removed++
	}

	return removed, nil
}

func (r *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := r.client.ZCard(ctx, accessKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return int(n), nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
