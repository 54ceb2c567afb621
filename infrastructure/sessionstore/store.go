// Package sessionstore guarda as sessões do dashboard em memória ou no Redis
package sessionstore

import (
	"context"
	"time"

	"github.com/vfg2006/cohort-roas-api/internal/domain"
)

const (
	KindMemory = "memory"
	KindRedis  = "redis"
)

// Store define as operações de armazenamento de sessões.
// Get retorna domain.ErrSessionNotFound para ids desconhecidos ou expirados.
type Store interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Touch(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	// Sweep remove as sessões sem acesso desde idleSince e retorna quantas foram removidas
	Sweep(ctx context.Context, idleSince time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}
