package repository

import (
	"context"

	"github.com/jhoicas/etims-api/internal/domain/entity"
)

// DraftRepository is the draft store port. A session holds at most one active
// draft per kind; Save must honor the draft's Version (optimistic concurrency)
// and return domain.ErrConflict on a stale write.
type DraftRepository interface {
	Create(ctx context.Context, d *entity.Draft) error
	GetByID(ctx context.Context, id string) (*entity.Draft, error)
	GetActive(ctx context.Context, msisdn, kind string) (*entity.Draft, error)
	Save(ctx context.Context, d *entity.Draft) error
	Delete(ctx context.Context, id string) error
}

// SessionRepository persists phone sessions.
type SessionRepository interface {
	Upsert(ctx context.Context, s *entity.Session) error
	Get(ctx context.Context, msisdn string) (*entity.Session, error)
}
