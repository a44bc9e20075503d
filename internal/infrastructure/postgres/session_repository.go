package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/etims-api/internal/domain"
	"github.com/jhoicas/etims-api/internal/domain/entity"
	"github.com/jhoicas/etims-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo persists phone sessions.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository builds the adapter. Pass a pool or tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Upsert records a session for the phone, refreshing last_seen on repeats.
func (r *SessionRepo) Upsert(ctx context.Context, s *entity.Session) error {
	query := `
		INSERT INTO sessions (msisdn, created_at, last_seen)
		VALUES ($1, $2, $3)
		ON CONFLICT (msisdn) DO UPDATE SET last_seen = EXCLUDED.last_seen`
	if _, err := r.q.Exec(ctx, query, s.Msisdn, s.CreatedAt, s.LastSeen); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Get fetches a session by phone number.
func (r *SessionRepo) Get(ctx context.Context, msisdn string) (*entity.Session, error) {
	query := `SELECT msisdn, created_at, last_seen FROM sessions WHERE msisdn = $1`
	var s entity.Session
	err := r.q.QueryRow(ctx, query, msisdn).Scan(&s.Msisdn, &s.CreatedAt, &s.LastSeen)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}
