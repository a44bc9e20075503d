// Package session starts and refreshes phone sessions. A session is just a
// verified msisdn; the HTTP layer turns it into a bearer token.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/etims-api/internal/domain"
	"github.com/jhoicas/etims-api/internal/domain/entity"
	"github.com/jhoicas/etims-api/internal/domain/repository"
	"github.com/jhoicas/etims-api/pkg/kra"
	"github.com/jhoicas/etims-api/pkg/logger"
)

// UseCase validates and persists phone sessions.
type UseCase struct {
	sessions repository.SessionRepository
	log      *logger.Logger
}

// NewUseCase builds the use case.
func NewUseCase(sessions repository.SessionRepository, log *logger.Logger) *UseCase {
	return &UseCase{sessions: sessions, log: log}
}

// Start validates the phone, records the session and returns the normalized
// msisdn used as the session identity everywhere else.
func (uc *UseCase) Start(ctx context.Context, phone string) (string, error) {
	if err := kra.ValidatePhone(phone); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	msisdn := kra.NormalizePhone(phone)

	now := time.Now()
	s := &entity.Session{Msisdn: msisdn, CreatedAt: now, LastSeen: now}
	if err := uc.sessions.Upsert(ctx, s); err != nil {
		return "", fmt.Errorf("record session: %w", err)
	}
	uc.log.Info().Str("msisdn", kra.MaskPIN(msisdn)).Msg("session started")
	return msisdn, nil
}
