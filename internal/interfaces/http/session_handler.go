package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/etims-api/internal/application/dto"
	"github.com/jhoicas/etims-api/internal/application/session"
	"github.com/jhoicas/etims-api/pkg/config"
	"github.com/jhoicas/etims-api/pkg/jwt"
)

// SessionHandler issues session tokens for a phone number (public).
type SessionHandler struct {
	uc  *session.UseCase
	jwt config.JWTConfig
}

// NewSessionHandler builds the handler.
func NewSessionHandler(uc *session.UseCase, jwtCfg config.JWTConfig) *SessionHandler {
	return &SessionHandler{uc: uc, jwt: jwtCfg}
}

// Start POST /api/session
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	var in dto.SessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	msisdn, err := h.uc.Start(c.Context(), in.Msisdn)
	if err != nil {
		return mapDomainError(c, err)
	}
	token, err := jwt.Generate(h.jwt.Secret, msisdn, h.jwt.Issuer, h.jwt.Expiration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "could not issue token"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SessionResponse{Token: token, Msisdn: msisdn})
}
