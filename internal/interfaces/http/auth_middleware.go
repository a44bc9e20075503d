package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/etims-api/internal/application/dto"
	"github.com/jhoicas/etims-api/pkg/jwt"
)

// Locals key for the session phone in Fiber.
const LocalMsisdn = "msisdn"

// AuthMiddleware validates the Bearer JWT and stores the session msisdn in c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		msisdn, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || msisdn == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		c.Locals(LocalMsisdn, msisdn)
		return c.Next()
	}
}

// GetMsisdn returns the session phone from the context (after the auth middleware).
func GetMsisdn(c *fiber.Ctx) string {
	v := c.Locals(LocalMsisdn)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
