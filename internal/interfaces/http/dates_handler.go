package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/etims-api/internal/application/dto"
	"github.com/jhoicas/etims-api/pkg/dates"
)

// DatesHandler validates dates against a reference (public).
type DatesHandler struct{}

// NewDatesHandler builds the handler.
func NewDatesHandler() *DatesHandler { return &DatesHandler{} }

// Validate POST /api/dates/validate
func (h *DatesHandler) Validate(c *fiber.Ctx) error {
	var in dto.DateValidationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	valid, err := dates.Validate(in.DateProvided, dates.Operator(in.Operator), in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.JSON(dto.DateValidationResponse{Valid: valid})
}
