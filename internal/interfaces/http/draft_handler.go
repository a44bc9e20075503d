package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/etims-api/internal/application/dto"
	"github.com/jhoicas/etims-api/internal/application/invoicing"
	"github.com/jhoicas/etims-api/internal/domain"
)

// DraftHandler drives the invoice wizard: create a draft, resolve the seller,
// collect items, review and submit (protected).
type DraftHandler struct {
	uc *invoicing.UseCase
}

// NewDraftHandler builds the handler.
func NewDraftHandler(uc *invoicing.UseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Create POST /api/invoices/drafts
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	draft, err := h.uc.CreateDraft(c.Context(), GetMsisdn(c), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// Get GET /api/invoices/drafts/:id
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	draft, err := h.uc.GetDraft(c.Context(), GetMsisdn(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(draft)
}

// Delete DELETE /api/invoices/drafts/:id
func (h *DraftHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.ClearDraft(c.Context(), GetMsisdn(c), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResolveSeller POST /api/invoices/drafts/:id/seller
func (h *DraftHandler) ResolveSeller(c *fiber.Ctx) error {
	var in dto.ResolveSellerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resolved, err := h.uc.ResolveSeller(c.Context(), GetMsisdn(c), c.Params("id"), in.PinOrID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resolved)
}

// SetContact POST /api/invoices/drafts/:id/contact
func (h *DraftHandler) SetContact(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	draft, err := h.uc.SetContact(c.Context(), GetMsisdn(c), c.Params("id"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(draft)
}

// AddItem POST /api/invoices/drafts/:id/items
func (h *DraftHandler) AddItem(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	draft, err := h.uc.AddItem(c.Context(), GetMsisdn(c), c.Params("id"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// UpdateItem PUT /api/invoices/drafts/:id/items/:itemID
func (h *DraftHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	draft, err := h.uc.UpdateItem(c.Context(), GetMsisdn(c), c.Params("id"), c.Params("itemID"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(draft)
}

// RemoveItem DELETE /api/invoices/drafts/:id/items/:itemID
func (h *DraftHandler) RemoveItem(c *fiber.Ctx) error {
	draft, err := h.uc.RemoveItem(c.Context(), GetMsisdn(c), c.Params("id"), c.Params("itemID"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(draft)
}

// Review POST /api/invoices/drafts/:id/review
func (h *DraftHandler) Review(c *fiber.Ctx) error {
	draft, err := h.uc.ContinueToReview(c.Context(), GetMsisdn(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(draft)
}

// Submit POST /api/invoices/drafts/:id/submit
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	result, err := h.uc.Submit(c.Context(), GetMsisdn(c), c.Params("id"))
	if err != nil {
		if result != nil {
			// Submission failed but the draft survives for a retry; the body
			// carries the user-facing message alongside the mapped status.
			status := fiber.StatusUnprocessableEntity
			if errors.Is(err, domain.ErrUnavailable) {
				status = fiber.StatusBadGateway
			}
			return c.Status(status).JSON(result)
		}
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}
