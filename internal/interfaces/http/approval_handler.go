package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/etims-api/internal/application/approval"
	"github.com/jhoicas/etims-api/internal/application/dto"
	"github.com/jhoicas/etims-api/internal/domain/entity"
)

// InvoiceRenderer produces a PDF for invoices the upstream has no stored copy of.
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, inv *entity.FetchedInvoice) ([]byte, error)
}

// ApprovalHandler serves the seller's approval queue: list buyer-initiated
// invoices, inspect one, download its PDF and accept or reject (protected).
type ApprovalHandler struct {
	uc       *approval.UseCase
	renderer InvoiceRenderer
}

// NewApprovalHandler builds the handler.
func NewApprovalHandler(uc *approval.UseCase, renderer InvoiceRenderer) *ApprovalHandler {
	return &ApprovalHandler{uc: uc, renderer: renderer}
}

// List GET /api/approvals?status=pending|approved|rejected
func (h *ApprovalHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), GetMsisdn(c), c.Query("status"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/approvals/:id
func (h *ApprovalHandler) Get(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.Context(), GetMsisdn(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(inv)
}

// PDF GET /api/approvals/:id/pdf
func (h *ApprovalHandler) PDF(c *fiber.Ctx) error {
	inv, data, err := h.uc.InvoicePDF(c.Context(), GetMsisdn(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	if data == nil {
		// No stored copy upstream; render one locally.
		data, err = h.renderer.RenderInvoice(c.Context(), inv)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "could not render invoice"})
		}
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="invoice-`+inv.Ref()+`.pdf"`)
	return c.Send(data)
}

// Decide POST /api/approvals/:id/decision
func (h *ApprovalHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.uc.Decide(c.Context(), GetMsisdn(c), c.Params("id"), normalizeAction(in.Action)); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DecideBatch POST /api/approvals/decisions
func (h *ApprovalHandler) DecideBatch(c *fiber.Ctx) error {
	var in dto.BatchDecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	result, err := h.uc.DecideBatch(c.Context(), GetMsisdn(c), in.IDs, normalizeAction(in.Action))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// normalizeAction maps the screen verb "approve" to the gateway verb "accept".
func normalizeAction(action string) string {
	if action == "approve" {
		return approval.DecisionAccept
	}
	return action
}
