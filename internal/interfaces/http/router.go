package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/etims-api/internal/application/approval"
	"github.com/jhoicas/etims-api/internal/application/invoicing"
	"github.com/jhoicas/etims-api/internal/application/session"
	"github.com/jhoicas/etims-api/pkg/config"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	SessionUC   *session.UseCase
	InvoicingUC *invoicing.UseCase
	ApprovalUC  *approval.UseCase
	Renderer    InvoiceRenderer
	JWT         config.JWTConfig
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Session (public)
	sessionHandler := NewSessionHandler(deps.SessionUC, deps.JWT)
	api.Post("/session", sessionHandler.Start)

	// Date validation (public)
	datesHandler := NewDatesHandler()
	api.Post("/dates/validate", datesHandler.Validate)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWT.Secret))

	// Invoice wizard (protected)
	drafts := protected.Group("/invoices/drafts")
	draftHandler := NewDraftHandler(deps.InvoicingUC)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Delete("/:id", draftHandler.Delete)
	drafts.Post("/:id/seller", draftHandler.ResolveSeller)
	drafts.Post("/:id/contact", draftHandler.SetContact)
	drafts.Post("/:id/items", draftHandler.AddItem)
	drafts.Put("/:id/items/:itemID", draftHandler.UpdateItem)
	drafts.Delete("/:id/items/:itemID", draftHandler.RemoveItem)
	drafts.Post("/:id/review", draftHandler.Review)
	drafts.Post("/:id/submit", draftHandler.Submit)

	// Seller approval queue (protected)
	approvals := protected.Group("/approvals")
	approvalHandler := NewApprovalHandler(deps.ApprovalUC, deps.Renderer)
	approvals.Get("/", approvalHandler.List)
	approvals.Post("/decisions", approvalHandler.DecideBatch)
	approvals.Get("/:id", approvalHandler.Get)
	approvals.Get("/:id/pdf", approvalHandler.PDF)
	approvals.Post("/:id/decision", approvalHandler.Decide)
}
