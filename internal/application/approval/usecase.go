// Package approval implements the seller side of buyer-initiated invoicing:
// fetching invoices addressed to a phone number, filtering them by status,
// and accepting or rejecting the pending ones.
package approval

import (
	"context"
	"fmt"

	"github.com/jhoicas/etims-api/internal/application/dto"
	"github.com/jhoicas/etims-api/internal/domain"
	"github.com/jhoicas/etims-api/internal/domain/entity"
	"github.com/jhoicas/etims-api/pkg/logger"
)

// Status filters accepted by List. "approved" covers both spellings the
// upstream uses for the same terminal state.
const (
	FilterPending  = "pending"
	FilterApproved = "approved"
	FilterRejected = "rejected"
)

// Decisions forwarded upstream. The screens say "approve"; the upstream verb
// is "accept" — handlers translate before calling Decide.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// Gateway is the outbound port used by the approval workflow.
type Gateway interface {
	// FetchInvoices returns every invoice associated with the phone number.
	// A phone with no invoices yields an empty slice, not an error.
	FetchInvoices(ctx context.Context, phone string) ([]entity.FetchedInvoice, error)
	// ProcessBuyerInvoice forwards an accept/reject decision upstream.
	ProcessBuyerInvoice(ctx context.Context, phone, invoiceID, action string) error
	// FetchInvoicePDF retrieves the rendered invoice document, if the
	// upstream has one.
	FetchInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error)
}

// UseCase drives the approval screens.
type UseCase struct {
	gateway Gateway
	log     *logger.Logger
}

// NewUseCase wires the workflow.
func NewUseCase(gateway Gateway, log *logger.Logger) *UseCase {
	return &UseCase{gateway: gateway, log: log}
}

// List fetches all invoices for the phone and filters client-side by status.
func (uc *UseCase) List(ctx context.Context, phone, filter string) (*dto.InvoiceListResponse, error) {
	if phone == "" {
		return nil, domain.ErrUnauthorized
	}
	if filter == "" {
		filter = FilterPending
	}
	if filter != FilterPending && filter != FilterApproved && filter != FilterRejected {
		return nil, domain.ErrValidation
	}

	invoices, err := uc.gateway.FetchInvoices(ctx, phone)
	if err != nil {
		return nil, err
	}

	resp := &dto.InvoiceListResponse{Filter: filter, Invoices: []dto.FetchedInvoiceResponse{}}
	for _, inv := range invoices {
		if !matchesFilter(inv, filter) {
			continue
		}
		resp.Invoices = append(resp.Invoices, toResponse(inv, false))
	}
	return resp, nil
}

// Get returns one invoice by its screen identifier (invoice_id or reference).
func (uc *UseCase) Get(ctx context.Context, phone, id string) (*dto.FetchedInvoiceResponse, error) {
	inv, err := uc.find(ctx, phone, id)
	if err != nil {
		return nil, err
	}
	out := toResponse(*inv, true)
	return &out, nil
}

// Decide forwards an accept/reject decision for a single invoice. Only legal
// while the invoice is pending; terminal invoices are read-only. A failed
// decision leaves the invoice pending upstream, so the user can retry.
func (uc *UseCase) Decide(ctx context.Context, phone, id, action string) error {
	if action != DecisionAccept && action != DecisionReject {
		return domain.ErrValidation
	}
	inv, err := uc.find(ctx, phone, id)
	if err != nil {
		return err
	}
	if !inv.Pending() {
		return domain.ErrInvalidState
	}
	if err := uc.gateway.ProcessBuyerInvoice(ctx, phone, id, action); err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", id).Str("action", action).Msg("decision failed")
		return err
	}
	uc.log.Info().Str("invoice_id", id).Str("action", action).Msg("invoice decision applied")
	return nil
}

// DecideBatch applies the single-invoice decision to each staged identifier.
// Best effort per item: a failure is recorded in the result and does not stop
// or roll back the rest of the batch.
func (uc *UseCase) DecideBatch(ctx context.Context, phone string, ids []string, action string) (*dto.BatchDecisionResponse, error) {
	if action != DecisionAccept && action != DecisionReject {
		return nil, domain.ErrValidation
	}
	if len(ids) == 0 {
		return nil, domain.ErrValidation
	}

	resp := &dto.BatchDecisionResponse{Action: action, Results: make([]dto.BatchItemResult, 0, len(ids))}
	for _, id := range ids {
		result := dto.BatchItemResult{ID: id, Success: true}
		if err := uc.Decide(ctx, phone, id, action); err != nil {
			result.Success = false
			result.Error = userMessage(err)
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, result)
	}
	return resp, nil
}

// InvoicePDF fetches the rendering source for an invoice the session may see.
func (uc *UseCase) InvoicePDF(ctx context.Context, phone, id string) (*entity.FetchedInvoice, []byte, error) {
	inv, err := uc.find(ctx, phone, id)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := uc.gateway.FetchInvoicePDF(ctx, id)
	if err != nil {
		// No upstream document: the caller renders one locally.
		return inv, nil, nil
	}
	return inv, pdf, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (uc *UseCase) find(ctx context.Context, phone, id string) (*entity.FetchedInvoice, error) {
	if phone == "" {
		return nil, domain.ErrUnauthorized
	}
	if id == "" {
		return nil, domain.ErrValidation
	}
	invoices, err := uc.gateway.FetchInvoices(ctx, phone)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].InvoiceID == id || invoices[i].Reference == id {
			return &invoices[i], nil
		}
	}
	return nil, fmt.Errorf("invoice %s: %w", id, domain.ErrNotFound)
}

func matchesFilter(inv entity.FetchedInvoice, filter string) bool {
	switch filter {
	case FilterApproved:
		return inv.Status == entity.InvoiceStatusApproved || inv.Status == entity.InvoiceStatusAccepted
	case FilterRejected:
		return inv.Status == entity.InvoiceStatusRejected
	default:
		return inv.Pending()
	}
}

func toResponse(inv entity.FetchedInvoice, withItems bool) dto.FetchedInvoiceResponse {
	status := inv.Status
	if status == "" {
		status = entity.InvoiceStatusPending
	}
	out := dto.FetchedInvoiceResponse{
		ID:          inv.Ref(),
		BuyerName:   inv.BuyerName,
		SellerName:  inv.SellerName,
		TotalAmount: inv.TotalAmount,
		Status:      status,
		Pending:     inv.Pending(),
	}
	if withItems {
		out.Items = make([]dto.FetchedItemResponse, 0, len(inv.Items))
		for _, it := range inv.Items {
			out.Items = append(out.Items, dto.FetchedItemResponse{
				ItemName:  it.ItemName,
				UnitPrice: it.UnitPrice,
				Quantity:  it.Quantity,
			})
		}
	}
	return out
}

func userMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
