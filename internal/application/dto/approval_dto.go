package dto

import "github.com/shopspring/decimal"

// FetchedItemResponse one line of an upstream invoice.
type FetchedItemResponse struct {
	ItemName  string          `json:"item_name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

// FetchedInvoiceResponse an upstream invoice in list/detail responses.
type FetchedInvoiceResponse struct {
	ID          string                `json:"id"` // invoice_id or reference
	BuyerName   string                `json:"buyer_name,omitempty"`
	SellerName  string                `json:"seller_name,omitempty"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	Status      string                `json:"status"` // normalized: pending when upstream omits it
	Pending     bool                  `json:"pending"`
	Items       []FetchedItemResponse `json:"items,omitempty"`
}

// InvoiceListResponse GET /api/approvals.
type InvoiceListResponse struct {
	Invoices []FetchedInvoiceResponse `json:"invoices"`
	Filter   string                   `json:"filter"`
}

// DecisionRequest body for POST /api/approvals/:id/decision.
type DecisionRequest struct {
	Action string `json:"action"` // accept | reject (UI "approve" maps to accept)
}

// BatchDecisionRequest body for POST /api/approvals/decisions.
type BatchDecisionRequest struct {
	IDs    []string `json:"ids"`
	Action string   `json:"action"`
}

// BatchItemResult per-invoice outcome of a batch decision. Batches are
// best-effort: one failure does not roll back the rest.
type BatchItemResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BatchDecisionResponse summary of a batch decision.
type BatchDecisionResponse struct {
	Action    string            `json:"action"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Results   []BatchItemResult `json:"results"`
}
