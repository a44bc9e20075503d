package invoicing

import (
	"context"

	"github.com/shopspring/decimal"
)

// Customer is the identity returned by an upstream PIN/ID lookup.
type Customer struct {
	Pin  string
	Name string
}

// SubmitItem is one invoice line as the upstream gateway expects it.
type SubmitItem struct {
	ItemName      string          `json:"item_name"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	Quantity      int64           `json:"quantity"`
}

// SubmitInvoiceRequest payload for a sales invoice submission.
type SubmitInvoiceRequest struct {
	Msisdn      string          `json:"msisdn"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []SubmitItem    `json:"items"`
}

// SubmitBuyerInitiatedRequest payload for a buyer-initiated invoice. The
// seller identified by pin/msisdn receives it for approval.
type SubmitBuyerInitiatedRequest struct {
	Msisdn       string          `json:"msisdn"`
	SellerPin    string          `json:"seller_pin"`
	SellerMsisdn string          `json:"seller_msisdn"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Items        []SubmitItem    `json:"items"`
}

// Gateway is the outbound port to the upstream eTIMS service used by the
// submission workflow. The concrete implementation is the HTTP client in
// internal/infrastructure/etims; tests inject a fake.
type Gateway interface {
	LookupCustomer(ctx context.Context, pinOrID string) (*Customer, error)
	SubmitInvoice(ctx context.Context, req SubmitInvoiceRequest) error
	SubmitBuyerInitiatedInvoice(ctx context.Context, req SubmitBuyerInitiatedRequest) error
}
