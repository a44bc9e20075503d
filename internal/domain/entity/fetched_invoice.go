package entity

import "github.com/shopspring/decimal"

// Upstream invoice statuses. A missing status means pending; approved and
// accepted are the same terminal state spelled two ways by the gateway.
const (
	InvoiceStatusPending  = "pending"
	InvoiceStatusApproved = "approved"
	InvoiceStatusAccepted = "accepted"
	InvoiceStatusRejected = "rejected"
)

// FetchedInvoice is a read-only projection of an invoice held by the upstream
// eTIMS service. Status is authoritative upstream; this application never
// mutates it directly, only requests a decision.
type FetchedInvoice struct {
	InvoiceID   string
	Reference   string
	BuyerName   string
	SellerName  string
	TotalAmount decimal.Decimal
	Status      string
	Items       []FetchedItem
}

// FetchedItem is one line of a fetched invoice.
type FetchedItem struct {
	ItemName  string
	UnitPrice decimal.Decimal
	Quantity  int64
}

// Ref returns the identifier screens use: invoice_id when present, otherwise
// the reference.
func (f FetchedInvoice) Ref() string {
	if f.InvoiceID != "" {
		return f.InvoiceID
	}
	return f.Reference
}

// Pending reports whether decision actions are still legal. Terminal states
// (approved/accepted/rejected) are read-only.
func (f FetchedInvoice) Pending() bool {
	return f.Status == "" || f.Status == InvoiceStatusPending
}
