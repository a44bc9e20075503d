package entity

import "time"

// Draft kinds: a plain sales invoice or a buyer-initiated invoice that the
// seller must later approve.
const (
	DraftKindSales          = "sales"
	DraftKindBuyerInitiated = "buyer_initiated"
)

// Transaction types.
const (
	TransactionB2B = "b2b"
	TransactionB2C = "b2c"
)

// Item entry modes. Single mode auto-advances to review after the first item.
const (
	ItemModeSingle   = "single"
	ItemModeMultiple = "multiple"
)

// Tax types.
const (
	TaxNonVAT = "non-vat"
	TaxVAT    = "vat"
)

// Workflow states of a draft. Stored on the draft so prerequisite checks are
// state-machine guards, not null checks on form fields.
const (
	StateCollectingSeller = "collecting_seller"
	StateCollectingItems  = "collecting_items"
	StateReviewing        = "reviewing"
	StateSubmitting       = "submitting"
	StateSucceeded        = "succeeded"
)

// Draft is an in-progress invoice threaded across wizard screens. It lives in
// the draft store scoped to one phone session; it is cleared on successful
// submission or explicit reset. Version supports optimistic concurrency on
// saves.
type Draft struct {
	ID              string
	Msisdn          string // owning session
	Kind            string // sales | buyer_initiated
	TransactionType string // b2b | b2c
	ItemMode        string // single | multiple
	State           string
	SellerName      string
	SellerPin       string
	SellerPhone     string
	SellerEmail     string
	TaxType         string // vat | non-vat (default non-vat)
	Items           []InvoiceItem
	LastError       string // user-facing message from the last failed submission
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SellerResolved reports whether seller identity lookup has succeeded.
func (d *Draft) SellerResolved() bool {
	return d.SellerName != "" && d.SellerPin != ""
}

// ItemByID returns the index of the item with the given id, or -1.
func (d *Draft) ItemByID(id string) int {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return i
		}
	}
	return -1
}
