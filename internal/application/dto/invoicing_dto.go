package dto

import "github.com/shopspring/decimal"

// CreateDraftRequest body for POST /api/invoices/drafts.
type CreateDraftRequest struct {
	Kind            string `json:"kind"`                       // sales | buyer_initiated
	TransactionType string `json:"transaction_type,omitempty"` // b2b | b2c (buyer_initiated only; defaults to b2b)
	ItemMode        string `json:"item_mode,omitempty"`        // single | multiple (defaults to single)
	TaxType         string `json:"tax_type,omitempty"`         // vat | non-vat (defaults to non-vat)
}

// ResolveSellerRequest body for POST /api/invoices/drafts/:id/seller.
type ResolveSellerRequest struct {
	PinOrID string `json:"pin_or_id"`
}

// ResolveSellerResponse masked identity echoed to the screen after lookup.
type ResolveSellerResponse struct {
	MaskedPin  string `json:"masked_pin"`
	MaskedName string `json:"masked_name"`
}

// ContactRequest body for POST /api/invoices/drafts/:id/contact.
type ContactRequest struct {
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// ItemRequest body for adding/updating a draft item.
type ItemRequest struct {
	Type        string          `json:"type"` // product | service
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
}

// ItemResponse one draft line in responses.
type ItemResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// TotalsResponse derived totals for the review screen.
type TotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// DraftResponse the draft as screens see it.
type DraftResponse struct {
	ID              string          `json:"id"`
	Kind            string          `json:"kind"`
	TransactionType string          `json:"transaction_type"`
	ItemMode        string          `json:"item_mode"`
	State           string          `json:"state"`
	SellerName      string          `json:"seller_name,omitempty"`
	SellerPin       string          `json:"seller_pin,omitempty"` // masked
	SellerPhone     string          `json:"seller_phone,omitempty"`
	SellerEmail     string          `json:"seller_email,omitempty"`
	TaxType         string          `json:"tax_type"`
	Items           []ItemResponse  `json:"items"`
	Totals          *TotalsResponse `json:"totals,omitempty"`
	LastError       string          `json:"last_error,omitempty"`
	Version         int64           `json:"version"`
}

// SubmitResponse outcome of a submission attempt.
type SubmitResponse struct {
	Success bool   `json:"success"`
	State   string `json:"state"`
	Error   string `json:"error,omitempty"`
}
