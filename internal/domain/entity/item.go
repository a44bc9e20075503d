package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/etims-api/internal/domain"
)

// Item types.
const (
	ItemTypeProduct = "product"
	ItemTypeService = "service"
)

// MaxDescriptionLen is the eTIMS cap on item descriptions.
const MaxDescriptionLen = 600

// InvoiceItem is one line of an in-progress draft. Owned exclusively by the
// draft it belongs to.
type InvoiceItem struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"` // product | service
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
}

// Validate enforces the form rules: name required, description capped,
// positive price and quantity.
func (it InvoiceItem) Validate() error {
	if it.Name == "" {
		return domain.ErrValidation
	}
	if len(it.Description) > MaxDescriptionLen {
		return domain.ErrValidation
	}
	if it.Type != ItemTypeProduct && it.Type != ItemTypeService {
		return domain.ErrValidation
	}
	if !it.UnitPrice.IsPositive() {
		return domain.ErrValidation
	}
	if it.Quantity <= 0 {
		return domain.ErrValidation
	}
	return nil
}

// LineTotal returns unitPrice * quantity.
func (it InvoiceItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
}
