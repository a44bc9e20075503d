package invoicing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/etims-api/internal/domain"
	"github.com/jhoicas/etims-api/internal/domain/entity"
)

// Totals derived from a draft's item list.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// TaxPolicy computes tax for a draft's tax type. The default eTIMS flow is
// non-VAT (zero tax); VAT drafts apply the configured rate.
type TaxPolicy struct {
	vatRate decimal.Decimal // fraction, e.g. 0.16
}

// NewTaxPolicy builds a policy from a whole-percent rate (16 -> 16%).
func NewTaxPolicy(vatRatePercent int) TaxPolicy {
	return TaxPolicy{
		vatRate: decimal.NewFromInt(int64(vatRatePercent)).Div(decimal.NewFromInt(100)),
	}
}

// Calculate derives subtotal, tax and total from the items. Pure and
// deterministic. Items with non-positive price or quantity are rejected;
// producer screens validate first, the calculator refuses anyway.
func (p TaxPolicy) Calculate(items []entity.InvoiceItem, taxType string) (Totals, error) {
	subtotal := decimal.Zero
	for _, it := range items {
		if !it.UnitPrice.IsPositive() || it.Quantity <= 0 {
			return Totals{}, domain.ErrValidation
		}
		subtotal = subtotal.Add(it.LineTotal())
	}

	tax := decimal.Zero
	if taxType == entity.TaxVAT {
		tax = subtotal.Mul(p.vatRate).Round(2)
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}, nil
}
