package invoicing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/etims-api/internal/application/invoicing"
	"github.com/jhoicas/etims-api/internal/domain"
	"github.com/jhoicas/etims-api/internal/domain/entity"
)

func item(name string, price float64, qty int64) entity.InvoiceItem {
	return entity.InvoiceItem{
		ID:        name,
		Type:      entity.ItemTypeProduct,
		Name:      name,
		UnitPrice: decimal.NewFromFloat(price),
		Quantity:  qty,
	}
}

func TestCalculate_NonVATIsZeroTax(t *testing.T) {
	policy := invoicing.NewTaxPolicy(16)
	items := []entity.InvoiceItem{
		item("Widget", 100, 2),
		item("Gadget", 49.50, 3),
	}

	totals, err := policy.Calculate(items, entity.TaxNonVAT)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromFloat(348.50)),
		"subtotal must be the sum of unitPrice*quantity, got %s", totals.Subtotal)
	assert.True(t, totals.Tax.IsZero(), "non-VAT tax must be zero")
	assert.True(t, totals.Total.Equal(totals.Subtotal),
		"total = subtotal + tax")
}

func TestCalculate_VATAppliesConfiguredRate(t *testing.T) {
	policy := invoicing.NewTaxPolicy(16)
	items := []entity.InvoiceItem{item("Widget", 100, 2)}

	totals, err := policy.Calculate(items, entity.TaxVAT)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, totals.Tax.Equal(decimal.NewFromInt(32)), "16%% of 200, got %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(232)))
}

func TestCalculate_EmptyListIsZero(t *testing.T) {
	policy := invoicing.NewTaxPolicy(16)
	totals, err := policy.Calculate(nil, entity.TaxNonVAT)
	require.NoError(t, err)
	assert.True(t, totals.Total.IsZero())
}

func TestCalculate_RejectsNonPositiveItems(t *testing.T) {
	policy := invoicing.NewTaxPolicy(16)

	zeroPrice := []entity.InvoiceItem{item("Free", 0, 1)}
	_, err := policy.Calculate(zeroPrice, entity.TaxNonVAT)
	assert.ErrorIs(t, err, domain.ErrValidation)

	negativeQty := []entity.InvoiceItem{item("Widget", 100, -1)}
	_, err = policy.Calculate(negativeQty, entity.TaxNonVAT)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCalculate_Deterministic(t *testing.T) {
	policy := invoicing.NewTaxPolicy(16)
	items := []entity.InvoiceItem{item("Widget", 33.33, 3)}

	t1, err1 := policy.Calculate(items, entity.TaxVAT)
	t2, err2 := policy.Calculate(items, entity.TaxVAT)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.True(t, t1.Total.Equal(t2.Total), "same input, same totals")
}
