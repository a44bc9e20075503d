package approval_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/etims-api/internal/application/approval"
	"github.com/jhoicas/etims-api/internal/domain"
	"github.com/jhoicas/etims-api/internal/domain/entity"
	"github.com/jhoicas/etims-api/pkg/logger"
)

const testPhone = "0712345678"

// fakeGateway serves a fixed invoice set and records decisions.
type fakeGateway struct {
	invoices   []entity.FetchedInvoice
	fetchErr   error
	processErr error
	decisions  []string // "id:action"
}

func (g *fakeGateway) FetchInvoices(_ context.Context, _ string) ([]entity.FetchedInvoice, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return g.invoices, nil
}

func (g *fakeGateway) ProcessBuyerInvoice(_ context.Context, _, invoiceID, action string) error {
	if g.processErr != nil {
		return g.processErr
	}
	g.decisions = append(g.decisions, invoiceID+":"+action)
	return nil
}

func (g *fakeGateway) FetchInvoicePDF(_ context.Context, _ string) ([]byte, error) {
	return nil, domain.ErrNotFound
}

func invoice(id, status string, total int64) entity.FetchedInvoice {
	return entity.FetchedInvoice{
		InvoiceID:   id,
		BuyerName:   "John Doe",
		SellerName:  "Acme Traders Ltd",
		TotalAmount: decimal.NewFromInt(total),
		Status:      status,
	}
}

func newUseCase(gw *fakeGateway) *approval.UseCase {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return approval.NewUseCase(gw, log)
}

func TestList_FiltersByStatus(t *testing.T) {
	gw := &fakeGateway{invoices: []entity.FetchedInvoice{
		invoice("INV-1", "", 100),                            // missing status counts as pending
		invoice("INV-2", entity.InvoiceStatusPending, 200),
		invoice("INV-3", entity.InvoiceStatusApproved, 300),
		invoice("INV-4", entity.InvoiceStatusAccepted, 400),  // upstream synonym of approved
		invoice("INV-5", entity.InvoiceStatusRejected, 500),
	}}
	uc := newUseCase(gw)
	ctx := context.Background()

	pending, err := uc.List(ctx, testPhone, approval.FilterPending)
	require.NoError(t, err)
	assert.Len(t, pending.Invoices, 2)

	approved, err := uc.List(ctx, testPhone, approval.FilterApproved)
	require.NoError(t, err)
	assert.Len(t, approved.Invoices, 2, "approved and accepted share a bucket")

	rejected, err := uc.List(ctx, testPhone, approval.FilterRejected)
	require.NoError(t, err)
	require.Len(t, rejected.Invoices, 1)
	assert.Equal(t, "INV-5", rejected.Invoices[0].ID)
}

// A rejected invoice shows up under rejected and nowhere else.
func TestList_RejectedInvoiceOnlyUnderRejectedFilter(t *testing.T) {
	gw := &fakeGateway{invoices: []entity.FetchedInvoice{
		invoice("INV-9", entity.InvoiceStatusRejected, 750),
	}}
	uc := newUseCase(gw)
	ctx := context.Background()

	for filter, want := range map[string]int{
		approval.FilterPending:  0,
		approval.FilterApproved: 0,
		approval.FilterRejected: 1,
	} {
		resp, err := uc.List(ctx, testPhone, filter)
		require.NoError(t, err)
		assert.Len(t, resp.Invoices, want, "filter %s", filter)
	}
}

func TestList_EmptyUpstreamIsEmptyList(t *testing.T) {
	uc := newUseCase(&fakeGateway{})
	resp, err := uc.List(context.Background(), testPhone, approval.FilterPending)
	require.NoError(t, err, "a phone with no invoices is not an error")
	assert.Empty(t, resp.Invoices)
}

func TestList_DefaultsToPending(t *testing.T) {
	gw := &fakeGateway{invoices: []entity.FetchedInvoice{
		invoice("INV-1", "", 100),
		invoice("INV-3", entity.InvoiceStatusApproved, 300),
	}}
	uc := newUseCase(gw)

	resp, err := uc.List(context.Background(), testPhone, "")
	require.NoError(t, err)
	assert.Equal(t, approval.FilterPending, resp.Filter)
	assert.Len(t, resp.Invoices, 1)
}

func TestGet_FindsByReferenceToo(t *testing.T) {
	gw := &fakeGateway{invoices: []entity.FetchedInvoice{
		{Reference: "REF-77", Status: entity.InvoiceStatusPending, TotalAmount: decimal.NewFromInt(50)},
	}}
	uc := newUseCase(gw)

	inv, err := uc.Get(context.Background(), testPhone, "REF-77")
	require.NoError(t, err)
	assert.Equal(t, "REF-77", inv.ID)

	_, err = uc.Get(context.Background(), testPhone, "REF-00")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecide_OnlyPendingIsActionable(t *testing.T) {
	gw := &fakeGateway{invoices: []entity.FetchedInvoice{
		invoice("INV-1", entity.InvoiceStatusPending, 100),
		invoice("INV-3", entity.InvoiceStatusApproved, 300),
	}}
	uc := newUseCase(gw)
	ctx := context.Background()

	require.NoError(t, uc.Decide(ctx, testPhone, "INV-1", approval.DecisionAccept))
	assert.Equal(t, []string{"INV-1:accept"}, gw.decisions)

	err := uc.Decide(ctx, testPhone, "INV-3", approval.DecisionReject)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "terminal invoices are read-only")
}

func TestDecide_RejectsUnknownAction(t *testing.T) {
	uc := newUseCase(&fakeGateway{})
	err := uc.Decide(context.Background(), testPhone, "INV-1", "approve")
	assert.ErrorIs(t, err, domain.ErrValidation,
		"the UI verb approve must be translated to accept before this layer")
}

func TestDecide_UpstreamFailureLeavesInvoicePending(t *testing.T) {
	gw := &fakeGateway{
		invoices:   []entity.FetchedInvoice{invoice("INV-1", entity.InvoiceStatusPending, 100)},
		processErr: domain.ErrUnavailable,
	}
	uc := newUseCase(gw)
	ctx := context.Background()

	err := uc.Decide(ctx, testPhone, "INV-1", approval.DecisionAccept)
	assert.Error(t, err)
	assert.Empty(t, gw.decisions, "no decision was applied")

	// Retry once the upstream recovers.
	gw.processErr = nil
	require.NoError(t, uc.Decide(ctx, testPhone, "INV-1", approval.DecisionAccept))
}

func TestDecideBatch_BestEffortPerItem(t *testing.T) {
	gw := &fakeGateway{invoices: []entity.FetchedInvoice{
		invoice("INV-1", entity.InvoiceStatusPending, 100),
		invoice("INV-3", entity.InvoiceStatusApproved, 300), // not pending: fails
		invoice("INV-2", entity.InvoiceStatusPending, 200),
	}}
	uc := newUseCase(gw)

	resp, err := uc.DecideBatch(context.Background(), testPhone,
		[]string{"INV-1", "INV-3", "INV-2"}, approval.DecisionReject)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 3)
	assert.True(t, resp.Results[0].Success)
	assert.False(t, resp.Results[1].Success, "mid-batch failure does not stop the rest")
	assert.True(t, resp.Results[2].Success)
	assert.Equal(t, []string{"INV-1:reject", "INV-2:reject"}, gw.decisions)
}

func TestDecideBatch_EmptySelectionRefused(t *testing.T) {
	uc := newUseCase(&fakeGateway{})
	_, err := uc.DecideBatch(context.Background(), testPhone, nil, approval.DecisionAccept)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
