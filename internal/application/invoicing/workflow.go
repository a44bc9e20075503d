package invoicing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/etims-api/internal/application/dto"
	"github.com/jhoicas/etims-api/internal/domain"
	"github.com/jhoicas/etims-api/internal/domain/entity"
	"github.com/jhoicas/etims-api/internal/domain/repository"
	"github.com/jhoicas/etims-api/pkg/kra"
	"github.com/jhoicas/etims-api/pkg/logger"
)

// UseCase drives the invoice submission wizard:
//
//	collecting_seller -> collecting_items -> reviewing -> submitting
//	                                             ^              |
//	                                             +--- failure --+--> succeeded (draft cleared)
//
// Each step is gated by the draft's persisted state tag, so a screen reached
// out of order gets domain.ErrInvalidState instead of acting on missing data.
type UseCase struct {
	drafts  repository.DraftRepository
	gateway Gateway
	tax     TaxPolicy
	log     *logger.Logger
}

// NewUseCase wires the workflow.
func NewUseCase(drafts repository.DraftRepository, gateway Gateway, tax TaxPolicy, log *logger.Logger) *UseCase {
	return &UseCase{drafts: drafts, gateway: gateway, tax: tax, log: log}
}

// CreateDraft starts a wizard. Any previous active draft of the same kind for
// this session is discarded, matching the "clear on wizard start" behavior of
// the screens.
func (uc *UseCase) CreateDraft(ctx context.Context, msisdn string, in dto.CreateDraftRequest) (*dto.DraftResponse, error) {
	if msisdn == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Kind != entity.DraftKindSales && in.Kind != entity.DraftKindBuyerInitiated {
		return nil, domain.ErrValidation
	}
	txType := in.TransactionType
	if txType == "" {
		txType = entity.TransactionB2B
	}
	if txType != entity.TransactionB2B && txType != entity.TransactionB2C {
		return nil, domain.ErrValidation
	}
	mode := in.ItemMode
	if mode == "" {
		mode = entity.ItemModeSingle
	}
	if mode != entity.ItemModeSingle && mode != entity.ItemModeMultiple {
		return nil, domain.ErrValidation
	}
	taxType := in.TaxType
	if taxType == "" {
		taxType = entity.TaxNonVAT
	}
	if taxType != entity.TaxNonVAT && taxType != entity.TaxVAT {
		return nil, domain.ErrValidation
	}

	if prev, err := uc.drafts.GetActive(ctx, msisdn, in.Kind); err == nil && prev != nil {
		if err := uc.drafts.Delete(ctx, prev.ID); err != nil {
			return nil, fmt.Errorf("discard previous draft: %w", err)
		}
	}

	now := time.Now()
	d := &entity.Draft{
		ID:              uuid.New().String(),
		Msisdn:          msisdn,
		Kind:            in.Kind,
		TransactionType: txType,
		ItemMode:        mode,
		State:           entity.StateCollectingSeller,
		TaxType:         taxType,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.drafts.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	uc.log.Info().Str("draft_id", d.ID).Str("kind", d.Kind).Msg("draft started")
	return uc.toResponse(d), nil
}

// GetDraft returns the draft if it belongs to the session.
func (uc *UseCase) GetDraft(ctx context.Context, msisdn, id string) (*dto.DraftResponse, error) {
	d, err := uc.owned(ctx, msisdn, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(d), nil
}

// ClearDraft discards the draft (explicit reset from a screen).
func (uc *UseCase) ClearDraft(ctx context.Context, msisdn, id string) error {
	d, err := uc.owned(ctx, msisdn, id)
	if err != nil {
		return err
	}
	return uc.drafts.Delete(ctx, d.ID)
}

// ResolveSeller validates the PIN/ID format for the draft's transaction type,
// performs the remote lookup and stores the resolved identity. The screen is
// shown only masked values.
func (uc *UseCase) ResolveSeller(ctx context.Context, msisdn, id, pinOrID string) (*dto.ResolveSellerResponse, error) {
	d, err := uc.owned(ctx, msisdn, id)
	if err != nil {
		return nil, err
	}
	if d.State != entity.StateCollectingSeller {
		return nil, domain.ErrInvalidState
	}
	b2b := d.TransactionType == entity.TransactionB2B
	if err := kra.ValidatePINOrID(pinOrID, b2b); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	customer, err := uc.gateway.LookupCustomer(ctx, pinOrID)
	if err != nil {
		return nil, err
	}

	d.SellerPin = customer.Pin
	d.SellerName = customer.Name
	if err := uc.save(ctx, d); err != nil {
		return nil, err
	}
	return &dto.ResolveSellerResponse{
		MaskedPin:  kra.MaskPIN(customer.Pin),
		MaskedName: kra.MaskName(customer.Name),
	}, nil
}

// SetContact records the seller contact and advances to item collection.
// Requires a resolved seller and a phone with more than 9 digits.
func (uc *UseCase) SetContact(ctx context.Context, msisdn, id string, in dto.ContactRequest) (*dto.DraftResponse, error) {
	d, err := uc.owned(ctx, msisdn, id)
	if err != nil {
		return nil, err
	}
	if d.State != entity.StateCollectingSeller {
		return nil, domain.ErrInvalidState
	}
	if !d.SellerResolved() {
		return nil, domain.ErrInvalidState
	}
	if err := kra.ValidatePhone(in.Phone); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	d.SellerPhone = in.Phone
	d.SellerEmail = in.Email
	d.State = entity.StateCollectingItems
	if err := uc.save(ctx, d); err != nil {
		return nil, err
	}
	return uc.toResponse(d), nil
}

// AddItem appends an item. In single mode the draft holds exactly one item
// and auto-advances to reviewing; in multiple mode items accumulate until
// ContinueToReview.
func (uc *UseCase) AddItem(ctx context.Context, msisdn, id string, in dto.ItemRequest) (*dto.DraftResponse, error) {
	d, err := uc.owned(ctx, msisdn, id)
	if err != nil {
		return nil, err
	}
	if d.State != entity.StateCollectingItems {
		return nil, domain.ErrInvalidState
	}
	it := newItem(in)
	if err := it.Validate(); err != nil {
		return nil, err
	}

	if d.ItemMode == entity.ItemModeSingle {
		d.Items = []entity.InvoiceItem{it}
		d.State = entity.StateReviewing
	} else {
		d.Items = append(d.Items, it)
	}
	if err := uc.save(ctx, d); err != nil {
		return nil, err
	}
	return uc.toResponse(d), nil
}

// UpdateItem replaces an existing item in place. Allowed while collecting
// items or reviewing; a review-stage edit keeps the recomputed totals honest
// because totals are always derived from the live list.
func (uc *UseCase) UpdateItem(ctx context.Context, msisdn, id, itemID string, in dto.ItemRequest) (*dto.DraftResponse, error) {
	d, err := uc.owned(ctx, msisdn, id)
	if err != nil {
		return nil, err
	}
	if d.State != entity.StateCollectingItems && d.State != entity.StateReviewing {
		return nil, domain.ErrInvalidState
	}
	idx := d.ItemByID(itemID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	it := newItem(in)
	it.ID = itemID
	if err := it.Validate(); err != nil {
		return nil, err
	}
	d.Items[idx] = it
	if err := uc.save(ctx, d); err != nil {
		return nil, err
	}
	return uc.toResponse(d), nil
}

// RemoveItem deletes an item. If the review screen loses its last item the
// draft falls back to collecting_items: an empty list may never sit in
// reviewing.
func (uc *UseCase) RemoveItem(ctx context.Context, msisdn, id, itemID string) (*dto.DraftResponse, error) {
	d, err := uc.owned(ctx, msisdn, id)
	if err != nil {
		return nil, err
	}
	if d.State != entity.StateCollectingItems && d.State != entity.StateReviewing {
		return nil, domain.ErrInvalidState
	}
	idx := d.ItemByID(itemID)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	d.Items = append(d.Items[:idx], d.Items[idx+1:]...)
	if len(d.Items) == 0 && d.State == entity.StateReviewing {
		d.State = entity.StateCollectingItems
	}
	if err := uc.save(ctx, d); err != nil {
		return nil, err
	}
	return uc.toResponse(d), nil
}

// ContinueToReview advances a multiple-mode draft to the review screen.
// Requires at least one item and a resolved seller.
func (uc *UseCase) ContinueToReview(ctx context.Context, msisdn, id string) (*dto.DraftResponse, error) {
	d, err := uc.owned(ctx, msisdn, id)
	if err != nil {
		return nil, err
	}
	if d.State != entity.StateCollectingItems {
		return nil, domain.ErrInvalidState
	}
	if len(d.Items) == 0 || !d.SellerResolved() {
		return nil, domain.ErrInvalidState
	}
	d.State = entity.StateReviewing
	if err := uc.save(ctx, d); err != nil {
		return nil, err
	}
	return uc.toResponse(d), nil
}

// Submit issues exactly one upstream call for the draft. While a submission
// is in flight any further Submit is refused, so a double tap cannot produce
// a duplicate invoice. On success the draft is cleared; on failure the draft
// returns to reviewing with the error retained for the screen, and the user
// may resubmit manually. There is no automatic retry.
func (uc *UseCase) Submit(ctx context.Context, msisdn, id string) (*dto.SubmitResponse, error) {
	d, err := uc.owned(ctx, msisdn, id)
	if err != nil {
		return nil, err
	}
	switch d.State {
	case entity.StateSubmitting:
		return nil, domain.ErrSubmitInFlight
	case entity.StateReviewing:
		// proceed
	default:
		return nil, domain.ErrInvalidState
	}
	if len(d.Items) == 0 {
		return nil, domain.ErrInvalidState
	}

	totals, err := uc.tax.Calculate(d.Items, d.TaxType)
	if err != nil {
		return nil, err
	}

	// Claim the submitting state first. The versioned save is the gate: a
	// concurrent Submit that lost the race gets ErrConflict here.
	d.State = entity.StateSubmitting
	d.LastError = ""
	if err := uc.save(ctx, d); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrSubmitInFlight
		}
		return nil, err
	}

	items := make([]SubmitItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, SubmitItem{
			ItemName:      it.Name,
			TaxableAmount: it.UnitPrice,
			Quantity:      it.Quantity,
		})
	}

	var submitErr error
	switch d.Kind {
	case entity.DraftKindBuyerInitiated:
		submitErr = uc.gateway.SubmitBuyerInitiatedInvoice(ctx, SubmitBuyerInitiatedRequest{
			Msisdn:       d.Msisdn,
			SellerPin:    d.SellerPin,
			SellerMsisdn: d.SellerPhone,
			TotalAmount:  totals.Total,
			Items:        items,
		})
	default:
		submitErr = uc.gateway.SubmitInvoice(ctx, SubmitInvoiceRequest{
			Msisdn:      d.Msisdn,
			TotalAmount: totals.Total,
			Items:       items,
		})
	}

	if submitErr != nil {
		d.State = entity.StateReviewing
		d.LastError = submitErr.Error()
		if err := uc.save(ctx, d); err != nil {
			uc.log.Error().Err(err).Str("draft_id", d.ID).Msg("restore draft after failed submission")
		}
		uc.log.Warn().Err(submitErr).Str("draft_id", d.ID).Msg("invoice submission failed")
		return &dto.SubmitResponse{Success: false, State: entity.StateReviewing, Error: submitErr.Error()}, submitErr
	}

	if err := uc.drafts.Delete(ctx, d.ID); err != nil {
		return nil, fmt.Errorf("clear draft after submission: %w", err)
	}
	uc.log.Info().Str("draft_id", d.ID).Str("kind", d.Kind).Str("total", totals.Total.String()).Msg("invoice submitted")
	return &dto.SubmitResponse{Success: true, State: entity.StateSucceeded}, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (uc *UseCase) owned(ctx context.Context, msisdn, id string) (*entity.Draft, error) {
	if msisdn == "" {
		return nil, domain.ErrUnauthorized
	}
	if id == "" {
		return nil, domain.ErrValidation
	}
	d, err := uc.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || d.Msisdn != msisdn {
		// A foreign draft is indistinguishable from a missing one.
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (uc *UseCase) save(ctx context.Context, d *entity.Draft) error {
	d.UpdatedAt = time.Now()
	return uc.drafts.Save(ctx, d)
}

func newItem(in dto.ItemRequest) entity.InvoiceItem {
	return entity.InvoiceItem{
		ID:          uuid.New().String(),
		Type:        in.Type,
		Name:        in.Name,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		Quantity:    in.Quantity,
	}
}

func (uc *UseCase) toResponse(d *entity.Draft) *dto.DraftResponse {
	resp := &dto.DraftResponse{
		ID:              d.ID,
		Kind:            d.Kind,
		TransactionType: d.TransactionType,
		ItemMode:        d.ItemMode,
		State:           d.State,
		SellerName:      kra.MaskName(d.SellerName),
		SellerPin:       kra.MaskPIN(d.SellerPin),
		SellerPhone:     d.SellerPhone,
		SellerEmail:     d.SellerEmail,
		TaxType:         d.TaxType,
		Items:           make([]dto.ItemResponse, 0, len(d.Items)),
		LastError:       d.LastError,
		Version:         d.Version,
	}
	for _, it := range d.Items {
		resp.Items = append(resp.Items, dto.ItemResponse{
			ID:          it.ID,
			Type:        it.Type,
			Name:        it.Name,
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			LineTotal:   it.LineTotal(),
		})
	}
	if d.State == entity.StateReviewing || d.State == entity.StateSubmitting {
		if totals, err := uc.tax.Calculate(d.Items, d.TaxType); err == nil {
			resp.Totals = &dto.TotalsResponse{
				Subtotal: totals.Subtotal,
				Tax:      totals.Tax,
				Total:    totals.Total,
			}
		}
	}
	return resp
}
