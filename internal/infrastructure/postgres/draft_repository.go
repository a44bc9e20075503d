package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/etims-api/internal/domain"
	"github.com/jhoicas/etims-api/internal/domain/entity"
	"github.com/jhoicas/etims-api/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

// DraftRepo persists invoice drafts (usable with pool or tx). Items live in a
// JSONB column since they are only ever read and written with their draft.
type DraftRepo struct {
	q Querier
}

// NewDraftRepository builds the adapter. Pass a pool or tx (Querier).
func NewDraftRepository(q Querier) *DraftRepo {
	return &DraftRepo{q: q}
}

const draftColumns = `id, msisdn, kind, transaction_type, item_mode, state,
	seller_name, seller_pin, seller_phone, seller_email, tax_type,
	items, last_error, version, created_at, updated_at`

// Create persists a new draft.
func (r *DraftRepo) Create(ctx context.Context, d *entity.Draft) error {
	items, err := json.Marshal(d.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	query := `
		INSERT INTO drafts (` + draftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.q.Exec(ctx, query,
		d.ID, d.Msisdn, d.Kind, d.TransactionType, d.ItemMode, d.State,
		d.SellerName, d.SellerPin, d.SellerPhone, d.SellerEmail, d.TaxType,
		items, d.LastError, d.Version, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert draft: %w", err)
	}
	return nil
}

// GetByID fetches a draft by ID.
func (r *DraftRepo) GetByID(ctx context.Context, id string) (*entity.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE id = $1`
	return r.scanDraft(r.q.QueryRow(ctx, query, id))
}

// GetActive returns the most recent draft of the given kind for a session,
// or nil when none exists.
func (r *DraftRepo) GetActive(ctx context.Context, msisdn, kind string) (*entity.Draft, error) {
	query := `
		SELECT ` + draftColumns + `
		FROM drafts WHERE msisdn = $1 AND kind = $2
		ORDER BY created_at DESC LIMIT 1`
	d, err := r.scanDraft(r.q.QueryRow(ctx, query, msisdn, kind))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return d, err
}

// Save writes the draft back with an optimistic version check. A stale
// version returns domain.ErrConflict; on success the in-memory version is
// bumped to match the row.
func (r *DraftRepo) Save(ctx context.Context, d *entity.Draft) error {
	items, err := json.Marshal(d.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	query := `
		UPDATE drafts SET
			state = $3, seller_name = $4, seller_pin = $5, seller_phone = $6,
			seller_email = $7, tax_type = $8, items = $9, last_error = $10,
			updated_at = $11, version = version + 1
		WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(ctx, query,
		d.ID, d.Version,
		d.State, d.SellerName, d.SellerPin, d.SellerPhone,
		d.SellerEmail, d.TaxType, items, d.LastError,
		d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM drafts WHERE id = $1)`, d.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check draft: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	d.Version++
	return nil
}

// Delete removes a draft by ID. Deleting an absent draft is not an error.
func (r *DraftRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM drafts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func (r *DraftRepo) scanDraft(row pgx.Row) (*entity.Draft, error) {
	var d entity.Draft
	var items []byte
	err := row.Scan(
		&d.ID, &d.Msisdn, &d.Kind, &d.TransactionType, &d.ItemMode, &d.State,
		&d.SellerName, &d.SellerPin, &d.SellerPhone, &d.SellerEmail, &d.TaxType,
		&items, &d.LastError, &d.Version, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if err := json.Unmarshal(items, &d.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return &d, nil
}
