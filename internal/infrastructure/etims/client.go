// Package etims implements the HTTP client for the upstream eTIMS invoicing
// gateway. Every call carries the request context so that an abandoned screen
// cancels its in-flight lookup or submission.
package etims

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/etims-api/internal/application/approval"
	"github.com/jhoicas/etims-api/internal/application/invoicing"
	"github.com/jhoicas/etims-api/internal/domain"
	"github.com/jhoicas/etims-api/internal/domain/entity"
	"github.com/jhoicas/etims-api/pkg/config"
)

// Both workflows talk to the same gateway.
var (
	_ invoicing.Gateway = (*Client)(nil)
	_ approval.Gateway  = (*Client)(nil)
)

// Client calls the upstream eTIMS service over JSON/HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds the client. The timeout covers the full request; the
// upstream can take several seconds on submissions.
func NewClient(cfg config.EtimsConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── wire types ───────────────────────────────────────────────────────────────

// envelope is the upstream's uniform response wrapper.
type envelope struct {
	Success  bool           `json:"success"`
	Error    string         `json:"error,omitempty"`
	Customer *wireCustomer  `json:"customer,omitempty"`
	Invoices []wireInvoice  `json:"invoices,omitempty"`
}

type wireCustomer struct {
	Pin  string `json:"pin"`
	Name string `json:"name"`
}

type wireInvoice struct {
	InvoiceID   string          `json:"invoice_id,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	BuyerName   string          `json:"buyer_name,omitempty"`
	SellerName  string          `json:"seller_name,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status,omitempty"`
	Items       []wireItem      `json:"items,omitempty"`
}

type wireItem struct {
	ItemName  string          `json:"item_name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
}

type processRequest struct {
	Msisdn    string `json:"msisdn"`
	InvoiceID string `json:"invoice_id"`
	Action    string `json:"action"` // accept | reject
}

// ── invoicing.Gateway ────────────────────────────────────────────────────────

// LookupCustomer resolves a PIN or ID number to a taxpayer identity.
func (c *Client) LookupCustomer(ctx context.Context, pinOrID string) (*invoicing.Customer, error) {
	env, err := c.get(ctx, "/customers/lookup?pin_or_id="+url.QueryEscape(pinOrID))
	if err != nil {
		return nil, err
	}
	if !env.Success || env.Customer == nil {
		return nil, fmt.Errorf("%w: seller not found for %q", domain.ErrNotFound, pinOrID)
	}
	return &invoicing.Customer{Pin: env.Customer.Pin, Name: env.Customer.Name}, nil
}

// SubmitInvoice submits a sales invoice.
func (c *Client) SubmitInvoice(ctx context.Context, req invoicing.SubmitInvoiceRequest) error {
	return c.submit(ctx, "/invoices", req)
}

// SubmitBuyerInitiatedInvoice submits an invoice for seller approval.
func (c *Client) SubmitBuyerInitiatedInvoice(ctx context.Context, req invoicing.SubmitBuyerInitiatedRequest) error {
	return c.submit(ctx, "/invoices/buyer-initiated", req)
}

func (c *Client) submit(ctx context.Context, path string, payload any) error {
	env, err := c.post(ctx, path, payload)
	if err != nil {
		return err
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "submission rejected by eTIMS"
		}
		return fmt.Errorf("etims: %s", msg)
	}
	return nil
}

// ── approval.Gateway ─────────────────────────────────────────────────────────

// FetchInvoices returns all invoices associated with a phone number. A phone
// that yields nothing is an empty result, not an error.
func (c *Client) FetchInvoices(ctx context.Context, phone string) ([]entity.FetchedInvoice, error) {
	env, err := c.get(ctx, "/invoices?phone="+url.QueryEscape(phone))
	if err != nil {
		return nil, err
	}
	if !env.Success {
		if looksLikeNotFound(env.Error) {
			return []entity.FetchedInvoice{}, nil
		}
		return nil, fmt.Errorf("etims: %s", env.Error)
	}
	out := make([]entity.FetchedInvoice, 0, len(env.Invoices))
	for _, w := range env.Invoices {
		inv := entity.FetchedInvoice{
			InvoiceID:   w.InvoiceID,
			Reference:   w.Reference,
			BuyerName:   w.BuyerName,
			SellerName:  w.SellerName,
			TotalAmount: w.TotalAmount,
			Status:      strings.ToLower(w.Status),
		}
		for _, it := range w.Items {
			inv.Items = append(inv.Items, entity.FetchedItem{
				ItemName:  it.ItemName,
				UnitPrice: it.UnitPrice,
				Quantity:  it.Quantity,
			})
		}
		out = append(out, inv)
	}
	return out, nil
}

// ProcessBuyerInvoice forwards the seller's decision.
func (c *Client) ProcessBuyerInvoice(ctx context.Context, phone, invoiceID, action string) error {
	env, err := c.post(ctx, "/invoices/process", processRequest{
		Msisdn:    phone,
		InvoiceID: invoiceID,
		Action:    action,
	})
	if err != nil {
		return err
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "decision rejected by eTIMS"
		}
		return fmt.Errorf("etims: %s", msg)
	}
	return nil
}

// FetchInvoicePDF retrieves the upstream's rendering of the invoice.
func (c *Client) FetchInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/invoices/"+url.PathEscape(invoiceID)+"/pdf", nil)
	if err != nil {
		return nil, fmt.Errorf("etims: build request: %w", err)
	}
	c.authorize(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: pdf fetch returned HTTP %d", domain.ErrUnavailable, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// ── transport ────────────────────────────────────────────────────────────────

func (c *Client) get(ctx context.Context, path string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("etims: build request: %w", err)
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, payload any) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("etims: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("etims: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*envelope, error) {
	c.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrUnavailable, err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: eTIMS returned HTTP %d", domain.ErrUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: malformed eTIMS response: %v", domain.ErrUnavailable, err)
	}
	return &env, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func looksLikeNotFound(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "not found") || strings.Contains(m, "no invoices")
}
