package etims

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/etims-api/internal/application/invoicing"
	"github.com/jhoicas/etims-api/internal/domain"
	"github.com/jhoicas/etims-api/pkg/config"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(config.EtimsConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		TimeoutSeconds: 5,
	})
}

func TestLookupCustomer_Found(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/lookup", r.URL.Path)
		assert.Equal(t, "A123456789B", r.URL.Query().Get("pin_or_id"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"success":  true,
			"customer": map[string]string{"pin": "A123456789B", "name": "Acme Traders Ltd"},
		})
	}))
	defer srv.Close()

	cust, err := newTestClient(srv).LookupCustomer(context.Background(), "A123456789B")
	require.NoError(t, err)
	assert.Equal(t, "A123456789B", cust.Pin)
	assert.Equal(t, "Acme Traders Ltd", cust.Name)
}

func TestLookupCustomer_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "customer not found"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).LookupCustomer(context.Background(), "A000000000Z")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitInvoice_Success(t *testing.T) {
	var got invoicing.SubmitInvoiceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invoices", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	err := newTestClient(srv).SubmitInvoice(context.Background(), invoicing.SubmitInvoiceRequest{
		Msisdn:      "254712345678",
		TotalAmount: decimal.NewFromInt(200),
		Items: []invoicing.SubmitItem{
			{ItemName: "Cement", TaxableAmount: decimal.NewFromInt(100), Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "254712345678", got.Msisdn)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Cement", got.Items[0].ItemName)
}

func TestSubmitInvoice_UpstreamRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "invalid taxpayer"})
	}))
	defer srv.Close()

	err := newTestClient(srv).SubmitInvoice(context.Background(), invoicing.SubmitInvoiceRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid taxpayer")
	assert.False(t, errors.Is(err, domain.ErrUnavailable))
}

func TestSubmitInvoice_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := newTestClient(srv).SubmitInvoice(context.Background(), invoicing.SubmitInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestSubmitInvoice_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	err := newTestClient(srv).SubmitInvoice(context.Background(), invoicing.SubmitInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestFetchInvoices_MapsWireFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "254712345678", r.URL.Query().Get("phone"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"invoices": []map[string]any{
				{
					"invoice_id":   "INV-001",
					"buyer_name":   "John Doe",
					"total_amount": "150.50",
					"status":       "Pending",
					"items": []map[string]any{
						{"item_name": "Nails", "unit_price": "75.25", "quantity": 2},
					},
				},
			},
		})
	}))
	defer srv.Close()

	invoices, err := newTestClient(srv).FetchInvoices(context.Background(), "254712345678")
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-001", invoices[0].InvoiceID)
	assert.Equal(t, "pending", invoices[0].Status)
	assert.True(t, invoices[0].TotalAmount.Equal(decimal.RequireFromString("150.50")))
	require.Len(t, invoices[0].Items, 1)
	assert.EqualValues(t, 2, invoices[0].Items[0].Quantity)
}

func TestFetchInvoices_NoneIsEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "no invoices found"})
	}))
	defer srv.Close()

	invoices, err := newTestClient(srv).FetchInvoices(context.Background(), "254700000000")
	require.NoError(t, err)
	assert.Empty(t, invoices)
}

func TestProcessBuyerInvoice_SendsAction(t *testing.T) {
	var got processRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoices/process", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	err := newTestClient(srv).ProcessBuyerInvoice(context.Background(), "254712345678", "INV-001", "accept")
	require.NoError(t, err)
	assert.Equal(t, "accept", got.Action)
	assert.Equal(t, "INV-001", got.InvoiceID)
}

func TestFetchInvoicePDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/invoices/INV-001/pdf" {
			w.Write([]byte("%PDF-1.4 fake"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	data, err := newTestClient(srv).FetchInvoicePDF(context.Background(), "INV-001")
	require.NoError(t, err)
	assert.Contains(t, string(data), "%PDF")

	_, err = newTestClient(srv).FetchInvoicePDF(context.Background(), "INV-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
