package checkout_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sivakasi-crackers/internal/cart"
	"github.com/noah-isme/sivakasi-crackers/internal/catalog"
	"github.com/noah-isme/sivakasi-crackers/internal/checkout"
	"github.com/noah-isme/sivakasi-crackers/internal/invoice"
	"github.com/noah-isme/sivakasi-crackers/internal/pricing"
)

type checkoutResponse struct {
	Data checkout.Output `json:"data"`
}

func newHandler(t *testing.T) (*checkout.Handler, *cart.Store) {
	t.Helper()
	store := cart.NewStore()
	svc, err := checkout.NewService(checkout.ServiceConfig{
		Cart:      store,
		Now:       func() time.Time { return time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC) },
		NewID:     func() string { return "ORD654321" },
		GSTBps:    pricing.DefaultGSTBps,
		ClearCart: true,
	})
	require.NoError(t, err)
	return &checkout.Handler{Svc: svc, Shop: invoice.DefaultShop(), Currency: "INR"}, store
}

func fill(store *cart.Store) {
	store.AddItem(catalog.Product{ID: "1", Name: "12 Shots Multicolour", Price: 450, DiscountPercentage: 50}, 2)
}

const body = `{"name":"Meena","phone":"9123456780","address":"4 Car Street, Sivakasi"}`

func TestCheckoutJSON(t *testing.T) {
	h, store := newHandler(t)
	fill(store)

	rec := httptest.NewRecorder()
	h.Checkout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp checkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ORD654321", resp.Data.Order.ID)
	require.Len(t, resp.Data.Order.Lines, 1)
	require.Equal(t, checkout.Totals{
		Subtotal:   900,
		Discount:   450,
		Total:      450,
		GSTRate:    "18%",
		GST:        81,
		GrandTotal: 531,
		ItemCount:  2,
	}, resp.Data.Totals)
	require.Equal(t, "INR", resp.Data.Currency)

	link, err := url.Parse(resp.Data.ShareURL)
	require.NoError(t, err)
	require.Equal(t, "wa.me", link.Host)
	require.Contains(t, link.Query().Get("text"), "Invoice #: ORD654321")
	require.Equal(t, 0, store.ItemCount())
}

func TestCheckoutPDF(t *testing.T) {
	h, store := newHandler(t)
	fill(store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Accept", "text/html, application/pdf;q=0.9")
	rec := httptest.NewRecorder()
	h.Checkout(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.Equal(t, "ORD654321", rec.Header().Get("X-Order-ID"))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestCheckoutErrors(t *testing.T) {
	h, store := newHandler(t)

	rec := httptest.NewRecorder()
	h.Checkout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body)))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "EMPTY_CART")

	fill(store)
	rec = httptest.NewRecorder()
	h.Checkout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"name":"Meena","phone":"12","address":"x"}`)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Please enter a valid 10-digit phone number")

	rec = httptest.NewRecorder()
	h.Checkout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	(&checkout.Handler{}).Checkout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body)))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
