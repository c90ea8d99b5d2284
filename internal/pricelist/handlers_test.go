package pricelist_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sivakasi-crackers/internal/cart"
	"github.com/noah-isme/sivakasi-crackers/internal/catalog"
	"github.com/noah-isme/sivakasi-crackers/internal/events"
	"github.com/noah-isme/sivakasi-crackers/internal/invoice"
	"github.com/noah-isme/sivakasi-crackers/internal/pricelist"
)

func newHandler(t *testing.T) (*pricelist.Handler, *cart.Store, *[]events.Event) {
	t.Helper()
	cat, err := catalog.NewService(catalog.ServiceConfig{})
	require.NoError(t, err)
	svc, err := pricelist.NewService(pricelist.ServiceConfig{Catalog: cat})
	require.NoError(t, err)
	var emitted []events.Event
	bus := &events.Bus{Notifiers: []events.Notifier{events.NotifierFunc(func(_ context.Context, ev events.Event) error {
		emitted = append(emitted, ev)
		return nil
	})}}
	store := cart.NewStore()
	return &pricelist.Handler{Svc: svc, Cart: store, Shop: invoice.DefaultShop(), Events: bus, Currency: "INR"}, store, &emitted
}

func TestList(t *testing.T) {
	h, _, _ := newHandler(t)
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/price-list", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Groups       []catalog.Group `json:"groups"`
			MinimumOrder float64         `json:"minimumOrder"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Groups, 5)
	require.Equal(t, 3000.0, resp.Data.MinimumOrder)
}

func TestQuoteHandler(t *testing.T) {
	h, store, emitted := newHandler(t)
	rec := httptest.NewRecorder()
	h.Quote(rec, httptest.NewRequest(http.MethodPost, "/api/v1/price-list/quote",
		strings.NewReader(`{"items":[{"productId":"7","quantity":3}]}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Quote    pricelist.Quote `json:"quote"`
			ShareURL string          `json:"shareUrl"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 240.0, resp.Data.Quote.FinalAmount)
	link, err := url.Parse(resp.Data.ShareURL)
	require.NoError(t, err)
	require.Equal(t, "/919363453590", link.Path)
	require.Contains(t, link.Query().Get("text"), "Final Amount")

	require.Len(t, *emitted, 1)
	require.Equal(t, events.TopicQuoteShared, (*emitted)[0].Topic)
	require.Equal(t, 0, store.ItemCount())
}

func TestQuoteHandlerErrors(t *testing.T) {
	h, _, _ := newHandler(t)
	rec := httptest.NewRecorder()
	h.Quote(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items":[{"productId":"7","quantity":0}]}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Please select at least one product")

	rec = httptest.NewRecorder()
	h.Quote(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items":[{"productId":"x","quantity":1}]}`)))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Quote(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`[`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddToCart(t *testing.T) {
	h, store, _ := newHandler(t)
	var ops []string
	h.OnMutation = func(op string) { ops = append(ops, op) }
	store.AddItem(catalog.Product{ID: "7", Name: "30cm Gold Sparklers", Price: 100, DiscountPercentage: 20}, 1)

	rec := httptest.NewRecorder()
	h.AddToCart(rec, httptest.NewRequest(http.MethodPost, "/api/v1/price-list/cart",
		strings.NewReader(`{"items":[{"productId":"7","quantity":2},{"productId":"1","quantity":1},{"productId":"5","quantity":0}]}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Added int       `json:"added"`
			Cart  cart.View `json:"cart"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Data.Added)
	require.Equal(t, 4, resp.Data.Cart.ItemCount)
	item, ok := store.Item("7")
	require.True(t, ok)
	require.Equal(t, 3, item.Quantity)
	require.Equal(t, []string{"add", "add"}, ops)
}
