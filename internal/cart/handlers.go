package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/sivakasi-crackers/internal/catalog"
	"github.com/noah-isme/sivakasi-crackers/internal/common"
	"github.com/noah-isme/sivakasi-crackers/internal/pricing"
)

// Handler wires the cart store to HTTP.
type Handler struct {
	Store    *Store
	Catalog  *catalog.Service
	Currency string
	// OnMutation is called with the operation name after each accepted mutation request.
	OnMutation func(op string)
	// Heartbeat is the interval of keep-alive comments on the stream.
	// Zero means DefaultHeartbeat.
	Heartbeat time.Duration
	// Closing ends open streams when it is closed, e.g. on server shutdown.
	Closing <-chan struct{}
}

// DefaultHeartbeat keeps idle proxies from dropping quiet streams.
const DefaultHeartbeat = 30 * time.Second

// ItemView is the presentation shape of a line item. Amounts are rounded to paise.
type ItemView struct {
	LineItem
	DiscountedPrice float64 `json:"discountedPrice"`
	LineTotal       float64 `json:"lineTotal"`
}

// View is the presentation shape of a cart snapshot.
type View struct {
	Items     []ItemView `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	Discount  float64    `json:"discount"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
	Currency  string     `json:"currency,omitempty"`
}

// NewView rounds a snapshot for display.
func NewView(snap Snapshot, currency string) View {
	items := make([]ItemView, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, ItemView{
			LineItem:        it,
			DiscountedPrice: pricing.Round2(it.DiscountedUnitPrice()),
			LineTotal:       pricing.Round2(it.line().Total()),
		})
	}
	return View{
		Items:     items,
		Subtotal:  pricing.Round2(snap.Subtotal),
		Discount:  pricing.Round2(snap.Discount),
		Total:     pricing.Round2(snap.Total),
		ItemCount: snap.ItemCount,
		Currency:  currency,
	}
}

// Get returns cart contents and totals.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart store not configured", nil)
		return
	}
	h.writeCart(w, http.StatusOK)
}

// AddItem adds or increments a cart line item.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil || h.Catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart store not configured", nil)
		return
	}
	var payload struct {
		ProductID string `json:"productId"`
		Quantity  *int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	payload.ProductID = strings.TrimSpace(payload.ProductID)
	if payload.ProductID == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "productId is required", nil)
		return
	}
	qty := 1
	if payload.Quantity != nil {
		qty = *payload.Quantity
	}
	if qty < 1 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "quantity must be at least 1", nil)
		return
	}
	product, err := h.Catalog.Product(payload.ProductID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.Store.AddItem(product, qty)
	h.mutated("add")
	h.writeCart(w, http.StatusOK)
}

// UpdateItem sets the quantity for a line item. Negative quantities are treated as zero.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart store not configured", nil)
		return
	}
	productID := chi.URLParam(r, "productId")
	var payload struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if payload.Quantity == nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "quantity is required", nil)
		return
	}
	qty := *payload.Quantity
	if qty < 0 {
		qty = 0
	}
	h.Store.UpdateQuantity(productID, qty)
	h.mutated("update")
	h.writeCart(w, http.StatusOK)
}

// RemoveItem deletes a cart line item.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart store not configured", nil)
		return
	}
	h.Store.RemoveItem(chi.URLParam(r, "productId"))
	h.mutated("remove")
	h.writeCart(w, http.StatusOK)
}

// Clear empties the cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart store not configured", nil)
		return
	}
	h.Store.Clear()
	h.mutated("clear")
	h.writeCart(w, http.StatusOK)
}

// Stream pushes the cart as Server-Sent Events: the current state first, then every change.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart store not configured", nil)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "streaming unsupported", nil)
		return
	}

	// Capacity one: a slow client only ever sees the latest state.
	updates := make(chan Snapshot, 1)
	unsubscribe := h.Store.Subscribe(func(snap Snapshot) {
		for {
			select {
			case updates <- snap:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	headers := w.Header()
	headers.Set("Content-Type", "text/event-stream")
	headers.Set("Cache-Control", "no-cache")
	headers.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := h.writeEvent(w, h.Store.Snapshot()); err != nil {
		return
	}
	flusher.Flush()

	interval := h.Heartbeat
	if interval <= 0 {
		interval = DefaultHeartbeat
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.Closing:
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case snap := <-updates:
			if err := h.writeEvent(w, snap); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Handler) writeEvent(w http.ResponseWriter, snap Snapshot) error {
	data, err := json.Marshal(NewView(snap, h.Currency))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: cart\ndata: %s\n\n", data)
	return err
}

func (h *Handler) writeCart(w http.ResponseWriter, status int) {
	common.Data(w, status, NewView(h.Store.Snapshot(), h.Currency))
}

func (h *Handler) mutated(op string) {
	if h.OnMutation != nil {
		h.OnMutation(op)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.WriteAppError(w, appErr)
		return
	}
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}
}
