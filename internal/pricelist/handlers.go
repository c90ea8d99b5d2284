package pricelist

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/noah-isme/sivakasi-crackers/internal/cart"
	"github.com/noah-isme/sivakasi-crackers/internal/catalog"
	"github.com/noah-isme/sivakasi-crackers/internal/common"
	"github.com/noah-isme/sivakasi-crackers/internal/events"
	"github.com/noah-isme/sivakasi-crackers/internal/invoice"
	"github.com/noah-isme/sivakasi-crackers/internal/obs"
	"github.com/noah-isme/sivakasi-crackers/internal/pricing"
)

// Handler exposes the price list over HTTP.
type Handler struct {
	Svc      *Service
	Cart     *cart.Store
	Shop     invoice.Shop
	Events   *events.Bus
	Currency string
	Logger   zerolog.Logger
	// OnMutation is called with "add" once per line pushed into the cart.
	OnMutation func(op string)
}

type selectionsPayload struct {
	Items []Selection `json:"items"`
}

// List handles GET /api/v1/price-list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "price list not configured", nil)
		return
	}
	common.Data(w, http.StatusOK, map[string]any{
		"groups":       h.Svc.Groups(),
		"minimumOrder": h.Svc.MinimumOrder(),
		"currency":     h.Currency,
	})
}

// Quote handles POST /api/v1/price-list/quote and returns a share link to the shop.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "price list not configured", nil)
		return
	}
	payload, ok := decode(w, r)
	if !ok {
		return
	}
	q, err := h.Svc.Quote(payload.Items)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.Events != nil {
		_, emitErr := h.Events.Emit(r.Context(), events.TopicQuoteShared, "price-list", map[string]any{
			"totalProducts": q.TotalProducts,
			"finalAmount":   pricing.Round2(q.FinalAmount),
		})
		if emitErr != nil {
			obs.LoggerFrom(r.Context(), h.Logger).Warn().Err(emitErr).Msg("quote event delivery failed")
		}
	}
	common.Data(w, http.StatusOK, map[string]any{
		"quote":    round(q),
		"shareUrl": invoice.ShareURL(h.Shop.WhatsAppNumber, Message(h.Shop.Name, q)),
	})
}

// AddToCart handles POST /api/v1/price-list/cart, adding every selected row to the cart.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil || h.Cart == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "price list not configured", nil)
		return
	}
	payload, ok := decode(w, r)
	if !ok {
		return
	}
	lines, err := h.Svc.Resolve(payload.Items)
	if err != nil {
		writeError(w, err)
		return
	}
	for _, l := range lines {
		h.Cart.AddItem(l.Product, l.Quantity)
		if h.OnMutation != nil {
			h.OnMutation("add")
		}
	}
	common.Data(w, http.StatusOK, map[string]any{
		"added": len(lines),
		"cart":  cart.NewView(h.Cart.Snapshot(), h.Currency),
	})
}

func decode(w http.ResponseWriter, r *http.Request) (selectionsPayload, bool) {
	var payload selectionsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return payload, false
	}
	return payload, true
}

func round(q Quote) Quote {
	out := q
	out.Lines = make([]Line, len(q.Lines))
	for i, l := range q.Lines {
		l.DiscountedPrice = pricing.Round2(l.DiscountedPrice)
		l.Savings = pricing.Round2(l.Savings)
		l.Total = pricing.Round2(l.Total)
		out.Lines[i] = l
	}
	out.TotalSavings = pricing.Round2(q.TotalSavings)
	out.FinalAmount = pricing.Round2(q.FinalAmount)
	return out
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.WriteAppError(w, appErr)
		return
	}
	if errors.Is(err, catalog.ErrNotFound) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
