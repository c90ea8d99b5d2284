package checkout

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/sivakasi-crackers/internal/common"
	"github.com/noah-isme/sivakasi-crackers/internal/invoice"
	"github.com/noah-isme/sivakasi-crackers/internal/obs"
	"github.com/noah-isme/sivakasi-crackers/internal/order"
	"github.com/noah-isme/sivakasi-crackers/internal/pricing"
)

// Totals are the rounded order amounts shown to the customer.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount"`
	Total      float64 `json:"total"`
	GSTRate    string  `json:"gstRate"`
	GST        float64 `json:"gst"`
	GrandTotal float64 `json:"grandTotal"`
	ItemCount  int     `json:"itemCount"`
}

// Output is the JSON checkout response.
type Output struct {
	Order    order.Order `json:"order"`
	Totals   Totals      `json:"totals"`
	Currency string      `json:"currency,omitempty"`
	ShareURL string      `json:"shareUrl"`
}

// Handler exposes checkout over HTTP.
type Handler struct {
	Svc      *Service
	Shop     invoice.Shop
	Currency string
	Logger   zerolog.Logger
}

// Checkout handles POST /api/v1/checkout. Clients sending Accept: application/pdf receive
// the invoice document instead of JSON.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	var payload order.Customer
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	o, err := h.Svc.PlaceOrder(r.Context(), payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if wantsPDF(r) {
		var buf bytes.Buffer
		if err := invoice.RenderPDF(&buf, h.Shop, o); err != nil {
			obs.LoggerFrom(r.Context(), h.Logger).Error().Err(err).Str("order_id", o.ID).Msg("render invoice")
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to render invoice", nil)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": "invoice-" + o.ID + ".pdf"}))
		w.Header().Set("X-Order-ID", o.ID)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(buf.Bytes())
		return
	}

	common.Data(w, http.StatusCreated, Output{
		Order:    o,
		Totals:   NewTotals(o),
		Currency: h.Currency,
		ShareURL: invoice.ShareURL("", invoice.Message(h.Shop, o)),
	})
}

// NewTotals rounds order amounts for display.
func NewTotals(o order.Order) Totals {
	return Totals{
		Subtotal:   pricing.Round2(o.Summary.Subtotal),
		Discount:   pricing.Round2(o.Summary.Discount),
		Total:      pricing.Round2(o.Summary.Total),
		GSTRate:    pricing.RatePercent(o.Tax.RateBps) + "%",
		GST:        pricing.Round2(o.Tax.GST),
		GrandTotal: pricing.Round2(o.Tax.GrandTotal),
		ItemCount:  o.Summary.ItemCount,
	}
}

func wantsPDF(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == "application/pdf" {
			return true
		}
	}
	return false
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unknown error", nil)
		return
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.WriteAppError(w, appErr)
		return
	}
	obs.LoggerFrom(r.Context(), h.Logger).Error().Err(err).Msg("checkout failed")
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
