// Package order models the ephemeral order produced at checkout. Orders are never stored;
// they exist for the lifetime of a checkout response.
package order

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/noah-isme/sivakasi-crackers/internal/cart"
	"github.com/noah-isme/sivakasi-crackers/internal/pricing"
)

// Customer holds the delivery details captured by the checkout form.
type Customer struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"required,phone10"`
	Address string `json:"address" validate:"required"`
}

// Line is a priced invoice row.
type Line struct {
	ProductID          string  `json:"productId"`
	Name               string  `json:"name"`
	Unit               string  `json:"unit"`
	Quantity           int     `json:"quantity"`
	UnitPrice          float64 `json:"unitPrice"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountedPrice    float64 `json:"discountedPrice"`
	Subtotal           float64 `json:"subtotal"`
	Discount           float64 `json:"discount"`
	GST                float64 `json:"gst"`
	Total              float64 `json:"total"`
}

// Order is an ephemeral order snapshot. Amounts are unrounded.
type Order struct {
	ID       string          `json:"id"`
	PlacedAt time.Time       `json:"placedAt"`
	Customer Customer        `json:"customer"`
	Lines    []Line          `json:"lines"`
	Summary  pricing.Summary `json:"-"`
	Tax      pricing.Tax     `json:"-"`
}

// New builds an order from cart line items. GST is applied per line and on the total.
func New(id string, placedAt time.Time, customer Customer, items []cart.LineItem, gstBps int) Order {
	lines := make([]Line, 0, len(items))
	priced := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		pl := pricing.Line{Price: it.Price, DiscountPercentage: it.DiscountPercentage, Quantity: it.Quantity}
		priced = append(priced, pl)
		lineTax := pricing.ApplyGST(pl.Total(), gstBps)
		lines = append(lines, Line{
			ProductID:          it.ID,
			Name:               it.Name,
			Unit:               it.Unit,
			Quantity:           it.Quantity,
			UnitPrice:          it.Price,
			DiscountPercentage: it.DiscountPercentage,
			DiscountedPrice:    it.DiscountedUnitPrice(),
			Subtotal:           pl.Subtotal(),
			Discount:           pl.Discount(),
			GST:                lineTax.GST,
			Total:              lineTax.GrandTotal,
		})
	}
	summary := pricing.Summarize(priced)
	return Order{
		ID:       id,
		PlacedAt: placedAt,
		Customer: customer,
		Lines:    lines,
		Summary:  summary,
		Tax:      pricing.ApplyGST(summary.Total, gstBps),
	}
}

// NewID returns an order id of the form ORD123456. A nil source uses the global generator.
func NewID(src *rand.Rand) string {
	var n int
	if src != nil {
		n = src.IntN(900000)
	} else {
		n = rand.IntN(900000)
	}
	return fmt.Sprintf("ORD%06d", 100000+n)
}
