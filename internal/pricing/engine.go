package pricing

import (
	"math"
	"strconv"
)

// DefaultGSTBps is the goods and services tax applied on invoices, in basis points.
const DefaultGSTBps = 1800

// Line describes a priced line item. Amounts are rupees and stay unrounded.
type Line struct {
	Price              float64
	DiscountPercentage float64
	Quantity           int
}

// Summary aggregates computed pricing components.
type Summary struct {
	Subtotal  float64
	Discount  float64
	Total     float64
	ItemCount int
}

// Tax holds the GST breakdown computed on top of a discounted total.
type Tax struct {
	RateBps    int
	GST        float64
	GrandTotal float64
}

// DiscountedUnitPrice returns price after applying a percentage discount. Never negative.
func DiscountedUnitPrice(price, discountPercentage float64) float64 {
	v := price * (1 - discountPercentage/100)
	if v < 0 {
		return 0
	}
	return v
}

// Subtotal is the pre-discount amount for the line.
func (l Line) Subtotal() float64 {
	if l.Quantity <= 0 {
		return 0
	}
	return l.Price * float64(l.Quantity)
}

// Discount is the amount taken off the line subtotal.
func (l Line) Discount() float64 {
	if l.Quantity <= 0 {
		return 0
	}
	return (l.Price * l.DiscountPercentage / 100) * float64(l.Quantity)
}

// Total is the discounted amount for the line.
func (l Line) Total() float64 {
	return l.Subtotal() - l.Discount()
}

// Summarize calculates totals over the provided lines.
func Summarize(lines []Line) Summary {
	var s Summary
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		s.Subtotal += l.Subtotal()
		s.Discount += l.Discount()
		s.ItemCount += l.Quantity
	}
	s.Total = s.Subtotal - s.Discount
	return s
}

// ApplyGST computes GST on the discounted total.
func ApplyGST(total float64, rateBps int) Tax {
	if rateBps < 0 {
		rateBps = 0
	}
	gst := total * float64(rateBps) / 10000
	return Tax{RateBps: rateBps, GST: gst, GrandTotal: total + gst}
}

// RatePercent renders a basis point rate as a percentage label, e.g. 1800 -> "18".
func RatePercent(bps int) string {
	return strconv.FormatFloat(float64(bps)/100, 'f', -1, 64)
}

// Round2 rounds to paise. Only for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Format renders an amount with two decimals.
func Format(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}
