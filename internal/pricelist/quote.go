// Package pricelist prices bulk selections from the printable price list.
package pricelist

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/noah-isme/sivakasi-crackers/internal/catalog"
	"github.com/noah-isme/sivakasi-crackers/internal/common"
	"github.com/noah-isme/sivakasi-crackers/internal/pricing"
)

// DefaultMinimumOrder is the advertised minimum order value in rupees.
const DefaultMinimumOrder = 3000

// ErrNothingSelected is returned when every selection has a zero quantity.
var ErrNothingSelected = &common.AppError{
	Code:       "BAD_REQUEST",
	Message:    "Please select at least one product",
	HTTPStatus: http.StatusBadRequest,
	Err:        errors.New("pricelist: nothing selected"),
}

// Selection is a quantity typed against a price list row.
type Selection struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Line is a priced selection.
type Line struct {
	Product         catalog.Product `json:"product"`
	Quantity        int             `json:"quantity"`
	DiscountedPrice float64         `json:"discountedPrice"`
	Savings         float64         `json:"savings"`
	Total           float64         `json:"total"`
}

// Quote totals a set of selections. Amounts are unrounded.
type Quote struct {
	Lines         []Line  `json:"lines"`
	TotalProducts int     `json:"totalProducts"`
	TotalSavings  float64 `json:"totalSavings"`
	FinalAmount   float64 `json:"finalAmount"`
	MinimumOrder  float64 `json:"minimumOrder"`
	MeetsMinimum  bool    `json:"meetsMinimum"`
}

// Service builds quotes against the catalog.
type Service struct {
	catalog  *catalog.Service
	minOrder float64
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Catalog      *catalog.Service
	MinimumOrder float64
}

// NewService constructs a Service. A zero minimum falls back to DefaultMinimumOrder.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("pricelist: catalog is required")
	}
	if cfg.MinimumOrder < 0 {
		return nil, errors.New("pricelist: minimum order must not be negative")
	}
	minOrder := cfg.MinimumOrder
	if minOrder == 0 {
		minOrder = DefaultMinimumOrder
	}
	return &Service{catalog: cfg.Catalog, minOrder: minOrder}, nil
}

// MinimumOrder reports the configured minimum order value.
func (s *Service) MinimumOrder() float64 { return s.minOrder }

// Groups returns the catalog grouped by category for the price list table.
func (s *Service) Groups() []catalog.Group { return s.catalog.Grouped() }

// Resolve looks up each selection, clamping negative quantities to zero. When a product
// appears more than once the last quantity wins. Rows with zero quantity are dropped.
func (s *Service) Resolve(selections []Selection) ([]Line, error) {
	index := make(map[string]int, len(selections))
	lines := make([]Line, 0, len(selections))
	for _, sel := range selections {
		id := strings.TrimSpace(sel.ProductID)
		product, err := s.catalog.Product(id)
		if err != nil {
			return nil, &common.AppError{
				Code:       "NOT_FOUND",
				Message:    fmt.Sprintf("product %q not found", id),
				HTTPStatus: http.StatusNotFound,
				Err:        err,
				Details:    map[string]any{"productId": id},
			}
		}
		qty := max(sel.Quantity, 0)
		if i, ok := index[id]; ok {
			lines[i].Quantity = qty
			continue
		}
		index[id] = len(lines)
		lines = append(lines, Line{Product: product, Quantity: qty})
	}
	out := lines[:0]
	for _, l := range lines {
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil, ErrNothingSelected
	}
	return out, nil
}

// Quote prices the selections.
func (s *Service) Quote(selections []Selection) (Quote, error) {
	lines, err := s.Resolve(selections)
	if err != nil {
		return Quote{}, err
	}
	q := Quote{Lines: lines, MinimumOrder: s.minOrder}
	for i := range q.Lines {
		l := &q.Lines[i]
		pl := pricing.Line{Price: l.Product.Price, DiscountPercentage: l.Product.DiscountPercentage, Quantity: l.Quantity}
		l.DiscountedPrice = pricing.DiscountedUnitPrice(l.Product.Price, l.Product.DiscountPercentage)
		l.Savings = pl.Discount()
		l.Total = pl.Total()
		q.TotalProducts += l.Quantity
		q.TotalSavings += l.Savings
		q.FinalAmount += l.Total
	}
	q.MeetsMinimum = q.FinalAmount >= s.minOrder
	return q, nil
}

// Message renders the quote as WhatsApp text.
func Message(shopName string, q Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*New Order from %s*\n\n", shopName)
	b.WriteString("*Selected Products:*\n")
	for _, l := range q.Lines {
		fmt.Fprintf(&b, "%s (%d x ₹%s) = ₹%s\n", l.Product.Name, l.Quantity,
			pricing.Format(l.DiscountedPrice), pricing.Format(l.Total))
	}
	b.WriteString("\n*Order Summary:*\n")
	fmt.Fprintf(&b, "Total Products: %d\n", q.TotalProducts)
	fmt.Fprintf(&b, "Total Savings: ₹%s\n", pricing.Format(q.TotalSavings))
	fmt.Fprintf(&b, "*Final Amount: ₹%s*\n\n", pricing.Format(q.FinalAmount))
	fmt.Fprintf(&b, "Minimum Order Value: Rs.%s\n\n", strconv.FormatFloat(q.MinimumOrder, 'f', -1, 64))
	fmt.Fprintf(&b, "Thank you for choosing %s!", shopName)
	return b.String()
}
