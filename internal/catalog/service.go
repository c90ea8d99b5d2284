package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/noah-isme/sivakasi-crackers/internal/common"
)

// ErrNotFound indicates the requested product or category does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Product is an immutable catalog record.
type Product struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	Unit               string  `json:"unit"`
	Price              float64 `json:"price"`
	DiscountPercentage float64 `json:"discountPercentage"`
	ImageURL           string  `json:"imageUrl"`
	StockQuantity      int     `json:"stockQuantity"`
	IsPopular          bool    `json:"isPopular"`
	IsNewArrival       bool    `json:"isNewArrival"`
}

// Category groups products on the storefront.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Filter narrows product listings. Zero values match everything.
type Filter struct {
	Category   string
	Query      string
	Popular    *bool
	NewArrival *bool
}

// Group is a category with its products, in catalog order.
type Group struct {
	Category Category  `json:"category"`
	Products []Product `json:"products"`
}

// Service serves the in-memory catalog. It is read-only after construction.
type Service struct {
	categories []Category
	products   []Product
	byID       map[string]int
}

// ServiceConfig groups Service dependencies. Empty slices fall back to the built-in catalog.
type ServiceConfig struct {
	Categories []Category
	Products   []Product
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	categories := cfg.Categories
	if len(categories) == 0 {
		categories = defaultCategories
	}
	products := cfg.Products
	if len(products) == 0 {
		products = defaultProducts
	}
	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		known[c.ID] = struct{}{}
	}
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("catalog: product at index %d has no id", i)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		if _, ok := known[p.Category]; !ok {
			return nil, fmt.Errorf("catalog: product %q references unknown category %q", p.ID, p.Category)
		}
		if p.Price < 0 || p.DiscountPercentage < 0 || p.DiscountPercentage > 100 || p.StockQuantity < 0 {
			return nil, fmt.Errorf("catalog: product %q has invalid pricing or stock", p.ID)
		}
		byID[p.ID] = i
	}
	return &Service{
		categories: append([]Category(nil), categories...),
		products:   append([]Product(nil), products...),
		byID:       byID,
	}, nil
}

// Categories returns all categories in display order.
func (s *Service) Categories() []Category {
	return append([]Category(nil), s.categories...)
}

// Category returns a category by id.
func (s *Service) Category(id string) (Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

// Product returns a product by id.
func (s *Service) Product(id string) (Product, error) {
	idx, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return Product{}, ErrNotFound
	}
	return s.products[idx], nil
}

// Count reports the number of products in the catalog.
func (s *Service) Count() int {
	return len(s.products)
}

// Products returns the products matching f in catalog order.
func (s *Service) Products(f Filter) []Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Popular != nil && p.IsPopular != *f.Popular {
			continue
		}
		if f.NewArrival != nil && p.IsNewArrival != *f.NewArrival {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Grouped returns every category with its products, skipping empty categories.
func (s *Service) Grouped() []Group {
	groups := make([]Group, 0, len(s.categories))
	for _, c := range s.categories {
		items := s.Products(Filter{Category: c.ID})
		if len(items) == 0 {
			continue
		}
		groups = append(groups, Group{Category: c, Products: items})
	}
	return groups
}

// ParseFilter normalises raw query values into a Filter.
func ParseFilter(values url.Values) (Filter, error) {
	f := Filter{
		Category: strings.TrimSpace(values.Get("category")),
		Query:    strings.TrimSpace(values.Get("q")),
	}
	if v := strings.TrimSpace(values.Get("popular")); v != "" {
		b, err := parseBool(v)
		if err != nil {
			return f, badRequest("popular", "popular must be true or false", err)
		}
		f.Popular = &b
	}
	if v := strings.TrimSpace(values.Get("new")); v != "" {
		b, err := parseBool(v)
		if err != nil {
			return f, badRequest("new", "new must be true or false", err)
		}
		f.NewArrival = &b
	}
	return f, nil
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean: %s", value)
	}
}

func badRequest(field, message string, err error) *common.AppError {
	return &common.AppError{
		Code:       "BAD_REQUEST",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
		Details: map[string]any{
			"field": field,
		},
	}
}
