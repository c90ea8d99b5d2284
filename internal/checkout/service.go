package checkout

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sivakasi-crackers/internal/cart"
	"github.com/noah-isme/sivakasi-crackers/internal/common"
	"github.com/noah-isme/sivakasi-crackers/internal/events"
	"github.com/noah-isme/sivakasi-crackers/internal/obs"
	"github.com/noah-isme/sivakasi-crackers/internal/order"
	"github.com/noah-isme/sivakasi-crackers/internal/pricing"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the cart.
var ErrEmptyCart = &common.AppError{
	Code:       "EMPTY_CART",
	Message:    "cart is empty",
	HTTPStatus: http.StatusConflict,
	Err:        errors.New("checkout: cart is empty"),
}

var fieldMessages = map[string]string{
	"name.required":    "Name is required",
	"phone.required":   "Phone number is required",
	"phone.phone10":    "Please enter a valid 10-digit phone number",
	"address.required": "Address is required",
	"email.email":      "Please enter a valid email address",
}

// Service turns the current cart into an order.
type Service struct {
	cart      *cart.Store
	bus       *events.Bus
	validate  *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
	gstBps    int
	clearCart bool
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Cart      *cart.Store
	Events    *events.Bus
	Validator *validator.Validate
	Logger    zerolog.Logger
	Now       func() time.Time
	NewID     func() string
	GSTBps    int
	// ClearCart empties the cart once the order has been built.
	ClearCart bool
}

// NewService constructs a checkout Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Cart == nil {
		return nil, errors.New("checkout: cart store is required")
	}
	if cfg.GSTBps < 0 {
		return nil, errors.New("checkout: gst rate must not be negative")
	}
	v := cfg.Validator
	if v == nil {
		v = common.NewValidator()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = func() string { return order.NewID(nil) }
	}
	return &Service{
		cart:      cfg.Cart,
		bus:       cfg.Events,
		validate:  v,
		logger:    cfg.Logger,
		now:       now,
		newID:     newID,
		gstBps:    cfg.GSTBps,
		clearCart: cfg.ClearCart,
	}, nil
}

// GSTBps reports the configured tax rate.
func (s *Service) GSTBps() int { return s.gstBps }

// PlaceOrder validates the customer, prices the cart snapshot and emits order.placed.
func (s *Service) PlaceOrder(ctx context.Context, customer order.Customer) (order.Order, error) {
	customer = normalize(customer)
	if err := s.validate.StructCtx(ctx, customer); err != nil {
		if fields := common.FieldErrors(err, fieldMessages); len(fields) > 0 {
			s.record("invalid")
			return order.Order{}, common.ValidationError(fields)
		}
		return order.Order{}, err
	}

	var snap cart.Snapshot
	if s.clearCart {
		snap = s.cart.Checkout()
	} else {
		snap = s.cart.Snapshot()
	}
	if len(snap.Items) == 0 {
		s.record("empty_cart")
		return order.Order{}, ErrEmptyCart
	}

	o := order.New(s.newID(), s.now(), customer, snap.Items, s.gstBps)
	if s.bus != nil {
		payload := map[string]any{
			"orderId":    o.ID,
			"itemCount":  o.Summary.ItemCount,
			"total":      pricing.Round2(o.Summary.Total),
			"gst":        pricing.Round2(o.Tax.GST),
			"grandTotal": pricing.Round2(o.Tax.GrandTotal),
		}
		if _, err := s.bus.Emit(ctx, events.TopicOrderPlaced, o.ID, payload); err != nil {
			s.logger.Warn().Err(err).Str("order_id", o.ID).Msg("order event delivery failed")
		}
	}
	s.record("placed")
	if obs.OrderValue != nil {
		obs.OrderValue.Observe(o.Tax.GrandTotal)
	}
	return o, nil
}

func (s *Service) record(result string) {
	if obs.OrdersPlacedTotal != nil {
		obs.OrdersPlacedTotal.WithLabelValues(result).Inc()
	}
}

func normalize(c order.Customer) order.Customer {
	return order.Customer{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}
