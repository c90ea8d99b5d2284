// Package contact accepts enquiries from the contact page.
package contact

import (
	"context"
	"strings"
	"time"
	"unicode"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sivakasi-crackers/internal/common"
	"github.com/noah-isme/sivakasi-crackers/internal/events"
	"github.com/noah-isme/sivakasi-crackers/internal/obs"
)

// Order types a customer can enquire about.
const (
	OrderTypeRetail    = "retail"
	OrderTypeWholesale = "wholesale"
)

var fieldMessages = map[string]string{
	"name.required":    "Name is required",
	"email.required":   "Email is required",
	"email.email":      "Email is invalid",
	"phone.required":   "Phone number is required",
	"phone.phone10":    "Please enter a valid 10-digit phone number",
	"message.required": "Message is required",
	"orderType.oneof":  "Order type must be retail or wholesale",
}

// Form is a contact page submission.
type Form struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,phone10"`
	Message   string `json:"message" validate:"required"`
	OrderType string `json:"orderType" validate:"oneof=retail wholesale"`
}

// Submission is an accepted form with its receipt metadata.
type Submission struct {
	ID         uuid.UUID `json:"id"`
	ReceivedAt time.Time `json:"receivedAt"`
	Form       Form      `json:"form"`
}

// Service validates enquiries and publishes them as contact.received events.
type Service struct {
	bus      *events.Bus
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Events    *events.Bus
	Validator *validator.Validate
	Logger    zerolog.Logger
	Now       func() time.Time
}

// NewService constructs a contact Service.
func NewService(cfg ServiceConfig) *Service {
	v := cfg.Validator
	if v == nil {
		v = common.NewValidator()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{bus: cfg.Events, validate: v, logger: cfg.Logger, now: now}
}

// Submit validates f and emits it. Submissions are not stored.
func (s *Service) Submit(ctx context.Context, f Form) (Submission, error) {
	f = Normalize(f)
	if err := s.validate.StructCtx(ctx, f); err != nil {
		if fields := common.FieldErrors(err, fieldMessages); len(fields) > 0 {
			return Submission{}, common.ValidationError(fields)
		}
		return Submission{}, err
	}
	sub := Submission{ID: uuid.New(), ReceivedAt: s.now().UTC(), Form: f}
	if s.bus != nil {
		if _, err := s.bus.Emit(ctx, events.TopicContactReceived, sub.ID.String(), sub); err != nil {
			s.logger.Warn().Err(err).Str("submission_id", sub.ID.String()).Msg("contact event delivery failed")
		}
	}
	if obs.ContactSubmissionsTotal != nil {
		obs.ContactSubmissionsTotal.WithLabelValues(f.OrderType).Inc()
	}
	return sub, nil
}

// Normalize trims fields, strips phone formatting and defaults the order type to retail.
func Normalize(f Form) Form {
	out := Form{
		Name:      strings.TrimSpace(f.Name),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		Message:   strings.TrimSpace(f.Message),
		OrderType: strings.ToLower(strings.TrimSpace(f.OrderType)),
	}
	if digits := digitsOnly(out.Phone); digits != "" {
		out.Phone = digits
	}
	if out.OrderType == "" {
		out.OrderType = OrderTypeRetail
	}
	return out
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
