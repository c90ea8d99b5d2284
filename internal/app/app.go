// Package app assembles the storefront services and HTTP router.
package app

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	limiter "github.com/ulule/limiter/v3"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/sivakasi-crackers/internal/cart"
	"github.com/noah-isme/sivakasi-crackers/internal/catalog"
	"github.com/noah-isme/sivakasi-crackers/internal/checkout"
	"github.com/noah-isme/sivakasi-crackers/internal/common"
	"github.com/noah-isme/sivakasi-crackers/internal/config"
	"github.com/noah-isme/sivakasi-crackers/internal/contact"
	"github.com/noah-isme/sivakasi-crackers/internal/events"
	"github.com/noah-isme/sivakasi-crackers/internal/health"
	jsonguard "github.com/noah-isme/sivakasi-crackers/internal/http/middleware"
	"github.com/noah-isme/sivakasi-crackers/internal/invoice"
	"github.com/noah-isme/sivakasi-crackers/internal/obs"
	"github.com/noah-isme/sivakasi-crackers/internal/pricelist"
	"github.com/noah-isme/sivakasi-crackers/internal/ratelimit"
	"github.com/noah-isme/sivakasi-crackers/internal/resilience"
	"github.com/noah-isme/sivakasi-crackers/internal/security"
)

// Options carries process-level dependencies created by the entrypoint.
type Options struct {
	Config *config.Config
	Logger zerolog.Logger
	// Redis backs the shared rate limit store. Nil keeps limits in process.
	Redis          *redis.Client
	HTTPMetrics    *obs.HTTPMetrics
	MetricsHandler http.Handler
	Tracing        bool
	Now            func() time.Time
}

// App holds the wired services shared across handlers.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Catalog   *catalog.Service
	Cart      *cart.Store
	Events    *events.Bus
	Validator *validator.Validate
	Limiter   *limiter.Limiter
	// LimitBreaker guards the Redis limit store; nil for the memory store.
	LimitBreaker *resilience.Breaker
	Shop         invoice.Shop
	Checkout     *checkout.Service
	PriceList    *pricelist.Service
	Contact      *contact.Service

	opts        Options
	unsubscribe func()
	closing     chan struct{}
	drainOnce   sync.Once
}

// New wires every service from configuration.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	logger := opts.Logger

	catalogSvc, err := catalog.NewService(catalog.ServiceConfig{})
	if err != nil {
		return nil, fmt.Errorf("app: catalog: %w", err)
	}

	bus := &events.Bus{
		Notifiers: []events.Notifier{
			events.LogNotifier{Logger: logger.With().Str("component", "events").Logger()},
			events.MetricsNotifier{Counter: obs.EventsEmittedTotal},
		},
		Now: opts.Now,
	}

	store := cart.NewStore()
	unsubscribe := store.Subscribe(func(snap cart.Snapshot) {
		if obs.CartItems != nil {
			obs.CartItems.Set(float64(snap.ItemCount))
		}
		if obs.CartValue != nil {
			obs.CartValue.Set(snap.Total)
		}
		logger.Debug().Int("items", snap.ItemCount).Float64("total", snap.Total).Msg("cart changed")
	})

	v := common.NewValidator()

	shop := invoice.DefaultShop()
	if cfg.ShopName != "" {
		shop.Name = cfg.ShopName
	}
	if cfg.ShopWhatsAppNumber != "" {
		shop.WhatsAppNumber = cfg.ShopWhatsAppNumber
	}

	checkoutSvc, err := checkout.NewService(checkout.ServiceConfig{
		Cart:      store,
		Events:    bus,
		Validator: v,
		Logger:    logger,
		Now:       opts.Now,
		GSTBps:    cfg.GSTRateBps,
		ClearCart: cfg.CheckoutClearCart,
	})
	if err != nil {
		unsubscribe()
		return nil, fmt.Errorf("app: checkout: %w", err)
	}

	priceListSvc, err := pricelist.NewService(pricelist.ServiceConfig{
		Catalog:      catalogSvc,
		MinimumOrder: cfg.PriceListMinOrder,
	})
	if err != nil {
		unsubscribe()
		return nil, fmt.Errorf("app: price list: %w", err)
	}

	limitStore, err := ratelimit.NewStore(opts.Redis, "")
	if err != nil {
		unsubscribe()
		return nil, err
	}
	var limitBreaker *resilience.Breaker
	if opts.Redis != nil {
		limitBreaker = resilience.NewBreaker(5, 0.5, 30*time.Second).
			WithTarget("ratelimit_redis").
			WithLogger(logger)
	}

	return &App{
		Config:       cfg,
		Logger:       logger,
		Catalog:      catalogSvc,
		Cart:         store,
		Events:       bus,
		Validator:    v,
		Limiter:      ratelimit.New(limitStore, cfg.RateLimitWindow, cfg.RateLimitMax),
		LimitBreaker: limitBreaker,
		Shop:         shop,
		Checkout:     checkoutSvc,
		PriceList:    priceListSvc,
		Contact:      contact.NewService(contact.ServiceConfig{Events: bus, Validator: v, Logger: logger, Now: opts.Now}),
		opts:         opts,
		unsubscribe:  unsubscribe,
		closing:      make(chan struct{}),
	}, nil
}

// Drain ends open cart streams so a graceful shutdown is not held up by them.
// Safe to call more than once.
func (a *App) Drain() {
	a.drainOnce.Do(func() { close(a.closing) })
}

// Close detaches the cart metrics listener.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// Handler builds the HTTP router.
func (a *App) Handler() http.Handler {
	cfg := a.Config
	onMutation := func(op string) {
		if obs.CartMutationsTotal != nil {
			obs.CartMutationsTotal.WithLabelValues(op).Inc()
		}
	}

	catalogHandler := catalog.NewHandler(catalog.HandlerConfig{Service: a.Catalog})
	cartHandler := &cart.Handler{Store: a.Cart, Catalog: a.Catalog, Currency: cfg.CurrencyCode, OnMutation: onMutation, Closing: a.closing}
	checkoutHandler := &checkout.Handler{Svc: a.Checkout, Shop: a.Shop, Currency: cfg.CurrencyCode, Logger: a.Logger}
	priceListHandler := &pricelist.Handler{
		Svc:        a.PriceList,
		Cart:       a.Cart,
		Shop:       a.Shop,
		Events:     a.Events,
		Currency:   cfg.CurrencyCode,
		Logger:     a.Logger,
		OnMutation: onMutation,
	}
	contactHandler := &contact.Handler{Svc: a.Contact}

	probes := []health.Probe{health.CatalogProbe(a.Catalog.Count)}
	if a.opts.Redis != nil {
		probes = append(probes, health.RedisProbe(a.opts.Redis))
	}
	healthHandler := health.Handler{Probes: probes}

	limited := ratelimit.Handler{
		Limiter: a.Limiter,
		Config:  ratelimit.Config{Key: ratelimit.ByClientIP},
		Breaker: a.LimitBreaker,
		OnError: func(err error) { a.Logger.Error().Err(err).Msg("rate limiter unavailable") },
		OnLimited: func(key string) {
			a.Logger.Warn().Str("client_ip", key).Msg("rate limit exceeded")
		},
	}.Middleware

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if a.opts.HTTPMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: a.opts.HTTPMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: a.Logger, SkipPaths: []string{"/health/", "/metrics"}}.Middleware)
	r.Use(security.Headers{Enable: cfg.SecurityHeadersEnabled, EnableHSTS: cfg.IsProduction(), TrustForwardedProto: true}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Order-ID", "X-Total-Count", "X-Request-ID", "Retry-After"},
		MaxAge:         300,
	}))

	if a.opts.MetricsHandler != nil {
		r.Handle("/metrics", a.opts.MetricsHandler)
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/categories", catalogHandler.Categories)
		v.Get("/products", catalogHandler.Products)
		v.Get("/products/{id}", catalogHandler.ProductDetail)

		v.Route("/cart", func(c chi.Router) {
			c.Get("/", cartHandler.Get)
			c.Get("/stream", cartHandler.Stream)
			c.Group(func(g chi.Router) {
				g.Use(security.BodyLimit{Max: security.DefaultBodyLimit}.Middleware)
				g.Use(jsonguard.RequireJSON)
				g.Delete("/", cartHandler.Clear)
				g.Post("/items", cartHandler.AddItem)
				g.Patch("/items/{productId}", cartHandler.UpdateItem)
				g.Delete("/items/{productId}", cartHandler.RemoveItem)
			})
		})

		v.Get("/price-list", priceListHandler.List)
		v.Group(func(g chi.Router) {
			g.Use(security.BodyLimit{Max: security.DefaultBodyLimit}.Middleware)
			g.Use(jsonguard.RequireJSON)
			g.Post("/price-list/cart", priceListHandler.AddToCart)

			g.Group(func(rl chi.Router) {
				rl.Use(limited)
				rl.Post("/price-list/quote", priceListHandler.Quote)
				rl.Post("/checkout", checkoutHandler.Checkout)
				rl.Post("/contact", contactHandler.Submit)
			})
		})
	})

	var h http.Handler = r
	if a.opts.Tracing {
		h = otelhttp.NewHandler(r, "http.server",
			otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
				return req.Method + " " + req.URL.Path
			}),
		)
	}
	return h
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
