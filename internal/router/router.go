// Package router assembles the HTTP surface of the API: routes, guards and
// the global middleware chain.
package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/piensaperu/api/internal/handler"
	"github.com/piensaperu/api/internal/middleware"
	"github.com/piensaperu/api/internal/model"
)

// Scope begins the unit of work of a request
type Scope interface {
	Begin(ctx context.Context) context.Context
}

// Metrics is the Prometheus surface the router needs
type Metrics interface {
	middleware.RequestObserver
	Handler() http.Handler
}

// Config holds everything the router wires together
type Config struct {
	Califications  handler.CalificationService
	Militants      handler.EntityService[model.Militant]
	Parties        handler.EntityService[model.PoliticalParty]
	Ping           func(ctx context.Context) error
	Scope          Scope
	Metrics        Metrics
	MetricsEnabled bool
	// Validator guards the admin routes. Nil leaves them open.
	Validator      middleware.TokenValidator
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
	Logger         *slog.Logger
}

// New registers every route and wraps the mux in the global middleware
func New(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	healthHandler := handler.NewHealthHandler(handler.PingFunc(cfg.Ping))
	calificationHandler := handler.NewCalificationHandler(cfg.Califications)
	militantHandler := handler.NewMilitantHandler(cfg.Militants)
	partyHandler := handler.NewPoliticalPartyHandler(cfg.Parties)

	limited := func(h http.Handler) http.Handler { return h }
	if cfg.RateLimiter != nil {
		limited = middleware.RateLimit(cfg.RateLimiter)
	}
	adminOnly := middleware.AdminOnly(cfg.Validator)
	write := func(h http.HandlerFunc) http.Handler { return limited(h) }
	admin := func(h http.HandlerFunc) http.Handler { return adminOnly(limited(h)) }

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)
	if cfg.MetricsEnabled {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	// Calification endpoints
	mux.HandleFunc("GET /v1/califications", calificationHandler.List)
	mux.HandleFunc("GET /v1/califications/{id}", calificationHandler.Get)
	mux.HandleFunc("GET /v1/users/{userId}/califications", calificationHandler.ListByUser)
	mux.Handle("POST /v1/users/{userId}/califications", write(calificationHandler.Create))
	mux.Handle("PUT /v1/califications/{id}", write(calificationHandler.Update))
	mux.Handle("DELETE /v1/califications/{id}", write(calificationHandler.Delete))

	// Militant endpoints - writes require admin role
	mux.HandleFunc("GET /v1/militants", militantHandler.List)
	mux.HandleFunc("GET /v1/militants/{id}", militantHandler.Get)
	mux.Handle("POST /v1/militants", admin(militantHandler.Create))
	mux.Handle("PUT /v1/militants/{id}", admin(militantHandler.Update))
	mux.Handle("DELETE /v1/militants/{id}", admin(militantHandler.Delete))

	// Political party endpoints - writes require admin role
	mux.HandleFunc("GET /v1/political-parties", partyHandler.List)
	mux.HandleFunc("GET /v1/political-parties/{id}", partyHandler.Get)
	mux.Handle("POST /v1/political-parties", admin(partyHandler.Create))
	mux.Handle("PUT /v1/political-parties/{id}", admin(partyHandler.Update))
	mux.Handle("DELETE /v1/political-parties/{id}", admin(partyHandler.Delete))

	middlewares := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.Compress,
		middleware.UnitOfWork(cfg.Scope),
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, middleware.Metrics(cfg.Metrics))
	}
	return middleware.Chain(mux, middlewares...)
}
