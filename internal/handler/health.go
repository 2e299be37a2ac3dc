package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler creates a health handler that pings db
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health handles GET /health - 200 while the database answers, 503 otherwise
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, HealthStatus{Status: "degraded", Database: "unreachable"})
		return
	}
	WriteJSON(w, http.StatusOK, HealthStatus{Status: "ok", Database: "ok"})
}
