package middleware

import (
	"context"
	"net/http"
)

// ScopeBeginner starts a unit of work bound to a context
type ScopeBeginner interface {
	Begin(ctx context.Context) context.Context
}

// UnitOfWork attaches a fresh unit of work to every request so repositories
// can stage writes that the service completes
func UnitOfWork(scope ScopeBeginner) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(scope.Begin(r.Context())))
		})
	}
}
