package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/piensaperu/api/internal/model"
	"github.com/piensaperu/api/pkg/jwt"
)

// TokenValidator defines the interface for token validation
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// ClaimsKey is the context key for JWT claims
const ClaimsKey contextKey = "claims"

// Auth returns a middleware that validates Bearer tokens
func Auth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				if r.Header.Get("Authorization") == "" {
					model.NewUnauthorizedError("missing authorization header").WriteJSON(w)
				} else {
					model.NewUnauthorizedError("invalid authorization header format").WriteJSON(w)
				}
				return
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				var pd *model.ProblemDetails
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					pd = model.NewUnauthorizedError("token expired")
					pd.Code = model.ErrCodeTokenExpired
				case errors.Is(err, jwt.ErrInvalidSignature):
					pd = model.NewUnauthorizedError("invalid token signature")
					pd.Code = model.ErrCodeTokenInvalid
				default:
					pd = model.NewUnauthorizedError("invalid token")
					pd.Code = model.ErrCodeTokenInvalid
				}
				pd.WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose claims lack the admin role.
// It must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		if claims == nil {
			model.NewUnauthorizedError("authentication required").WriteJSON(w)
			return
		}
		if !claims.IsAdmin() {
			model.NewForbiddenError("admin role required").WriteJSON(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnly guards administrator routes. A nil validator leaves routes open,
// which is how the server runs with auth disabled.
func AdminOnly(validator TokenValidator) Middleware {
	if validator == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	auth := Auth(validator)
	return func(next http.Handler) http.Handler {
		return auth(RequireAdmin(next))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetSubject extracts the token subject from context
func GetSubject(ctx context.Context) string {
	if sub, ok := ctx.Value(SubjectKey).(string); ok {
		return sub
	}
	return ""
}

// GetClaims extracts the JWT claims from context
func GetClaims(ctx context.Context) *jwt.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}
