package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/piensaperu/api/internal/model"
	"github.com/piensaperu/api/pkg/jwt"
)

// ============================================================================
// Mock TokenValidator
// ============================================================================

type mockValidator struct {
	validateFunc func(token string) (*jwt.Claims, error)
}

func (m *mockValidator) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return m.validateFunc(token)
}

// successValidator returns claims for subject and role for any token
func successValidator(subject, role string) *mockValidator {
	return &mockValidator{
		validateFunc: func(token string) (*jwt.Claims, error) {
			return &jwt.Claims{
				RegisteredClaims: gojwt.RegisteredClaims{Subject: subject},
				Role:             role,
			}, nil
		},
	}
}

// errorValidator returns the specified error
func errorValidator(err error) *mockValidator {
	return &mockValidator{
		validateFunc: func(token string) (*jwt.Claims, error) {
			return nil, err
		},
	}
}

// ============================================================================
// Test Helpers
// ============================================================================

func newTestRequest(authHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

// captureHandler captures the request context for inspection
type captureHandler struct {
	called bool
	ctx    context.Context
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func problemDetail(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var problem model.ProblemDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to parse problem details: %v", err)
	}
	return problem.Detail
}

// ============================================================================
// Auth() Middleware Tests
// ============================================================================

func TestAuth_RejectsBadHeaders(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		header     string
		wantDetail string
	}{
		"missing":         {"", "missing authorization header"},
		"wrong scheme":    {"Basic sometoken", "invalid authorization header format"},
		"only bearer":     {"Bearer", "invalid authorization header format"},
		"bearer no space": {"Bearertoken", "invalid authorization header format"},
		"empty token":     {"Bearer ", "invalid authorization header format"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			handler := &captureHandler{}
			rr := httptest.NewRecorder()

			Auth(successValidator("admin", jwt.RoleAdmin))(handler).ServeHTTP(rr, newTestRequest(tt.header))

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
			}
			if handler.called {
				t.Error("handler should not have been called")
			}
			if got := problemDetail(t, rr); got != tt.wantDetail {
				t.Errorf("expected detail %q, got %q", tt.wantDetail, got)
			}
		})
	}
}

func TestAuth_ValidToken_SetsContext_CallsNext(t *testing.T) {
	t.Parallel()
	handler := &captureHandler{}
	rr := httptest.NewRecorder()

	Auth(successValidator("admin-7", jwt.RoleAdmin))(handler).ServeHTTP(rr, newTestRequest("bearer valid-token"))

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !handler.called {
		t.Fatal("handler should have been called")
	}
	if GetSubject(handler.ctx) != "admin-7" {
		t.Errorf("expected subject 'admin-7', got %q", GetSubject(handler.ctx))
	}
	if claims := GetClaims(handler.ctx); claims == nil || !claims.IsAdmin() {
		t.Errorf("expected admin claims in context, got %+v", claims)
	}
}

func TestAuth_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err        error
		wantDetail string
	}{
		"expired":   {jwt.ErrTokenExpired, "token expired"},
		"signature": {jwt.ErrInvalidSignature, "invalid token signature"},
		"other":     {jwt.ErrInvalidToken, "invalid token"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			handler := &captureHandler{}
			rr := httptest.NewRecorder()

			Auth(errorValidator(tt.err))(handler).ServeHTTP(rr, newTestRequest("Bearer token"))

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
			}
			if got := problemDetail(t, rr); got != tt.wantDetail {
				t.Errorf("expected detail %q, got %q", tt.wantDetail, got)
			}
		})
	}
}

// ============================================================================
// RequireAdmin / AdminOnly Tests
// ============================================================================

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		claims     *jwt.Claims
		wantStatus int
	}{
		"no claims": {nil, http.StatusUnauthorized},
		"not admin": {&jwt.Claims{Role: "viewer"}, http.StatusForbidden},
		"admin":     {&jwt.Claims{Role: jwt.RoleAdmin}, http.StatusOK},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := newTestRequest("")
			if tt.claims != nil {
				req = req.WithContext(context.WithValue(req.Context(), ClaimsKey, tt.claims))
			}
			rr := httptest.NewRecorder()

			RequireAdmin(&captureHandler{}).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestAdminOnly_NilValidator_PassesThrough(t *testing.T) {
	t.Parallel()
	handler := &captureHandler{}
	rr := httptest.NewRecorder()

	AdminOnly(nil)(handler).ServeHTTP(rr, newTestRequest(""))

	if !handler.called {
		t.Error("handler should have been called when auth is disabled")
	}
}

func TestAdminOnly_WithSignedTokens(t *testing.T) {
	t.Parallel()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	svc := jwt.NewTestService(key, "api.piensaperu.pe", time.Hour)

	sign := func(role string) string {
		token, err := svc.Sign(jwt.Claims{
			RegisteredClaims: gojwt.RegisteredClaims{Subject: "someone"},
			Role:             role,
		})
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return token
	}

	tests := map[string]struct {
		header     string
		wantStatus int
	}{
		"admin token":   {"Bearer " + sign(jwt.RoleAdmin), http.StatusOK},
		"regular token": {"Bearer " + sign("user"), http.StatusForbidden},
		"no token":      {"", http.StatusUnauthorized},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			AdminOnly(svc)(&captureHandler{}).ServeHTTP(rr, newTestRequest(tt.header))
			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestGetClaims_Missing_ReturnsNil(t *testing.T) {
	t.Parallel()

	if GetClaims(context.Background()) != nil {
		t.Error("expected nil claims")
	}
	if GetSubject(context.Background()) != "" {
		t.Error("expected empty subject")
	}
}
