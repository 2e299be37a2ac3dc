package helpers

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/piensaperu/api/internal/database"
	"github.com/piensaperu/api/internal/model"
	"github.com/piensaperu/api/pkg/jwt"
)

// TestIssuer is the issuer every test token carries
const TestIssuer = "api.piensaperu.pe"

// ============================================================================
// JWT Helpers
// ============================================================================

// JWTHelper signs tokens for tests and validates them for the server under test
type JWTHelper struct {
	Service *jwt.Service
	t       *testing.T
}

// NewJWTHelper creates a new JWT helper with an in-memory key
func NewJWTHelper(t *testing.T) *JWTHelper {
	t.Helper()
	return &JWTHelper{Service: NewTestJWTService(t), t: t}
}

// GenerateToken creates a valid token for subject with role
func (h *JWTHelper) GenerateToken(subject, role string) string {
	h.t.Helper()
	token, err := h.Service.Sign(jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: subject},
		Role:             role,
	})
	if err != nil {
		h.t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// GenerateAdminToken creates a valid administrator token
func (h *JWTHelper) GenerateAdminToken() string {
	return h.GenerateToken("admin", jwt.RoleAdmin)
}

// GenerateExpiredToken creates an administrator token that expired an hour ago
func (h *JWTHelper) GenerateExpiredToken() string {
	h.t.Helper()
	token, err := h.Service.Sign(jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		Role: jwt.RoleAdmin,
	})
	if err != nil {
		h.t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// ============================================================================
// HTTP Request Helpers
// ============================================================================

// RequestBuilder helps construct HTTP requests for testing
type RequestBuilder struct {
	t       *testing.T
	method  string
	path    string
	body    interface{}
	headers map[string]string
	token   string
}

// NewRequest creates a new request builder
func NewRequest(t *testing.T, method, path string) *RequestBuilder {
	t.Helper()
	return &RequestBuilder{
		t:       t,
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// WithBody sets the request body (will be JSON encoded)
func (rb *RequestBuilder) WithBody(body interface{}) *RequestBuilder {
	rb.body = body
	return rb
}

// WithHeader adds a header to the request
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// WithToken sends token as a bearer credential
func (rb *RequestBuilder) WithToken(token string) *RequestBuilder {
	rb.token = token
	return rb
}

// WithAdmin authenticates the request as an administrator
func (rb *RequestBuilder) WithAdmin(h *JWTHelper) *RequestBuilder {
	return rb.WithToken(h.GenerateAdminToken())
}

// Build creates the HTTP request
func (rb *RequestBuilder) Build() *http.Request {
	rb.t.Helper()

	var bodyReader io.Reader
	if rb.body != nil {
		bodyBytes, err := json.Marshal(rb.body)
		if err != nil {
			rb.t.Fatalf("helpers: failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(rb.method, rb.path, bodyReader)

	if rb.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}
	if rb.token != "" {
		req.Header.Set("Authorization", "Bearer "+rb.token)
	}

	return req
}

// Do builds the request and serves it with h
func (rb *RequestBuilder) Do(h http.Handler) *httptest.ResponseRecorder {
	rb.t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, rb.Build())
	return rr
}

// ============================================================================
// Response Assertion Helpers
// ============================================================================

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, resp.Code, resp.Body.String())
	}
}

// AssertProblemDetails validates an RFC 9457 Problem Details error response
func AssertProblemDetails(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int, expectedCode model.ErrorCode) *model.ProblemDetails {
	t.Helper()

	AssertStatus(t, resp, expectedStatus)

	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem content type, got %q", ct)
	}

	var problem model.ProblemDetails
	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, &problem); err != nil {
		t.Fatalf("failed to decode problem details: %v. Body: %s", err, string(bodyBytes))
	}

	if problem.Status != expectedStatus {
		t.Errorf("expected problem.status %d, got %d", expectedStatus, problem.Status)
	}
	if expectedCode != 0 && problem.Code != expectedCode {
		t.Errorf("expected problem.code %d, got %d", expectedCode, problem.Code)
	}
	return &problem
}

// AssertValidationError checks for a validation error on a specific field
func AssertValidationError(t *testing.T, resp *httptest.ResponseRecorder, field string) {
	t.Helper()

	problem := AssertProblemDetails(t, resp, http.StatusUnprocessableEntity, 0)
	for _, fe := range problem.Errors {
		if fe.Field == field {
			return
		}
	}

	t.Errorf("expected validation error on field %q, but not found. Errors: %+v", field, problem.Errors)
}

// DecodeResponse decodes the response body into the given struct
func DecodeResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, v); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, string(bodyBytes))
	}
}

// DecodeData decodes the "data" member of a standard response into T
func DecodeData[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()

	var response struct {
		Data  T                 `json:"data"`
		Links map[string]string `json:"_links"`
	}
	DecodeResponse(t, resp, &response)
	return response.Data
}

// ============================================================================
// Database Assertion Helpers
// ============================================================================

// AssertRecordExists checks that table holds a record with id
func AssertRecordExists(t *testing.T, db database.Database, table string, id int64) {
	t.Helper()
	if !recordExists(t, db, table, id) {
		t.Errorf("expected record %s:%d to exist, but it doesn't", table, id)
	}
}

// AssertRecordNotExists checks that table holds no record with id
func AssertRecordNotExists(t *testing.T, db database.Database, table string, id int64) {
	t.Helper()
	if recordExists(t, db, table, id) {
		t.Errorf("expected record %s:%d to not exist, but it does", table, id)
	}
}

func recordExists(t *testing.T, db database.Database, table string, id int64) bool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.QueryOne(ctx, "SELECT * FROM type::record($table, $id)", map[string]interface{}{
		"table": table,
		"id":    id,
	})
	if errors.Is(err, database.ErrNotFound) {
		return false
	}
	if err != nil {
		t.Fatalf("failed to query for record: %v", err)
	}

	switch v := result.(type) {
	case nil:
		return false
	case []interface{}:
		return len(v) > 0
	default:
		return true
	}
}

// ============================================================================
// Service Factory Helpers
// ============================================================================

// NewTestJWTService creates a JWT service with in-memory keys for testing
func NewTestJWTService(t *testing.T) *jwt.Service {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("helpers: failed to generate RSA key: %v", err)
	}

	return jwt.NewTestService(privateKey, TestIssuer, 15*time.Minute)
}

// ============================================================================
// Utility Helpers
// ============================================================================

// TimePtr returns a pointer to the time
func TimePtr(t time.Time) *time.Time {
	return &t
}

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
