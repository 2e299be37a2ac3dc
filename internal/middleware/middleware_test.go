package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ============================================================================
// Chain Tests
// ============================================================================

func TestChain_MultipleMiddlewares_AppliesInOrder(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("H"))
	})

	tag := func(s string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(s))
				next.ServeHTTP(w, r)
			})
		}
	}

	rr := httptest.NewRecorder()
	Chain(handler, tag("1"), tag("2"), tag("3")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Body.String() != "123H" {
		t.Errorf("expected '123H', got %q", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	Chain(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rr.Body.String() != "H" {
		t.Errorf("expected bare handler output, got %q", rr.Body.String())
	}
}

// ============================================================================
// RequestID Tests
// ============================================================================

func TestRequestID_NoHeader_GeneratesNew(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	rr := httptest.NewRecorder()

	RequestID(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	responseID := rr.Header().Get("X-Request-ID")
	if len(responseID) != 36 || strings.Count(responseID, "-") != 4 {
		t.Errorf("expected a UUID request id, got %q", responseID)
	}
	if contextID := GetRequestID(handler.ctx); contextID != responseID {
		t.Errorf("context ID (%q) should match response header (%q)", contextID, responseID)
	}
}

func TestRequestID_WithHeader_PreservesExisting(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "existing-request-id")
	rr := httptest.NewRecorder()

	RequestID(handler).ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "existing-request-id" {
		t.Errorf("expected preserved ID 'existing-request-id', got %q", got)
	}
	if got := GetRequestID(handler.ctx); got != "existing-request-id" {
		t.Errorf("expected context ID 'existing-request-id', got %q", got)
	}
}

func TestGetRequestID_WrongType_ReturnsEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), RequestIDKey, 42)
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

// ============================================================================
// Logger Tests
// ============================================================================

func TestLogger_WritesRequestLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/militants", nil)
	Chain(handler, RequestID, Logger(logger)).ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	for _, want := range []string{`"msg":"request"`, `"method":"POST"`, `"path":"/v1/militants"`, `"status":418`, `"request_id":"`} {
		if !strings.Contains(line, want) {
			t.Errorf("expected log line to contain %s, got %s", want, line)
		}
	}
}

func TestLogger_ServerErrorLoggedAsError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Errorf("expected ERROR level, got %s", buf.String())
	}
}

// ============================================================================
// Recovery Tests
// ============================================================================

func TestRecovery_NoPanic_ProceedsNormally(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	rr := httptest.NewRecorder()

	Recovery(discardLogger())(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	if !handler.called || rr.Code != http.StatusOK {
		t.Errorf("expected handler to run with 200, got called=%v status=%d", handler.called, rr.Code)
	}
}

func TestRecovery_WithPanic_ReturnsProblem(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	rr := httptest.NewRecorder()

	Recovery(discardLogger())(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json, got %q", ct)
	}
	if got := problemDetail(t, rr); got != "An unexpected error occurred" {
		t.Errorf("unexpected detail %q", got)
	}
}

// ============================================================================
// CORS Tests
// ============================================================================

func TestCORS_Origins(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		allowed    []string
		origin     string
		wantHeader string
	}{
		"allowed origin":    {[]string{"http://localhost:3000"}, "http://localhost:3000", "http://localhost:3000"},
		"disallowed origin": {[]string{"http://localhost:3000"}, "http://evil.example", ""},
		"wildcard":          {[]string{"*"}, "http://anything.example", "*"},
		"no origin":         {[]string{"http://localhost:3000"}, "", ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			handler := &captureHandler{}
			req := httptest.NewRequest(http.MethodGet, "/v1/militants", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()

			CORS(tt.allowed)(handler).ServeHTTP(rr, req)

			if !handler.called {
				t.Error("actual requests must reach the handler")
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("expected Access-Control-Allow-Origin %q, got %q", tt.wantHeader, got)
			}
		})
	}
}

func TestCORS_PreflightRequest_Returns204(t *testing.T) {
	t.Parallel()

	handler := &captureHandler{}
	req := httptest.NewRequest(http.MethodOptions, "/v1/militants/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rr := httptest.NewRecorder()

	CORS([]string{"http://localhost:3000"})(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rr.Code)
	}
	if handler.called {
		t.Error("preflight must not reach the handler")
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPut) {
		t.Errorf("expected PUT to be allowed, got %q", got)
	}
}

// ============================================================================
// Compress Tests
// ============================================================================

func TestCompress_AcceptsGzip_CompressesResponse(t *testing.T) {
	t.Parallel()

	const body = "Hello, this is a test response that should be compressed."
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rr := httptest.NewRecorder()

	Compress(handler).ServeHTTP(rr, req)

	if encoding := rr.Header().Get("Content-Encoding"); encoding != "gzip" {
		t.Errorf("expected Content-Encoding 'gzip', got %q", encoding)
	}

	reader, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("failed to create gzip reader: %v", err)
	}
	defer func() { _ = reader.Close() }()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("failed to read decompressed data: %v", err)
	}
	if string(decompressed) != body {
		t.Errorf("decompressed content mismatch: %q", string(decompressed))
	}
}

func TestCompress_NoGzipAccept_DoesNotCompress(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("plain"))
	})
	rr := httptest.NewRecorder()

	Compress(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Header().Get("Content-Encoding") != "" {
		t.Error("expected no Content-Encoding")
	}
	if rr.Body.String() != "plain" {
		t.Errorf("expected plain body, got %q", rr.Body.String())
	}
}

// ============================================================================
// Metrics Tests
// ============================================================================

type observed struct {
	method string
	route  string
	status int
}

type fakeObserver struct {
	mu       sync.Mutex
	inFlight int
	requests []observed
}

func (f *fakeObserver) RequestStarted() func() {
	f.mu.Lock()
	f.inFlight++
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}
}

func (f *fakeObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, observed{method, route, status})
}

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/militants/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	obs := &fakeObserver{}
	h := Chain(mux, RequestID, Metrics(obs))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/militants/3", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/unknown/3", nil))

	if len(obs.requests) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(obs.requests))
	}
	if got := obs.requests[0]; got != (observed{"GET", "GET /v1/militants/{id}", http.StatusOK}) {
		t.Errorf("unexpected first observation %+v", got)
	}
	if got := obs.requests[1]; got.route != "unmatched" || got.status != http.StatusNotFound {
		t.Errorf("unexpected second observation %+v", got)
	}
	if obs.inFlight != 0 {
		t.Errorf("expected in-flight gauge back at 0, got %d", obs.inFlight)
	}
}

// ============================================================================
// UnitOfWork Tests
// ============================================================================

type scopeKey struct{}

type fakeScope struct{ begun int }

func (s *fakeScope) Begin(ctx context.Context) context.Context {
	s.begun++
	return context.WithValue(ctx, scopeKey{}, s.begun)
}

func TestUnitOfWork_BeginsScopePerRequest(t *testing.T) {
	t.Parallel()

	scope := &fakeScope{}
	handler := &captureHandler{}
	mw := UnitOfWork(scope)(handler)

	mw.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/militants", nil))
	first := handler.ctx.Value(scopeKey{})
	mw.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/militants", nil))
	second := handler.ctx.Value(scopeKey{})

	if first != 1 || second != 2 {
		t.Errorf("expected a fresh scope per request, got %v then %v", first, second)
	}
}
