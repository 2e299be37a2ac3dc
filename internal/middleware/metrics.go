package middleware

import (
	"net/http"
	"time"
)

// RequestObserver records HTTP traffic
type RequestObserver interface {
	RequestStarted() func()
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// Metrics records request count, latency and in-flight requests labelled by
// the matched route pattern. It must wrap the ServeMux directly since the mux
// sets r.Pattern on the request value it is handed.
func Metrics(observer RequestObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			done := observer.RequestStarted()
			defer done()

			recorder := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(recorder, r)

			observer.ObserveRequest(r.Method, routeOf(r), recorder.statusCode, time.Since(start))
		})
	}
}

// routeOf keeps label cardinality bounded: unmatched paths share one label
func routeOf(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	return r.Pattern
}
