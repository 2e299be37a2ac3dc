// Package middleware provides HTTP middleware for the PiensaPeru API.
//
// # Available Middleware
//
//   - RequestID, Logger, Recovery: request correlation and structured logs
//   - CORS: cross origin policy backed by rs/cors
//   - Compress: gzip responses
//   - Metrics: Prometheus request metrics keyed by route pattern
//   - UnitOfWork: one storage unit of work per request
//   - AdminOnly: Bearer JWT with the admin role
//   - RateLimit: per client token buckets on write routes
//
// Metrics has to be the innermost middleware so it can read the pattern the
// ServeMux matched:
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger(logger),
//	    middleware.Recovery(logger),
//	    middleware.UnitOfWork(scope),
//	    middleware.Metrics(m),
//	)
//
// # Context Values
//
//   - GetRequestID(ctx): unique request identifier
//   - GetSubject(ctx): subject of a validated token
//   - GetClaims(ctx): the validated token claims
package middleware
