// Package handler provides HTTP request handlers for the PiensaPeru API.
//
// One handler struct per entity wraps the matching service. Handlers parse
// path parameters and bodies, call a single service operation and translate
// its model.Response envelope into HTTP.
//
// # Response Format
//
//   - WriteData: single resource with a self link
//   - WriteCollection: list of resources
//   - WriteError: RFC 9457 Problem Details error response
//
// Failed envelopes go through MapResponseError: not found answers 404 with the
// service message as detail, validation failures 422, an unreachable database
// 503 and everything else 400.
//
// # Example Usage
//
//	h := NewMilitantHandler(militantService)
//	mux.HandleFunc("GET /v1/militants/{id}", h.Get)
package handler
