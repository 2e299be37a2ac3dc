// Package model defines domain entities and data structures for the PiensaPeru API.
//
// The model package contains the entity structs, request types, the service
// Response envelope, validation and error definitions. Models are used across
// all layers of the application.
//
// # Domain Entities
//
// Entities are grouped by bounded context:
//
//   - Content: Calification (a user's score, 0 to 20)
//   - Administrator: Militant, PoliticalParty
//
// Identifiers are int64 values assigned by the persistence layer on creation.
//
// # Response Envelope
//
// Every service operation returns a Response:
//
//	type Response[T any] struct {
//	    Success  bool   `json:"success"`
//	    Message  string `json:"message,omitempty"`
//	    Resource T      `json:"resource,omitempty"`
//	}
//
// # Validation
//
// Entities carry go-playground/validator tags. Validate returns a
// *ValidationError listing every failing field by its JSON name.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go.
package model
