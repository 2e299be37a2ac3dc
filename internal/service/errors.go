package service

import (
	"errors"
	"fmt"

	"github.com/piensaperu/api/internal/model"
)

// Centralized service layer errors.
// Failed responses carry one of these in Response.Err so handlers can map
// them to a status without parsing messages.

// ErrNotFound is wrapped by every entity not found error
var ErrNotFound = errors.New("not found")

// ===== Entity Errors =====
var (
	ErrCalificationNotFound   = fmt.Errorf("calification %w", ErrNotFound)
	ErrMilitantNotFound       = fmt.Errorf("militant %w", ErrNotFound)
	ErrPoliticalPartyNotFound = fmt.Errorf("political party %w", ErrNotFound)
)

// ===== Input Errors =====
var (
	ErrNilEntity     = errors.New("entity is required")
	ErrInvalidUserID = errors.New("user id must be positive")
)

// isInvalid reports whether err was caused by the caller's input
func isInvalid(err error) bool {
	return errors.Is(err, model.ErrValidation) ||
		errors.Is(err, ErrNilEntity) ||
		errors.Is(err, ErrInvalidUserID)
}
